package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Stdio терминальная реализация IO.
// Пароль читается без эха, если stdin терминал; иначе как обычная строка.
type Stdio struct {
	in     *os.File
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
	mu     sync.Mutex
}

func NewStdio() *Stdio {
	return &Stdio{
		in:     os.Stdin,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

func (s *Stdio) Println(a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Errorf(format string, a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.errOut, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Errorf("%s", prompt)
	return readLine(s.reader)
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Errorf("%s", prompt)

	fd := int(s.in.Fd())
	if !term.IsTerminal(fd) {
		return readLine(s.reader)
	}

	pwBytes, err := term.ReadPassword(fd)
	s.Errorf("\n")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

// readLine читает строку без перевода строки; последняя строка без \n тоже принимается
func readLine(r *bufio.Reader) (string, error) {
	input, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
