package iocli

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"sync"
)

// Buffer IO поверх буферов: заранее заданный ввод, накопленный вывод.
// Используется в тестах команд и при неинтерактивном запуске.
type Buffer struct {
	reader *bufio.Reader
	out    bytes.Buffer
	errOut bytes.Buffer
	mu     sync.Mutex
}

// NewBuffer создает Buffer; строки input подаются на ввод по одной
func NewBuffer(input ...string) *Buffer {
	text := strings.Join(input, "\n")
	if len(input) > 0 {
		text += "\n"
	}
	return &Buffer{reader: bufio.NewReader(strings.NewReader(text))}
}

func (b *Buffer) Println(a ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(&b.out, a...)
}

func (b *Buffer) Printf(format string, a ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(&b.out, format, a...)
}

func (b *Buffer) Errorf(format string, a ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(&b.errOut, format, a...)
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.Write(p)
}

func (b *Buffer) ReadInput(prompt string) (string, error) {
	b.Errorf("%s", prompt)
	return readLine(b.reader)
}

func (b *Buffer) ReadPassword(prompt string) (string, error) {
	return b.ReadInput(prompt)
}

// Output накопленный stdout
func (b *Buffer) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

// ErrOutput накопленный stderr, включая приглашения ввода
func (b *Buffer) ErrOutput() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errOut.String()
}
