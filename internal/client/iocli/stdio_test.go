package iocli

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ IO = (*Stdio)(nil)
	_ IO = (*Buffer)(nil)
)

// pipeStdio Stdio, читающий из pipe вместо терминала
func pipeStdio(t *testing.T, input string) *Stdio {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	// Пишем в pipe в отдельной горутине, имитируя ввод пользователя
	go func() {
		_, _ = w.Write([]byte(input))
		_ = w.Close()
	}()

	s := NewStdio()
	s.in = r
	s.reader.Reset(r)
	s.out = io.Discard
	s.errOut = io.Discard
	return s
}

func TestStdio_ReadInput(t *testing.T) {
	s := pipeStdio(t, "first line\n  second  \nlast")

	for _, want := range []string{"first line", "second", "last"} {
		got, err := s.ReadInput("Prompt: ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := s.ReadInput("Prompt: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestStdio_ReadPassword_NotTerminal(t *testing.T) {
	s := pipeStdio(t, "secret123\n")

	got, err := s.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret123", got)
}

func TestBuffer(t *testing.T) {
	b := NewBuffer("ann@example.com", "secret")

	email, err := b.ReadInput("Email: ")
	require.NoError(t, err)
	password, err := b.ReadPassword("Password: ")
	require.NoError(t, err)

	b.Println("hello", "world")
	b.Printf("n=%d\n", 1)
	_, _ = b.Write([]byte("raw\n"))
	b.Errorf("warn\n")

	assert.Equal(t, "ann@example.com", email)
	assert.Equal(t, "secret", password)
	assert.Equal(t, "hello world\nn=1\nraw\n", b.Output())
	assert.Equal(t, "Email: Password: warn\n", b.ErrOutput())

	_, err = b.ReadInput("more: ")
	assert.ErrorIs(t, err, io.EOF)
}
