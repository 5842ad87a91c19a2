package api

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/iudanet/balancio/internal/client/notify"
)

// newTestChannel канал уведомлений без автозакрытия в пределах теста
func newTestChannel(t *testing.T) *notify.Channel {
	t.Helper()
	ch := notify.NewChannel(notify.WithDefaultDuration(time.Hour))
	t.Cleanup(ch.Close)
	return ch
}

// newTestLogger логгер, пишущий в буфер для проверок
func newTestLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeNavigator struct {
	mu    sync.Mutex
	calls int
}

func (n *fakeNavigator) ToLogin(context.Context) {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
}

func (n *fakeNavigator) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

type fakeTracker struct {
	mu      sync.Mutex
	started int
	done    int
}

func (f *fakeTracker) Start() {
	f.mu.Lock()
	f.started++
	f.mu.Unlock()
}

func (f *fakeTracker) Done() {
	f.mu.Lock()
	f.done++
	f.mu.Unlock()
}

func (f *fakeTracker) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started, f.done
}

type staticToken string

func (s staticToken) Token(context.Context) string { return string(s) }
