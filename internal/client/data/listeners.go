package data

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

// changeListeners реестр подписчиков на изменение данных
type changeListeners struct {
	logger *slog.Logger
	fns    map[uint64]func()
	mu     sync.Mutex
	next   uint64
}

func (l *changeListeners) subscribe(fn func()) (cancel func()) {
	l.mu.Lock()
	if l.fns == nil {
		l.fns = make(map[uint64]func())
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

// notify вызывает подписчиков вне блокировки.
// Паника подписчика логируется и не мешает остальным.
func (l *changeListeners) notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		l.call(fn)
	}
}

func (l *changeListeners) call(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			loggerOrDefault(l.logger).Error("Panic recovered",
				"error", err,
				"listener", "data changed",
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}
