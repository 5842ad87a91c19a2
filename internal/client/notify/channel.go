package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Channel хранит активные уведомления и рассылает их снимки подписчикам.
// Подписчики вызываются вне блокировки состояния, но последовательно,
// поэтому не должны обращаться к методам Channel, изменяющим список.
type Channel struct {
	logger          *slog.Logger
	subs            map[uint64]func([]Toast)
	stops           map[string]chan struct{} // остановка обратного отсчета по id
	toasts          []Toast
	wg              sync.WaitGroup
	tick            time.Duration
	defaultDuration time.Duration
	nextSub         uint64
	mu              sync.Mutex
	deliverMu       sync.Mutex
	closed          bool
}

// ChannelOption настраивает Channel
type ChannelOption func(*Channel)

// WithTick задает шаг обратного отсчета
func WithTick(d time.Duration) ChannelOption {
	return func(c *Channel) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithDefaultDuration задает время жизни уведомлений по умолчанию
func WithDefaultDuration(d time.Duration) ChannelOption {
	return func(c *Channel) {
		if d > 0 {
			c.defaultDuration = d
		}
	}
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) ChannelOption {
	return func(c *Channel) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChannel создает пустой канал уведомлений
func NewChannel(opts ...ChannelOption) *Channel {
	c := &Channel{
		logger:          slog.Default(),
		subs:            make(map[uint64]func([]Toast)),
		stops:           make(map[string]chan struct{}),
		tick:            DefaultTick,
		defaultDuration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show добавляет уведомление и возвращает его с назначенным id.
// По умолчанию AutoClose=true и Duration равен времени жизни канала.
func (c *Channel) Show(severity Severity, title, message string, opts ...Option) Toast {
	t := Toast{
		ID:        newID(),
		Title:     title,
		Message:   message,
		Severity:  severity,
		AutoClose: true,
		Duration:  c.defaultDuration,
		Progress:  100,
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	if t.Duration <= 0 {
		t.Duration = c.defaultDuration
	}

	c.mu.Lock()
	c.toasts = append(c.toasts, t)
	if t.AutoClose && !c.closed {
		stop := make(chan struct{})
		c.stops[t.ID] = stop
		c.wg.Add(1)
		go c.countdown(t.ID, t.Duration, stop)
	}
	c.mu.Unlock()

	c.logger.Debug("toast shown", "id", t.ID, "severity", t.Severity, "title", t.Title)
	c.publish()

	return t
}

// Success показывает уведомление об успехе
func (c *Channel) Success(title, message string, opts ...Option) Toast {
	return c.Show(SeveritySuccess, title, message, opts...)
}

// Error показывает уведомление об ошибке; по умолчанию не закрывается само
func (c *Channel) Error(title, message string, opts ...Option) Toast {
	return c.Show(SeverityError, title, message, append([]Option{WithAutoClose(false)}, opts...)...)
}

// Warning показывает предупреждение
func (c *Channel) Warning(title, message string, opts ...Option) Toast {
	return c.Show(SeverityWarning, title, message, opts...)
}

// Info показывает информационное уведомление
func (c *Channel) Info(title, message string, opts ...Option) Toast {
	return c.Show(SeverityInfo, title, message, opts...)
}

// Dismiss убирает уведомление; повторный вызов ничего не делает
func (c *Channel) Dismiss(id string) {
	c.mu.Lock()
	idx := -1
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.toasts = append(c.toasts[:idx], c.toasts[idx+1:]...)
	c.stopLocked(id)
	c.mu.Unlock()

	c.publish()
}

// DismissAll убирает все уведомления
func (c *Channel) DismissAll() {
	c.mu.Lock()
	if len(c.toasts) == 0 {
		c.mu.Unlock()
		return
	}
	for id := range c.stops {
		c.stopLocked(id)
	}
	c.toasts = nil
	c.mu.Unlock()

	c.publish()
}

// Toasts возвращает снимок активных уведомлений
func (c *Channel) Toasts() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe регистрирует получателя снимков; возвращает функцию отписки
func (c *Channel) Subscribe(fn func([]Toast)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Close останавливает все таймеры и ждет завершения горутин отсчета.
// Уведомления, показанные после Close, не закрываются автоматически.
func (c *Channel) Close() {
	c.mu.Lock()
	c.closed = true
	for id := range c.stops {
		c.stopLocked(id)
	}
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Channel) countdown(id string, d time.Duration, stop <-chan struct{}) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	steps := float64(d) / float64(c.tick)
	for step := 1; ; step++ {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		progress := 100 - float64(step)/steps*100
		if progress <= 0 {
			c.Dismiss(id)
			return
		}
		if !c.setProgress(id, progress) {
			return
		}
	}
}

// setProgress обновляет прогресс; false, если уведомление уже убрано
func (c *Channel) setProgress(id string, progress float64) bool {
	c.mu.Lock()
	found := false
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts[i].Progress = progress
			found = true
			break
		}
	}
	c.mu.Unlock()

	if found {
		c.publish()
	}
	return found
}

// stopLocked закрывает канал остановки отсчета ровно один раз
func (c *Channel) stopLocked(id string) {
	if stop, ok := c.stops[id]; ok {
		close(stop)
		delete(c.stops, id)
	}
}

func (c *Channel) snapshotLocked() []Toast {
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// publish рассылает снимок; снимок берется под deliverMu, чтобы подписчики
// видели состояния в том порядке, в котором они возникали
func (c *Channel) publish() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	snapshot := c.snapshotLocked()
	subs := make([]func([]Toast), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
