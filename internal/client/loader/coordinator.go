package loader

import "sync"

// Coordinator считает незавершенные запросы и сообщает подписчикам
// о переходах между состояниями "нет запросов" и "есть запросы".
type Coordinator struct {
	subs      map[uint64]func(visible bool)
	nextSub   uint64
	pending   int
	mu        sync.Mutex
	deliverMu sync.Mutex
}

// New создает координатор без активных запросов
func New() *Coordinator {
	return &Coordinator{subs: make(map[uint64]func(bool))}
}

// Start отмечает начало запроса
func (c *Coordinator) Start() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	c.pending++
	changed := c.pending == 1
	subs := c.subscribersLocked(changed)
	c.mu.Unlock()

	notify(subs, true)
}

// Done отмечает завершение запроса; счетчик не уходит ниже нуля
func (c *Coordinator) Done() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	if c.pending == 0 {
		c.mu.Unlock()
		return
	}
	c.pending--
	changed := c.pending == 0
	subs := c.subscribersLocked(changed)
	c.mu.Unlock()

	notify(subs, false)
}

// Pending возвращает число незавершенных запросов
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Visible сообщает, должен ли индикатор загрузки быть показан
func (c *Coordinator) Visible() bool {
	return c.Pending() > 0
}

// Subscribe регистрирует получателя переходов видимости.
// Вызовы приходят последовательно и вне блокировки счетчика.
func (c *Coordinator) Subscribe(fn func(visible bool)) (cancel func()) {
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

func (c *Coordinator) subscribersLocked(changed bool) []func(bool) {
	if !changed {
		return nil
	}
	subs := make([]func(bool), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(bool), visible bool) {
	for _, fn := range subs {
		fn(visible)
	}
}
