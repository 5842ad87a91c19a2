package cli

import (
	"sync"
	"time"

	"github.com/iudanet/balancio/internal/client/iocli"
	"github.com/iudanet/balancio/internal/client/notify"
)

var severityIcons = map[notify.Severity]string{
	notify.SeveritySuccess: "✓",
	notify.SeverityError:   "✗",
	notify.SeverityWarning: "⚠️ ",
	notify.SeverityInfo:    "ℹ",
}

// toastPrinter печатает каждое уведомление в stderr один раз, при появлении
type toastPrinter struct {
	io   iocli.IO
	seen map[string]struct{}
	mu   sync.Mutex
}

func newToastPrinter(io iocli.IO) *toastPrinter {
	return &toastPrinter{io: io, seen: make(map[string]struct{})}
}

func (p *toastPrinter) render(toasts []notify.Toast) {
	p.mu.Lock()
	defer p.mu.Unlock()

	active := make(map[string]struct{}, len(toasts))
	for _, t := range toasts {
		active[t.ID] = struct{}{}
		if _, ok := p.seen[t.ID]; ok {
			continue
		}
		if t.Message != "" {
			p.io.Errorf("%s %s: %s\n", severityIcons[t.Severity], t.Title, t.Message)
		} else {
			p.io.Errorf("%s %s\n", severityIcons[t.Severity], t.Title)
		}
	}
	// закрытые уведомления больше не придут, их id можно забыть
	p.seen = active
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// spinner индикатор загрузки в stderr, пока есть незавершенные запросы
type spinner struct {
	io   iocli.IO
	quit chan struct{}
	done chan struct{}
	mu   sync.Mutex
}

func newSpinner(io iocli.IO) *spinner {
	return &spinner{io: io}
}

func (s *spinner) toggle(visible bool) {
	if visible {
		s.start()
	} else {
		s.stop()
	}
}

func (s *spinner) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quit != nil {
		return
	}

	s.quit = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.quit, s.done)
}

func (s *spinner) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quit == nil {
		return
	}

	close(s.quit)
	<-s.done
	s.quit, s.done = nil, nil
	// стираем строку индикатора
	s.io.Errorf("\r\033[K")
}

func (s *spinner) run(quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		s.io.Errorf("\r%s Loading...", spinnerFrames[frame%len(spinnerFrames)])
		select {
		case <-quit:
			return
		case <-ticker.C:
		}
	}
}
