package notify

import "time"

// Severity уровень важности уведомления
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

const (
	// DefaultDuration время жизни уведомления с автозакрытием
	DefaultDuration = 4 * time.Second
	// DefaultTick шаг обратного отсчета
	DefaultTick = 100 * time.Millisecond
)

// Toast короткоживущее пользовательское уведомление
type Toast struct {
	CreatedAt time.Time     `json:"createdAt"`
	ID        string        `json:"id"`       // UUID v7, упорядочен по времени
	Title     string        `json:"title"`    // заголовок
	Message   string        `json:"message"`  // текст
	Severity  Severity      `json:"severity"` // success, error, warning, info
	Duration  time.Duration `json:"duration"`
	Progress  float64       `json:"progress"` // 100..0, убывает при автозакрытии
	AutoClose bool          `json:"autoClose"`
}

// Option переопределяет параметры уведомления
type Option func(*Toast)

// WithDuration задает время жизни уведомления; ноль означает значение по умолчанию
func WithDuration(d time.Duration) Option {
	return func(t *Toast) {
		t.Duration = d
	}
}

// WithAutoClose включает или выключает автозакрытие
func WithAutoClose(autoClose bool) Option {
	return func(t *Toast) {
		t.AutoClose = autoClose
	}
}
