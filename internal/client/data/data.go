// Package data содержит доменные сервисы клиента поверх REST API Balancio.
// Сервисы не хранят состояние: каждый вызов идет на бэкенд, ответы
// приводятся к моделям, ошибки показываются пользователю и возвращаются.
package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iudanet/balancio/internal/client/api"
	"github.com/iudanet/balancio/internal/client/notify"
)

// ErrBudgetNotSet месячный бюджет не задан (отсутствует или равен нулю)
var ErrBudgetNotSet = errors.New("monthly budget is not set")

// Backend транспорт к REST API; реализуется *api.Client
type Backend interface {
	Get(ctx context.Context, endpoint string, out any) error
	GetQuiet(ctx context.Context, endpoint string, out any) error
	Post(ctx context.Context, endpoint string, in, out any) error
	Put(ctx context.Context, endpoint string, in, out any) error
	Delete(ctx context.Context, endpoint string, out any) error
	GetBlob(ctx context.Context, endpoint string) (*api.Blob, error)
	PostMultipart(ctx context.Context, endpoint, field, filename, contentType string, content []byte, out any) error
	Fetch(ctx context.Context, method, rawURL string, in, out any) error
}

// Toaster показывает уведомления; реализуется *notify.Channel
type Toaster interface {
	Success(title, message string, opts ...notify.Option) notify.Toast
	Error(title, message string, opts ...notify.Option) notify.Toast
	Warning(title, message string, opts ...notify.Option) notify.Toast
	Info(title, message string, opts ...notify.Option) notify.Toast
}

// operation описывает действие для текста уведомления об ошибке
type operation struct {
	verb   string // load, create, update, delete
	object string // transaction, category, ...
	plural bool
}

// titleCase Caser хранит состояние, поэтому создается на каждый вызов
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func (op operation) noun() string {
	if op.plural {
		if base, ok := strings.CutSuffix(op.object, "y"); ok {
			return base + "ies"
		}
		return op.object + "s"
	}
	return op.object
}

func (op operation) title() string {
	return fmt.Sprintf("Failed to %s %s", titleCase(op.verb), titleCase(op.noun()))
}

// message текст ошибки по группе статуса
func (op operation) message(status int) string {
	switch status {
	case http.StatusBadRequest:
		return fmt.Sprintf("Invalid %s data. Please check your input.", op.object)
	case http.StatusUnauthorized:
		return "Authentication required. Please log in."
	case http.StatusForbidden:
		return fmt.Sprintf("You don't have permission to %s this %s.", op.verb, op.object)
	case http.StatusNotFound:
		return titleCase(op.object[:1]) + op.object[1:] + " not found."
	case http.StatusInternalServerError:
		return "Server error. Please try again later."
	default:
		return fmt.Sprintf("Unable to %s %s. Please try again later.", op.verb, op.noun())
	}
}

// fail показывает уведомление об ошибке операции и возвращает исходную ошибку
func fail(toaster Toaster, logger *slog.Logger, op operation, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	status := api.StatusCode(err)
	logger.Error("request failed", "operation", op.verb+" "+op.noun(), "status", status, "error", err)
	toasterOrDiscard(toaster).Error(op.title(), op.message(status))
	return err
}

// withRetry повторяет fn до retries раз без задержки; повторяются только
// сетевые ошибки и ответы 5xx
func withRetry(ctx context.Context, retries uint64, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retries, retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	}))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if api.Retryable(err) && ctx.Err() == nil {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}

// toasterOrDiscard подставляет пустой Toaster, если уведомления не нужны
func toasterOrDiscard(toaster Toaster) Toaster {
	if toaster == nil {
		return discardToaster{}
	}
	return toaster
}

// discardToaster молча отбрасывает уведомления
type discardToaster struct{}

func (discardToaster) Success(title, message string, _ ...notify.Option) notify.Toast {
	return notify.Toast{Title: title, Message: message, Severity: notify.SeveritySuccess}
}

func (discardToaster) Error(title, message string, _ ...notify.Option) notify.Toast {
	return notify.Toast{Title: title, Message: message, Severity: notify.SeverityError}
}

func (discardToaster) Warning(title, message string, _ ...notify.Option) notify.Toast {
	return notify.Toast{Title: title, Message: message, Severity: notify.SeverityWarning}
}

func (discardToaster) Info(title, message string, _ ...notify.Option) notify.Toast {
	return notify.Toast{Title: title, Message: message, Severity: notify.SeverityInfo}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
