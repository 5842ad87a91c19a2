package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/balancio/internal/client/notify"
)

const (
	// DefaultExternalTimeout общий лимит на внешний запрос вместе с повторами
	DefaultExternalTimeout = 30 * time.Second
	// DefaultExternalRetries число повторов после первой попытки
	DefaultExternalRetries = 2

	externalUserAgent = "Balancio-App/1.0"
)

// Toaster показывает пользовательские уведомления
type Toaster interface {
	Error(title, message string, opts ...notify.Option) notify.Toast
	Warning(title, message string, opts ...notify.Option) notify.Toast
}

// externalHeaders добавляются к внешнему запросу, если отсутствуют
var externalHeaders = [][2]string{
	{"User-Agent", externalUserAgent},
	{"Accept", "application/json, text/plain, */*"},
	{"Cache-Control", "no-cache"},
	{"Access-Control-Request-Headers", "Content-Type, Authorization"},
}

// ExternalConfig параметры обработки внешних запросов
type ExternalConfig struct {
	Toaster Toaster
	Logger  *slog.Logger
	BaseURL string
	Timeout time.Duration
	Retries uint64
}

// ExternalAPI обрабатывает запросы к сторонним сервисам: заголовки по умолчанию,
// общий таймаут, немедленные повторы для сетевых ошибок и 5xx, одно уведомление
// при окончательной неудаче. Внутренние запросы проходят без изменений.
func ExternalAPI(cfg ExternalConfig) Middleware {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultExternalTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next Handler) Handler {
		return func(ctx context.Context, r *Request) (*Response, error) {
			if !IsExternal(cfg.BaseURL, r.URL) {
				return next(ctx, r)
			}

			ext := r.Clone()
			for _, h := range externalHeaders {
				if ext.Header.Get(h[0]) == "" {
					ext.Header.Set(h[0], h[1])
				}
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			var (
				resp    *Response
				attempt int
			)
			backoff := retry.WithMaxRetries(cfg.Retries, immediate())
			err := retry.Do(ctx, backoff, func(ctx context.Context) error {
				attempt++
				res, err := next(ctx, ext)
				if err != nil {
					if Retryable(err) && ctx.Err() == nil {
						cfg.Logger.Warn("external request failed",
							"service", ServiceName(r.URL),
							"attempt", attempt,
							"error", err,
						)
						return retry.RetryableError(err)
					}
					return err
				}
				resp = res
				return nil
			})
			if err != nil {
				err = terminalError(ctx, ext, err)
				if !r.Quiet && cfg.Toaster != nil {
					notifyExternal(cfg.Toaster, r.URL, err)
				}
				cfg.Logger.Error("external request failed permanently",
					"service", ServiceName(r.URL),
					"attempts", attempt,
					"status", StatusCode(err),
					"error", err,
				)
				return nil, MarkNotified(err)
			}

			return resp, nil
		}
	}
}

// immediate повторяет без задержки
func immediate() retry.Backoff {
	return retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	})
}

// Retryable сообщает, имеет ли смысл повторить запрос: нет ответа или ответ 5xx
func Retryable(err error) bool {
	code := StatusCode(err)
	var netErr *NetworkError
	if code == 0 {
		return errors.As(err, &netErr)
	}
	return code >= 500
}

// terminalError приводит истечение общего таймаута к сетевой ошибке
func terminalError(ctx context.Context, r *Request, err error) error {
	var (
		netErr  *NetworkError
		httpErr *HTTPError
	)
	if errors.As(err, &netErr) || errors.As(err, &httpErr) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return &NetworkError{Method: r.Method, URL: r.URL, Err: err}
	}
	return err
}

func notifyExternal(toaster Toaster, rawURL string, err error) {
	service := ServiceName(rawURL)
	code := StatusCode(err)

	switch {
	case code == 0:
		toaster.Error("Network Error",
			fmt.Sprintf("Unable to connect to %s. Please check your internet connection.", service))
	case code == 429:
		toaster.Warning("Rate Limit Exceeded",
			fmt.Sprintf("Too many requests to %s. Please try again later.", service))
	case code >= 400 && code < 500:
		var httpErr *HTTPError
		statusText := ""
		if errors.As(err, &httpErr) {
			statusText = httpErr.StatusText()
		}
		toaster.Error("External API Error",
			fmt.Sprintf("Error accessing %s: %d %s", service, code, statusText))
	case code >= 500:
		toaster.Error("External Service Unavailable",
			fmt.Sprintf("%s is currently unavailable. Please try again later.", service))
	default:
		toaster.Error("External API Error",
			fmt.Sprintf("An unexpected error occurred while accessing %s.", service))
	}
}
