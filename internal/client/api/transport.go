package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxBodySize ограничивает размер читаемого ответа (отчеты и экспорт)
const maxBodySize = 64 << 20

// Transport возвращает конечный обработчик цепочки: выполняет HTTP запрос,
// читает тело и логирует результат. Ответ вне 2xx становится *HTTPError,
// отсутствие ответа становится *NetworkError.
func Transport(httpClient *http.Client, logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, r *Request) (*Response, error) {
		var body io.Reader
		if len(r.Body) > 0 {
			body = bytes.NewReader(r.Body)
		}

		req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if r.Header != nil {
			req.Header = r.Header.Clone()
		}

		requestID := uuid.NewString()
		start := time.Now()

		resp, err := httpClient.Do(req)
		if err != nil {
			logger.Log(ctx, slog.LevelError, "HTTP request failed",
				"request_id", requestID,
				"method", r.Method,
				"path", sanitizeURL(r.URL),
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return nil, &NetworkError{Method: r.Method, URL: r.URL, Err: err}
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		// Читаем тело ответа
		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			logger.Log(ctx, slog.LevelError, "HTTP response read failed",
				"request_id", requestID,
				"method", r.Method,
				"path", sanitizeURL(r.URL),
				"status", resp.StatusCode,
				"error", err,
			)
			return nil, &NetworkError{Method: r.Method, URL: r.URL, Err: fmt.Errorf("failed to read response body: %w", err)}
		}

		// Определяем уровень логирования на основе статуса
		logLevel := slog.LevelInfo
		if resp.StatusCode >= 500 {
			logLevel = slog.LevelError
		} else if resp.StatusCode >= 400 {
			logLevel = slog.LevelWarn
		}

		logger.Log(ctx, logLevel, "HTTP request",
			"request_id", requestID,
			"method", r.Method,
			"path", sanitizeURL(r.URL),
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes_read", len(respBody),
		)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &HTTPError{
				Method:     r.Method,
				URL:        r.URL,
				StatusCode: resp.StatusCode,
				Header:     resp.Header,
				Body:       respBody,
			}
		}

		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       respBody,
		}, nil
	}
}

// sanitizeURL оставляет хост и путь без query, маскируя sensitive сегменты
func sanitizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	return u.Host + sanitizePath(u.Path)
}

// sanitizePath удаляет sensitive части из пути (например, токены в URL)
// /auth/reset/TOKEN заменяется на /auth/reset/***
func sanitizePath(path string) string {
	if !strings.Contains(path, "/token/") && !strings.Contains(path, "/reset/") {
		return path
	}

	parts := strings.Split(path, "/")
	for i, part := range parts {
		if (part == "token" || part == "reset") && i+1 < len(parts) && parts[i+1] != "" {
			parts[i+1] = "***"
		}
	}
	return strings.Join(parts, "/")
}
