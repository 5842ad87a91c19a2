package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/balancio/internal/client/notify"
)

// errorToastDuration время показа уведомлений об ошибках запросов
const errorToastDuration = 6 * time.Second

// ErrorDetails заголовок и текст, извлеченные из ответа с ошибкой
type ErrorDetails struct {
	Title   string
	Message string
}

// ErrorTranslation переводит ошибки запросов в уведомления пользователя.
// Ошибка всегда возвращается вызывающему; 401 дополнительно уводит на вход.
// Ошибки, о которых уже уведомил ExternalAPI, повторно не показываются.
func ErrorTranslation(toaster Toaster, navigator Navigator, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next Handler) Handler {
		return func(ctx context.Context, r *Request) (*Response, error) {
			resp, err := next(ctx, r)
			if err == nil {
				return resp, nil
			}
			if IsNotified(err) || r.Quiet || errors.Is(err, context.Canceled) {
				return resp, err
			}

			var httpErr *HTTPError
			if !errors.As(err, &httpErr) {
				// Ответа нет: ошибка на стороне клиента или сети
				logger.Error("client-side request error", "method", r.Method, "path", sanitizeURL(r.URL), "error", err)
				toaster.Error("Network Error", "Please check your internet connection and try again.",
					notify.WithDuration(errorToastDuration))
				return resp, err
			}

			logger.Warn("server-side request error", "method", r.Method, "path", sanitizeURL(r.URL), "status", httpErr.StatusCode)
			details := ExtractErrorDetails(httpErr.StatusCode, httpErr.Body)
			title, message := details.Title, details.Message

			switch httpErr.StatusCode {
			case http.StatusBadRequest:
				// заголовок и текст из тела ответа
			case http.StatusUnauthorized:
				if r.Anonymous {
					// неудачный вход или регистрация: сессии еще нет, показываем ответ сервера
					title = "Authentication Failed"
				} else {
					title, message = "Authentication Required", "Please log in to continue."
				}
			case http.StatusForbidden:
				title, message = "Access Denied", "You do not have permission to perform this action."
			case http.StatusNotFound:
				title, message = "Resource Not Found", "The requested resource could not be found."
			case http.StatusUnprocessableEntity:
				title = "Validation Error"
			case http.StatusInternalServerError:
				title, message = "Server Error", "An unexpected error occurred on the server. Please try again later."
			case http.StatusServiceUnavailable:
				title, message = "Service Unavailable", "The service is temporarily unavailable. Please try again later."
			}

			toaster.Error(title, message, notify.WithDuration(errorToastDuration))

			if httpErr.StatusCode == http.StatusUnauthorized && !r.Anonymous && navigator != nil {
				navigator.ToLogin(ctx)
			}

			return resp, err
		}
	}
}

// ExtractErrorDetails извлекает заголовок и сообщение из тела ответа.
// Порядок: пара error+message, затем detail, затем первое поле формы
// (в порядке документа) с непустым массивом сообщений. Иначе текст по статусу.
func ExtractErrorDetails(status int, body []byte) ErrorDetails {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil && len(obj) > 0 {
		title, message := rawString(obj["error"]), rawString(obj["message"])
		if title != "" && message != "" {
			return ErrorDetails{Title: title, Message: message}
		}
		if detail := rawString(obj["detail"]); detail != "" {
			return ErrorDetails{Title: "Validation Error", Message: detail}
		}
		if field, msg, ok := firstFieldError(body); ok {
			return ErrorDetails{Title: "Validation Error", Message: field + ": " + msg}
		}
	}

	switch status {
	case http.StatusBadRequest:
		return ErrorDetails{Title: "Bad Request", Message: "The request could not be understood by the server."}
	case http.StatusUnauthorized:
		return ErrorDetails{Title: "Unauthorized", Message: "Authentication is required."}
	case http.StatusForbidden:
		return ErrorDetails{Title: "Forbidden", Message: "You do not have permission to access this resource."}
	case http.StatusNotFound:
		return ErrorDetails{Title: "Not Found", Message: "The requested resource was not found."}
	case http.StatusInternalServerError:
		return ErrorDetails{Title: "Server Error", Message: "An internal server error occurred."}
	}

	message := http.StatusText(status)
	if message == "" {
		message = "An unexpected error occurred."
	}
	return ErrorDetails{Title: fmt.Sprintf("Error %d", status), Message: message}
}

// firstFieldError ищет первое поле с непустым массивом сообщений, сохраняя порядок ключей
func firstFieldError(body []byte) (field, message string, ok bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return "", "", false
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return "", "", false
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", "", false
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return "", "", false
		}

		var msgs []json.RawMessage
		if err := json.Unmarshal(raw, &msgs); err != nil || len(msgs) == 0 {
			continue
		}
		if s := rawString(msgs[0]); s != "" {
			return key, s, true
		}
		return key, string(msgs[0]), true
	}

	return "", "", false
}

// rawString возвращает значение, если это JSON-строка
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
