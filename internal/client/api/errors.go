package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	pkgapi "github.com/iudanet/balancio/pkg/api"
)

// HTTPError ответ сервера со статусом вне диапазона 2xx
type HTTPError struct {
	Header     http.Header
	Method     string
	URL        string
	Body       []byte
	StatusCode int
}

func (e *HTTPError) Error() string {
	if msg := e.serverMessage(); msg != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// StatusText возвращает текстовое описание статуса
func (e *HTTPError) StatusText() string {
	return http.StatusText(e.StatusCode)
}

func (e *HTTPError) serverMessage() string {
	var errResp pkgapi.ErrorResponse
	if err := json.Unmarshal(e.Body, &errResp); err != nil {
		return ""
	}
	switch {
	case errResp.Message != "":
		return errResp.Message
	case errResp.Error != "":
		return errResp.Error
	default:
		return errResp.Detail
	}
}

// ServerMessage возвращает сообщение из тела ответа (message, error или detail)
func ServerMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.serverMessage()
	}
	return ""
}

// NetworkError запрос не получил ответа: DNS, соединение, TLS, таймаут
type NetworkError struct {
	Err    error
	Method string
	URL    string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusCode возвращает HTTP статус ошибки; 0 для сетевых ошибок и ошибок без ответа
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// notifiedError помечает ошибку, о которой пользователь уже уведомлен
type notifiedError struct {
	err error
}

func (e *notifiedError) Error() string { return e.err.Error() }
func (e *notifiedError) Unwrap() error { return e.err }

// MarkNotified помечает ошибку как уже показанную пользователю
func MarkNotified(err error) error {
	if err == nil || IsNotified(err) {
		return err
	}
	return &notifiedError{err: err}
}

// IsNotified сообщает, что пользователь уже получил уведомление об этой ошибке
func IsNotified(err error) bool {
	var n *notifiedError
	return errors.As(err, &n)
}
