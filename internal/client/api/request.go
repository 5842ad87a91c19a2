package api

import (
	"context"
	"net/http"
)

// Request исходящий запрос, проходящий через цепочку перехватчиков
type Request struct {
	Header    http.Header
	Method    string
	URL       string // абсолютный URL
	Body      []byte
	Anonymous bool // не добавлять Authorization (вход, регистрация)
	Quiet     bool // ошибки не показываются пользователю (фоновые запросы)
}

// Clone возвращает копию запроса с независимыми заголовками
func (r *Request) Clone() *Request {
	out := *r
	out.Header = r.Header.Clone()
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	return &out
}

// Response ответ сервера с прочитанным телом
type Response struct {
	Header     http.Header
	Body       []byte
	StatusCode int
}

// Handler выполняет запрос
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Middleware оборачивает Handler
type Middleware func(next Handler) Handler

// Chain объединяет перехватчики; первый в списке становится внешним
func Chain(mws ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

// Tracker получает отметки о начале и конце каждого запроса
type Tracker interface {
	Start()
	Done()
}

// Navigator уводит пользователя на вход после ответа 401
type Navigator interface {
	ToLogin(ctx context.Context)
}

// TokenSource возвращает текущий токен доступа; пустая строка означает его отсутствие
type TokenSource interface {
	Token(ctx context.Context) string
}
