package auth

import "errors"

var (
	// ErrNotAuthenticated нет сохраненной сессии
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoAccessToken сервер не вернул access token
	ErrNoAccessToken = errors.New("server response has no access token")
)
