package storage

import "context"

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage defines interface for storing the authenticated session on client.
// Token, refresh token and serialized user are kept in separate named slots.
type SessionStorage interface {
	// SaveSession writes all slots in one transaction: either all of them are stored or none
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession reads all slots. Missing slots are returned empty.
	// Returns ErrSessionNotFound if neither token nor user is stored
	GetSession(ctx context.Context) (*SessionData, error)

	// SaveUser replaces the serialized user slot only
	SaveUser(ctx context.Context, user []byte) error

	// DeleteSession removes all slots; no-op when nothing is stored
	DeleteSession(ctx context.Context) error
}

// SessionData represents session slots as they are stored
type SessionData struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         []byte `json:"current_user"` // JSON-сериализованный пользователь
}
