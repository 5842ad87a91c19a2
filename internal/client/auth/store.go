package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/balancio/internal/client/storage"
	"github.com/iudanet/balancio/internal/models"
)

// SessionStore хранит токены и текущего пользователя поверх storage.SessionStorage.
// Пользователь кешируется в памяти; кеш меняется только после успешной записи.
type SessionStore struct {
	storage storage.SessionStorage
	logger  *slog.Logger
	user    *models.User
	// generation растет при каждом SetSession и Clear;
	// чтение из хранилища попадает в кеш, только если поколение не сменилось
	generation uint64
	mu         sync.RWMutex
}

// NewSessionStore создает хранилище сессии
func NewSessionStore(s storage.SessionStorage, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{storage: s, logger: logger}
}

// SetSession сохраняет токены и пользователя одной транзакцией
func (s *SessionStore) SetSession(ctx context.Context, token, refreshToken string, user *models.User) error {
	data := &storage.SessionData{Token: token, RefreshToken: refreshToken}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		data.User = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SaveSession(ctx, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.user = user
	s.generation++
	return nil
}

// Token возвращает access token; пустая строка, если сессии нет
func (s *SessionStore) Token(ctx context.Context) string {
	data := s.load(ctx)
	if data == nil {
		return ""
	}
	return data.Token
}

// RefreshToken возвращает refresh token; пустая строка, если его нет
func (s *SessionStore) RefreshToken(ctx context.Context) string {
	data := s.load(ctx)
	if data == nil {
		return ""
	}
	return data.RefreshToken
}

// CurrentUser возвращает пользователя сессии: из кеша или, один раз, из хранилища.
// Поврежденные данные и ошибки хранилища дают nil.
func (s *SessionStore) CurrentUser(ctx context.Context) *models.User {
	s.mu.RLock()
	user, generation := s.user, s.generation
	s.mu.RUnlock()
	if user != nil {
		return user
	}

	data := s.load(ctx)
	if data == nil || len(data.User) == 0 {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(data.User, &u); err != nil {
		s.logger.Warn("stored user is malformed", "error", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		// пока читали, сессию заменили или удалили
		return s.user
	}
	if s.user == nil {
		s.user = &u
	}
	return s.user
}

// IsAuthenticated true, если сохранен access token.
// Заодно подгружает пользователя в кеш.
func (s *SessionStore) IsAuthenticated(ctx context.Context) bool {
	if s.Token(ctx) == "" {
		return false
	}
	s.CurrentUser(ctx)
	return true
}

// UpdateUser заменяет сохраненного пользователя; требует активной сессии
func (s *SessionStore) UpdateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// токен проверяется под блокировкой, иначе Clear успеет удалить сессию до записи
	if s.Token(ctx) == "" {
		return ErrNotAuthenticated
	}
	if err := s.storage.SaveUser(ctx, raw); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	s.user = user
	return nil
}

// Clear удаляет сессию и кеш
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.user = nil
	s.generation++
	return nil
}

func (s *SessionStore) load(ctx context.Context) *storage.SessionData {
	data, err := s.storage.GetSession(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			s.logger.Warn("failed to read session", "error", err)
		}
		return nil
	}
	return data
}
