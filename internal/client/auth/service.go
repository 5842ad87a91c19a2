package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/balancio/internal/client/data"
	"github.com/iudanet/balancio/internal/models"
	"github.com/iudanet/balancio/internal/validation"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

const (
	loginEndpoint  = "auth/login"
	signupEndpoint = "auth/signup"
	logoutEndpoint = "auth/logout"
)

// Backend запросы аутентификации; реализуется *api.Client
type Backend interface {
	PostAnonymous(ctx context.Context, endpoint string, in, out any) error
	PostQuiet(ctx context.Context, endpoint string, in, out any) error
}

// Service предоставляет функции авторизации
type Service struct {
	client Backend
	store  *SessionStore
	logger *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(client Backend, store *SessionStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Login выполняет вход и сохраняет сессию
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	in := models.LoginInput{Email: email, Password: password}
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	var resp pkgapi.AuthResponse
	req := pkgapi.LoginRequest{Email: email, Password: password}
	if err := s.client.PostAnonymous(ctx, loginEndpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.Access == "" {
		return nil, fmt.Errorf("login failed: %w", ErrNoAccessToken)
	}

	user := data.UserFromDTO(resp.User)
	if user == nil {
		user = &models.User{Email: email}
	}
	if err := s.store.SetSession(ctx, resp.Access, resp.Refresh, user); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", "user_id", user.ID)
	return user, nil
}

// Signup регистрирует пользователя. Если сервер сразу выдал токены, сессия сохраняется;
// иначе пользователь должен выполнить вход отдельно.
func (s *Service) Signup(ctx context.Context, firstName, lastName, email, password string) (*models.User, bool, error) {
	in := models.SignupInput{FirstName: firstName, LastName: lastName, Email: email, Password: password}
	if err := validation.Validate(in); err != nil {
		return nil, false, err
	}

	var resp pkgapi.AuthResponse
	req := pkgapi.SignupRequest{FirstName: firstName, LastName: lastName, Email: email, Password: password}
	if err := s.client.PostAnonymous(ctx, signupEndpoint, req, &resp); err != nil {
		return nil, false, fmt.Errorf("registration failed: %w", err)
	}

	user := data.UserFromDTO(resp.User)
	if user == nil {
		user = &models.User{Email: email, FirstName: firstName, LastName: lastName}
	}
	if resp.Access == "" {
		return user, false, nil
	}

	if err := s.store.SetSession(ctx, resp.Access, resp.Refresh, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// Logout уведомляет сервер (без гарантий) и всегда удаляет локальную сессию
func (s *Service) Logout(ctx context.Context) error {
	if s.store.Token(ctx) != "" {
		body := map[string]string{"refresh": s.store.RefreshToken(ctx)}
		if err := s.client.PostQuiet(ctx, logoutEndpoint, body, nil); err != nil {
			// Не прерываем процесс, если сервер недоступен
			s.logger.Warn("failed to logout on server", "error", err)
		}
	} else {
		s.logger.Debug("no session found during logout")
	}

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

// Status сведения о текущей сессии
type Status struct {
	User          *models.User
	Claims        *Claims // nil, если токен не JWT
	Authenticated bool
}

// Status возвращает состояние сессии без обращения к серверу
func (s *Service) Status(ctx context.Context) Status {
	token := s.store.Token(ctx)
	if token == "" {
		return Status{}
	}

	st := Status{Authenticated: true, User: s.store.CurrentUser(ctx)}
	if claims, err := ParseClaims(token); err == nil {
		st.Claims = claims
	} else {
		s.logger.Debug("access token is not a JWT", "error", err)
	}
	return st
}
