package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/iudanet/balancio/internal/models"
	"github.com/iudanet/balancio/internal/validation"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

const (
	profileEndpoint        = "users/profile"
	changePasswordEndpoint = "users/change-password"
	settingsEndpoint       = "users/settings"
	avatarEndpoint         = "users/avatar"
	activityEndpoint       = "users/activity"

	// повторы для чтения профиля и ленты активности
	profileRetries  = 2
	activityRetries = 1

	// DefaultActivityLimit размер ленты активности по умолчанию
	DefaultActivityLimit = 10
)

// SessionUpdater обновляет сохраненного пользователя текущей сессии
type SessionUpdater interface {
	UpdateUser(ctx context.Context, user *models.User) error
}

// UserService профиль, настройки и аватар пользователя
type UserService struct {
	backend Backend
	toaster Toaster
	session SessionUpdater
	logger  *slog.Logger
}

// NewUserService создает сервис профиля. session может быть nil.
func NewUserService(backend Backend, toaster Toaster, session SessionUpdater, logger *slog.Logger) *UserService {
	return &UserService{
		backend: backend,
		toaster: toasterOrDiscard(toaster),
		session: session,
		logger:  loggerOrDefault(logger),
	}
}

// Profile загружает профиль текущего пользователя
func (s *UserService) Profile(ctx context.Context) (*models.User, error) {
	var body []byte
	err := withRetry(ctx, profileRetries, func(ctx context.Context) error {
		return s.backend.Get(ctx, profileEndpoint, &body)
	})
	if err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "profile"}, err)
	}

	user, err := decodeUser(body)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, user)
	return user, nil
}

// UpdateProfile изменяет профиль. Имя отправляется в обоих регистрах и склеенным в name.
func (s *UserService) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.User, error) {
	if in == (models.ProfileInput{}) {
		return nil, fmt.Errorf("%w: nothing to update", validation.ErrInvalidInput)
	}
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	req := pkgapi.UpdateProfileRequest{
		FirstName:      in.FirstName,
		FirstNameSnake: in.FirstName,
		LastName:       in.LastName,
		LastNameSnake:  in.LastName,
		Name:           strings.TrimSpace(in.FirstName + " " + in.LastName),
		Email:          in.Email,
		Bio:            in.Bio,
		PhoneNumber:    in.PhoneNumber,
	}

	var body []byte
	if err := s.backend.Put(ctx, profileEndpoint, req, &body); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "update", object: "profile"}, err)
	}

	user, err := decodeUser(body)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, user)
	s.toaster.Success("Profile Updated", "Your profile has been updated successfully")
	return user, nil
}

// ChangePassword меняет пароль; confirmPassword совпадает с новым паролем
func (s *UserService) ChangePassword(ctx context.Context, in models.PasswordChangeInput) error {
	if err := validation.Validate(in); err != nil {
		return err
	}

	req := pkgapi.ChangePasswordRequest{
		CurrentPassword: in.CurrentPassword,
		NewPassword:     in.NewPassword,
		ConfirmPassword: in.NewPassword,
	}
	if err := s.backend.Put(ctx, changePasswordEndpoint, req, nil); err != nil {
		return fail(s.toaster, s.logger, operation{verb: "change", object: "password"}, err)
	}

	s.toaster.Success("Password Changed", "Your password has been changed successfully")
	return nil
}

// UploadAvatar загружает изображение аватара в поле avatar
func (s *UserService) UploadAvatar(ctx context.Context, filename, contentType string, content []byte) (*models.User, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: avatar file is empty", validation.ErrInvalidInput)
	}

	var resp pkgapi.UserEnvelope
	if err := s.backend.PostMultipart(ctx, avatarEndpoint, "avatar", filename, contentType, content, &resp); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "upload", object: "avatar"}, err)
	}

	user := UserFromDTO(resp.User)
	s.remember(ctx, user)
	s.toaster.Success("Avatar Updated", "Your profile picture has been updated")
	return user, nil
}

// DeleteAvatar удаляет аватар
func (s *UserService) DeleteAvatar(ctx context.Context) (*models.User, error) {
	var resp pkgapi.UserEnvelope
	if err := s.backend.Delete(ctx, avatarEndpoint, &resp); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "delete", object: "avatar"}, err)
	}

	user := UserFromDTO(resp.User)
	s.remember(ctx, user)
	s.toaster.Info("Avatar Removed", "Your profile picture has been removed")
	return user, nil
}

// Activity возвращает последние записи ленты активности
func (s *UserService) Activity(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	endpoint := activityEndpoint + "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()

	var body []byte
	err := withRetry(ctx, activityRetries, func(ctx context.Context) error {
		return s.backend.Get(ctx, endpoint, &body)
	})
	if err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "activity"}, err)
	}

	return pkgapi.DecodeList[models.Activity](body)
}

// UpdateSettings сохраняет настройки уведомлений и формат отчетов
func (s *UserService) UpdateSettings(ctx context.Context, in models.SettingsInput) (*models.User, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	req := pkgapi.UserSettingsDTO{
		ReportFormat:       in.ReportFormat,
		EmailNotifications: in.EmailNotifications,
		BudgetAlerts:       in.BudgetAlerts,
		MonthlyReports:     in.MonthlyReports,
	}

	var body []byte
	if err := s.backend.Put(ctx, settingsEndpoint, req, &body); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "update", object: "setting", plural: true}, err)
	}

	user, err := decodeUser(body)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, user)
	s.toaster.Success("Settings Saved", "Your preferences have been updated")
	return user, nil
}

// remember обновляет пользователя в сессии; ошибка не прерывает операцию
func (s *UserService) remember(ctx context.Context, user *models.User) {
	if s.session == nil || user == nil {
		return
	}
	if err := s.session.UpdateUser(ctx, user); err != nil {
		s.logger.Warn("failed to update session user", "error", err)
	}
}

// decodeUser разбирает профиль в конверте {"user": {...}} или без него
func decodeUser(body []byte) (*models.User, error) {
	var env pkgapi.UserEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if env.User != nil {
		return UserFromDTO(env.User), nil
	}

	var dto pkgapi.UserDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if dto.ID == "" && dto.MongoID == "" && dto.Email == "" {
		return nil, errors.New("failed to decode user: empty profile")
	}
	return UserFromDTO(&dto), nil
}
