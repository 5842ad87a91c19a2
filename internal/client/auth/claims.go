package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims сведения из access token для отображения.
// Подпись не проверяется: решение об аутентификации принимает сервер.
type Claims struct {
	ExpiresAt time.Time
	IssuedAt  time.Time
	Subject   string
	UserID    string
}

// Expired истек ли срок действия токена относительно now; без exp токен не истекает
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims разбирает JWT без проверки подписи
func ParseClaims(token string) (*Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	var c Claims
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	switch v := mc["user_id"].(type) {
	case string:
		c.UserID = v
	case float64:
		c.UserID = fmt.Sprintf("%.0f", v)
	}
	if c.UserID == "" {
		c.UserID = c.Subject
	}
	return &c, nil
}
