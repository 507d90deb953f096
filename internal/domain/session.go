package domain

import (
	"strings"
	"time"
)

const bearerTokenType = "bearer"

// Session — учётные данные текущего пользователя. Передаётся явно тем компонентам, которым нужна авторизация.
// Пустая сессия означает гостевой режим.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresAt   *time.Time
}

func NewSession(accessToken string, tokenType string, expiresAt *time.Time) *Session {
	if tokenType == "" {
		tokenType = bearerTokenType
	}

	return &Session{
		AccessToken: accessToken,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	}
}

// IsGuest возвращает true, если токена нет.
func (s *Session) IsGuest() bool {
	return s == nil || strings.TrimSpace(s.AccessToken) == ""
}

// Expired сообщает, истёк ли токен к моменту now. Токен без срока действия не истекает.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt == nil {
		return false
	}

	return !now.Before(*s.ExpiresAt)
}

// AuthorizationHeader формирует значение заголовка Authorization.
func (s *Session) AuthorizationHeader() string {
	if s.IsGuest() {
		return ""
	}

	return "Bearer " + s.AccessToken
}
