package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jimlawless/whereami"
)

const (
	sessionDirName  = "grocer"
	sessionFileName = "session.json"
	sessionFileMode = 0o600
	sessionDirMode  = 0o700
)

// SessionStore хранит сессию пользователя между запусками. Load без сохранённой сессии возвращает nil.
type SessionStore interface {
	Load() (*domain.Session, error)
	Save(session *domain.Session) error
	Clear() error
}

type sessionModel struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// FileSessionStore хранит сессию в JSON-файле, доступном только владельцу.
type FileSessionStore struct {
	path   string
	logger logger.Logger
	now    func() time.Time
}

func NewFileSessionStore(path string, logger logger.Logger) *FileSessionStore {
	return &FileSessionStore{path: path, logger: logger, now: time.Now}
}

// DefaultSessionPath возвращает $XDG_CONFIG_HOME/grocer/session.json (или аналог для ОС).
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return filepath.Join(dir, sessionDirName, sessionFileName), nil
}

func (f *FileSessionStore) Path() string {
	return f.path
}

// Load читает сессию. Просроченный токен удаляется с предупреждением, вызывающий получает гостевой режим.
func (f *FileSessionStore) Load() (*domain.Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var m sessionModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("corrupted session file %s: %w", f.path, err))
	}

	session := domain.NewSession(m.AccessToken, m.TokenType, m.ExpiresAt)
	if session.IsGuest() {
		return nil, nil
	}

	if session.Expired(f.now()) {
		f.logger.Warnf("stored session expired at %s, please log in again", session.ExpiresAt.Format(time.RFC3339))
		if err := f.Clear(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return session, nil
}

// Save атомарно записывает сессию: временный файл с правами 0600 и rename.
func (f *FileSessionStore) Save(session *domain.Session) error {
	if session.IsGuest() {
		return f.Clear()
	}

	data, err := json.MarshalIndent(sessionModel{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		ExpiresAt:   session.ExpiresAt,
	}, "", "  ")
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, sessionDirMode); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tmp, err := os.CreateTemp(dir, sessionFileName+".*")
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(sessionFileMode); err != nil {
		tmp.Close()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := tmp.Close(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (f *FileSessionStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SessionFromToken создаёт сессию и берёт срок действия из claim exp.
// Подпись не проверяется.
func SessionFromToken(accessToken string, tokenType string) *domain.Session {
	session := domain.NewSession(accessToken, tokenType, nil)

	token, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return session
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return session
	}

	expiresAt := exp.Time
	session.ExpiresAt = &expiresAt

	return session
}
