package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

func newTestStore(t *testing.T) *FileSessionStore {
	t.Helper()

	return NewFileSessionStore(filepath.Join(t.TempDir(), "grocer", "session.json"), logger.NewNopLogger())
}

func TestFileSessionStore_SaveLoad(t *testing.T) {
	store := newTestStore(t)

	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	if err := store.Save(domain.NewSession("tok", "bearer", &expiresAt)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if session.AccessToken != "tok" || session.TokenType != "bearer" || !session.ExpiresAt.Equal(expiresAt) {
		t.Errorf("unexpected session: %+v", session)
	}
}

func TestFileSessionStore_Load(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantGuest bool
		wantErr   bool
		wantFile  bool
	}{
		{name: "no file", wantGuest: true},
		{name: "expired token is dropped", content: `{"access_token":"tok","token_type":"bearer","expires_at":"2020-01-01T00:00:00Z"}`, wantGuest: true},
		{name: "token without expiry", content: `{"access_token":"tok","token_type":"bearer"}`, wantFile: true},
		{name: "empty token", content: `{"access_token":""}`, wantGuest: true, wantFile: true},
		{name: "corrupted file", content: `{"access_token":`, wantErr: true, wantFile: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			if tt.content != "" {
				os.MkdirAll(filepath.Dir(store.Path()), 0o700)
				if err := os.WriteFile(store.Path(), []byte(tt.content), 0o600); err != nil {
					t.Fatalf("failed to write session file: %v", err)
				}
			}

			session, err := store.Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if session.IsGuest() != tt.wantGuest {
				t.Errorf("IsGuest() = %v, want %v", session.IsGuest(), tt.wantGuest)
			}

			_, statErr := os.Stat(store.Path())
			if tt.content != "" && (statErr == nil) != tt.wantFile {
				t.Errorf("file exists = %v, want %v", statErr == nil, tt.wantFile)
			}
		})
	}
}

func TestFileSessionStore_SaveGuestClears(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(domain.NewSession("tok", "", nil)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Save(nil); err != nil {
		t.Fatalf("Save(nil) error: %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("guest session should remove the file, stat err = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("Clear() on missing file should not fail: %v", err)
	}
}

func TestSessionFromToken(t *testing.T) {
	exp := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ann@example.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("unknown-to-client"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	tests := []struct {
		name      string
		token     string
		wantExpAt *time.Time
	}{
		{name: "jwt with exp", token: signed, wantExpAt: &exp},
		{name: "opaque token", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := SessionFromToken(tt.token, "bearer")
			if session.AccessToken != tt.token {
				t.Errorf("token not preserved")
			}

			if tt.wantExpAt == nil {
				if session.ExpiresAt != nil {
					t.Errorf("expected no expiry, got %v", session.ExpiresAt)
				}
				return
			}
			if session.ExpiresAt == nil || !session.ExpiresAt.Equal(*tt.wantExpAt) {
				t.Errorf("ExpiresAt = %v, want %v", session.ExpiresAt, tt.wantExpAt)
			}
		})
	}
}
