package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jsvantner/minca/internal/models"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session"))
}

func TestFileStore_MissingSession(t *testing.T) {
	s := newStore(t)
	if _, err := s.Token(); !models.IsAuthMissing(err) {
		t.Errorf("Token() on empty store = %v, want ErrAuthMissing", err)
	}
}

func TestFileStore_SaveLoadClear(t *testing.T) {
	s := newStore(t)

	if err := s.Save("tok-abc123"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != "tok-abc123" {
		t.Errorf("Token() = %q, want tok-abc123", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Token(); !models.IsAuthMissing(err) {
		t.Errorf("Token() after Clear = %v, want ErrAuthMissing", err)
	}

	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestFileStore_ExpiryFromClaims(t *testing.T) {
	s := newStore(t)
	exp := time.Now().Add(1 * time.Hour).Truncate(time.Second)

	if err := s.Save(signedToken(t, exp)); err != nil {
		t.Fatal(err)
	}

	got, err := s.ExpiresAt()
	if err != nil {
		t.Fatalf("ExpiresAt: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("ExpiresAt() = %v, want %v", got, exp)
	}
	if s.IsExpired(time.Now()) {
		t.Error("IsExpired = true for a live token")
	}
	if !s.IsExpired(exp.Add(time.Minute)) {
		t.Error("IsExpired = false past the expiry")
	}
}

func TestFileStore_OpaqueTokenNotExpired(t *testing.T) {
	s := newStore(t)
	if err := s.Save("not-a-jwt"); err != nil {
		t.Fatal(err)
	}
	if s.IsExpired(time.Now()) {
		t.Error("opaque token treated as expired")
	}
}
