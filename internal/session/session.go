// Package session stores the bearer token between CLI invocations.
//
// The token lives in a single file with user-only permissions. Every
// authenticated component receives the store explicitly instead of reading
// a global, so there is exactly one missing-session failure path.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jsvantner/minca/internal/models"
)

// FileStore persists the session token at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token returns the stored bearer token, or models.ErrAuthMissing when no
// session exists.
func (s *FileStore) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", models.ErrAuthMissing
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", models.ErrAuthMissing
	}
	return token, nil
}

// Save writes a new session token, creating the parent directory if needed.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is not an
// error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ExpiresAt reads the exp claim from the stored token without verifying
// the signature; the server holds the signing secret. Returns the zero
// time when the token carries no expiry.
func (s *FileStore) ExpiresAt() (time.Time, error) {
	token, err := s.Token()
	if err != nil {
		return time.Time{}, err
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse session token: %w", err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// IsExpired reports whether the stored token has an expiry in the past.
// Tokens without an expiry claim are treated as live; the server is the
// final arbiter either way.
func (s *FileStore) IsExpired(now time.Time) bool {
	exp, err := s.ExpiresAt()
	if err != nil || exp.IsZero() {
		return false
	}
	return exp.Before(now)
}
