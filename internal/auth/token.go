package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	credFileName = "credentials.json"

	// EnvToken overrides the stored token
	EnvToken = "TADA_TOKEN"
)

type TokenInfo struct {
	Token     string     `json:"token"`
	Email     string     `json:"email,omitempty"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // when we saved to file
	ExpiresAt *time.Time `json:"expires_at"` // optional (JWT exp claim)
}

// TokenStore keeps the access token on disk under Dir.
type TokenStore struct {
	Dir string
	// Getenv is os.Getenv unless a test swaps it
	Getenv func(string) string
}

// DefaultDir is ~/.tada.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada"), nil
}

// NewTokenStore returns a store rooted at dir, or at DefaultDir when dir is empty.
func NewTokenStore(dir string) (*TokenStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &TokenStore{Dir: dir, Getenv: os.Getenv}, nil
}

// Path is the credentials file location.
func (s *TokenStore) Path() string {
	return filepath.Join(s.Dir, credFileName)
}

// GetToken returns the current token, or nil when not logged in.
func (s *TokenStore) GetToken() (*TokenInfo, error) {
	// 1) env override
	if s.Getenv != nil {
		if env := strings.TrimSpace(s.Getenv(EnvToken)); env != "" {
			return &TokenInfo{Token: stripBearer(env), Source: "env"}, nil
		}
	}

	// 2) file
	b, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var ti TokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	ti.Token = stripBearer(ti.Token)
	if ti.Token == "" {
		return nil, nil
	}
	return &ti, nil
}

// SetToken writes the token with owner-only permissions.
func (s *TokenStore) SetToken(token, email string) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	ti := TokenInfo{
		Token:     token,
		Email:     email,
		Source:    "file",
		CreatedAt: time.Now(),
		ExpiresAt: expiryFromJWT(token),
	}
	b, err := json.MarshalIndent(ti, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	// write then rename so a watcher never sees a half-written file
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// DeleteToken removes the stored token. Missing files are not an error.
func (s *TokenStore) DeleteToken() error {
	if err := os.Remove(s.Path()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
