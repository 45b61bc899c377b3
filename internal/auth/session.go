// Package auth owns the process-wide "is a user logged in" flag and the
// access token behind it.
package auth

import (
	"log/slog"
	"sync"
)

// Session is the process-wide auth state. Views only read LoggedIn; Login and
// Logout are the sole writers.
type Session struct {
	store  *TokenStore
	logger *slog.Logger

	mu    sync.RWMutex
	token string
	email string
}

// NewSession loads the current token from store.
func NewSession(store *TokenStore, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{store: store, logger: logger}
	if _, err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Email returns the address the token was issued for, when known.
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// Login persists token and flips the flag on.
func (s *Session) Login(token, email string) error {
	if err := s.store.SetToken(token, email); err != nil {
		return err
	}
	_, err := s.Refresh()
	return err
}

// Logout removes the stored token and flips the flag off. A token supplied
// through TADA_TOKEN cannot be removed, so the flag stays on in that case.
func (s *Session) Logout() error {
	if err := s.store.DeleteToken(); err != nil {
		return err
	}
	_, err := s.Refresh()
	return err
}

// Refresh re-reads the token store and reports whether the flag changed.
func (s *Session) Refresh() (changed bool, err error) {
	ti, err := s.store.GetToken()
	if err != nil {
		return false, err
	}
	token, email := "", ""
	if ti != nil {
		token, email = ti.Token, ti.Email
	}

	s.mu.Lock()
	was := s.token != ""
	s.token, s.email = token, email
	now := s.token != ""
	s.mu.Unlock()

	if was != now {
		s.logger.Info("auth state changed", slog.Bool("logged_in", now))
	}
	return was != now, nil
}

// Store exposes the backing token store.
func (s *Session) Store() *TokenStore { return s.store }
