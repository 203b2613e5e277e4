package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"book-wishlist/dto"
	"book-wishlist/repository"
	"book-wishlist/util"
)

// TokenKey is the storage key holding the bearer token
const TokenKey = "user-token"

var (
	// ErrSessionExpired is returned when the stored token is past its exp claim
	ErrSessionExpired = errors.New("session expired")
	// ErrNotAuthenticated is returned by operations that need a logged in user
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Session is the client's view of the stored bearer token.
// It is refreshed from storage at app init and before each outbound request.
type Session struct {
	repo repository.SessionRepository
	now  func() time.Time

	mu    sync.RWMutex
	token string
}

// NewSession creates a session backed by repo. A nil clock means time.Now.
func NewSession(repo repository.SessionRepository, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{repo: repo, now: now}
}

// Refresh reloads the token from storage
func (s *Session) Refresh() error {
	token, err := s.repo.Get(TokenKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("read session token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Save persists a freshly issued token. Tokens that do not decode are refused.
func (s *Session) Save(token string) error {
	if _, err := util.DecodeToken(token); err != nil {
		return err
	}
	if err := s.repo.Set(TokenKey, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear removes the token from storage and memory
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.repo.Delete(TokenKey); err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

// Token returns the cached raw token, empty when unauthenticated
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns the cached token with its decoded claims.
// Both are zero when no token is present.
func (s *Session) Current() (string, *dto.TokenClaims, error) {
	token := s.Token()
	if token == "" {
		return "", nil, nil
	}
	claims, err := util.DecodeToken(token)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// UserID reports the userId claim; ok is false when no token is present
func (s *Session) UserID() (string, bool, error) {
	_, claims, err := s.Current()
	if err != nil || claims == nil {
		return "", false, err
	}
	return claims.UserID.String(), true, nil
}

// ExpirationMillis reports exp in milliseconds since epoch; ok is false when no token is present
func (s *Session) ExpirationMillis() (int64, bool, error) {
	_, claims, err := s.Current()
	if err != nil || claims == nil {
		return 0, false, err
	}
	return util.ExpirationMillis(claims), true, nil
}

// IsExpired compares the claims against the session clock
func (s *Session) IsExpired(claims *dto.TokenClaims) bool {
	return s.now().UnixMilli() >= util.ExpirationMillis(claims)
}

// Authenticated is true when a decodable, unexpired token is present
func (s *Session) Authenticated() bool {
	_, claims, err := s.Current()
	if err != nil || claims == nil {
		return false
	}
	return !s.IsExpired(claims)
}

// View summarizes the session for the home route
func (s *Session) View() dto.SessionView {
	_, claims, err := s.Current()
	if err != nil || claims == nil || s.IsExpired(claims) {
		return dto.SessionView{}
	}
	return dto.SessionView{
		Authenticated: true,
		UserID:        claims.UserID.String(),
		ExpiresAt:     util.ExpirationMillis(claims),
	}
}
