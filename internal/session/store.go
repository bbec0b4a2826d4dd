package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store holds the process-wide API credential. It is single-writer
// (login/logout and the 401 handler) and many-reader; readers get a
// snapshot of the token at time of use. Subscribers are notified on
// every change so reactive consumers (the push client, the UI) can
// tear down and rebuild their sessions.
type Store struct {
	mu    sync.RWMutex
	token string
	subs  []func(token string)

	// persist controls whether changes are written through to the
	// system keyring. Tests disable it.
	persist bool
}

// NewStore creates a session store, loading any previously saved token
// from the system keyring.
func NewStore() *Store {
	s := &Store{persist: true}
	if token, err := loadToken(); err == nil {
		s.token = token
	}
	return s
}

// NewMemoryStore creates a session store without keyring persistence.
func NewMemoryStore(token string) *Store {
	return &Store{token: token}
}

// Token returns the current credential, or the empty string when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// SetToken replaces the credential and notifies subscribers.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	persist := s.persist
	s.mu.Unlock()

	for _, fn := range subs {
		fn(token)
	}

	if persist {
		return saveToken(token)
	}
	return nil
}

// Clear removes the credential and notifies subscribers. Used by logout
// and by the transport's 401 handler.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	persist := s.persist
	s.mu.Unlock()

	for _, fn := range subs {
		fn("")
	}

	if persist {
		return deleteToken()
	}
	return nil
}

// Subscribe registers fn to be called with the new token value on every
// change. Subscriptions last for the life of the store.
func (s *Store) Subscribe(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// ExpiresAt returns the expiry claim of the stored token without
// verifying the signature (the server is the verifier; the client only
// uses this to warn about sessions that are already dead). Returns the
// zero time when the token is absent, opaque, or carries no expiry.
func (s *Store) ExpiresAt() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// Expired reports whether the stored token carries an expiry claim that
// has already passed.
func (s *Store) Expired(now time.Time) bool {
	exp := s.ExpiresAt()
	return !exp.IsZero() && now.After(exp)
}
