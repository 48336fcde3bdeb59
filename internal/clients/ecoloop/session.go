package ecoloop

import "sync/atomic"

// Session holds the bearer token for one signed-in identity. It is passed
// explicitly to the client rather than living in package state, so two
// sessions can coexist in one process.
//
// A 401 from the server invalidates the session atomically; every call
// after that fails fast with ErrSessionExpired until the caller logs in
// again and installs a fresh session.
type Session struct {
	token atomic.Pointer[string]
}

// NewSession creates a session around an issued token.
func NewSession(token string) *Session {
	s := &Session{}
	s.token.Store(&token)
	return s
}

// Token returns the bearer token, or ErrSessionExpired once invalidated.
func (s *Session) Token() (string, error) {
	t := s.token.Load()
	if t == nil {
		return "", ErrSessionExpired
	}
	return *t, nil
}

// Invalidate drops the token. Safe to call concurrently and repeatedly.
func (s *Session) Invalidate() {
	s.token.Store(nil)
}

// Valid reports whether the session still carries a token.
func (s *Session) Valid() bool {
	return s.token.Load() != nil
}
