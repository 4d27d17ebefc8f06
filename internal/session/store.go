package session

import (
	"net/http"
	"time"
)

const (
	// CookieName is the browser cookie carrying the session (or its ID).
	CookieName = "session"

	// DefaultMaxAge matches the lifetime of a signed session cookie.
	DefaultMaxAge = 14 * 24 * time.Hour
)

// Store loads and persists sessions for a request.
//
// Load never fails because of what the browser sent: a missing, expired or
// tampered cookie yields an empty session. Errors are reserved for backend
// failures, and even then a usable empty session is returned.
type Store interface {
	Load(r *http.Request) (*Session, error)
	Save(w http.ResponseWriter, r *http.Request, s *Session) error
}
