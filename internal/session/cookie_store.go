package session

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"

	"login-service/internal/logger"

	"github.com/gorilla/sessions"
)

// payloadKey holds the JSON-encoded values inside the gorilla session.
const payloadKey = "data"

// CookieStore keeps the whole session in a signed, tamper-evident cookie.
type CookieStore struct {
	store *sessions.CookieStore
	name  string
}

// NewCookieStore signs cookies with a key derived from secret. Any
// passphrase works; it is hashed to a 32-byte HMAC key.
func NewCookieStore(secret string) *CookieStore {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(DefaultMaxAge.Seconds()))

	return &CookieStore{store: store, name: CookieName}
}

func (s *CookieStore) Load(r *http.Request) (*Session, error) {
	gs, err := s.store.Get(r, s.name)
	if err != nil {
		logger.Warn("session cookie rejected", map[string]any{
			"error": err.Error(),
		})
		return New(), nil
	}

	raw, _ := gs.Values[payloadKey].(string)
	if raw == "" {
		return New(), nil
	}

	sess := New()
	if err := json.Unmarshal([]byte(raw), &sess.values); err != nil {
		logger.Warn("session payload unreadable", map[string]any{
			"error": err.Error(),
		})
		return New(), nil
	}
	return sess, nil
}

// Save writes the session cookie. An empty session deletes it.
func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	gs := sessions.NewSession(s.store, s.name)
	opts := *s.store.Options
	gs.Options = &opts

	if sess.Len() == 0 {
		gs.Options.MaxAge = -1
	} else {
		raw, err := json.Marshal(sess.values)
		if err != nil {
			return fmt.Errorf("session: failed to marshal: %w", err)
		}
		gs.Values[payloadKey] = string(raw)
	}

	if err := s.store.Save(r, w, gs); err != nil {
		return fmt.Errorf("session: failed to write cookie: %w", err)
	}
	return nil
}
