package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"login-service/internal/logger"

	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session values in Redis. The browser only holds a signed
// session ID.
type RedisStore struct {
	client *redis.Client
	codec  *securecookie.SecureCookie
	prefix string
	ttl    time.Duration
	cookie CookieOptions
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, secret string) *RedisStore {
	key := sha256.Sum256([]byte(secret))
	ttl := DefaultMaxAge

	return &RedisStore{
		client: client,
		codec:  securecookie.New(key[:], nil).MaxAge(int(ttl.Seconds())),
		prefix: "session:",
		ttl:    ttl,
		cookie: CookieOptions{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   ttl,
		},
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return New(), nil
	}

	var sessionID string
	if err := s.codec.Decode(CookieName, c.Value, &sessionID); err != nil {
		logger.Warn("session cookie rejected", map[string]any{
			"error": err.Error(),
		})
		return New(), nil
	}

	val, err := s.client.Get(r.Context(), s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return New(), nil // expired or deleted
	}
	if err != nil {
		return New(), fmt.Errorf("session: redis get: %w", err)
	}

	sess := New()
	if err := json.Unmarshal([]byte(val), &sess.values); err != nil {
		logger.Warn("session payload unreadable", map[string]any{
			"error": err.Error(),
		})
		return New(), nil
	}
	sess.id = sessionID
	return sess, nil
}

// Save persists the session and refreshes its TTL. An empty session is
// deleted from Redis and its cookie cleared.
func (s *RedisStore) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	ctx := r.Context()

	if sess.Len() == 0 {
		ClearCookie(w, CookieName, s.cookie)
		if sess.id == "" {
			return nil
		}
		return s.delete(ctx, sess.id)
	}

	if sess.id == "" {
		id, err := newSessionID()
		if err != nil {
			return err
		}
		sess.id = id
	}

	data, err := json.Marshal(sess.values)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}

	encoded, err := s.codec.Encode(CookieName, sess.id)
	if err != nil {
		return fmt.Errorf("session: sign id: %w", err)
	}
	SetCookie(w, CookieName, encoded, s.cookie)
	return nil
}

func (s *RedisStore) delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

// newSessionID returns 256 bits of randomness, URL-safe encoded.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
