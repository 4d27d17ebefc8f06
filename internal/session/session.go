package session

import (
	"encoding/json"
	"fmt"
)

// Session is the per-browser key-value record. Values are kept JSON encoded
// so every Store can persist them without type registration.
type Session struct {
	id       string
	values   map[string]json.RawMessage
	modified bool
}

// New returns an empty session.
func New() *Session {
	return &Session{values: make(map[string]json.RawMessage)}
}

// Get decodes the value under key into dst. It reports false when the key
// is absent.
func (s *Session) Get(key string, dst any) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("session: decode %q: %w", key, err)
	}
	return true, nil
}

func (s *Session) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("session: encode %q: %w", key, err)
	}
	s.values[key] = raw
	s.modified = true
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Session) Remove(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.modified = true
}

func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func (s *Session) Len() int { return len(s.values) }

// Modified reports whether Set or Remove changed the session since it was
// loaded.
func (s *Session) Modified() bool { return s.modified }
