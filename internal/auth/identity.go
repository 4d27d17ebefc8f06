package auth

import "time"

// SessionKeyUser is the session key under which the signed-in Identity lives.
const SessionKeyUser = "user"

// Identity is the profile Google returned for a token. It contains facts
// only, no decisions.
type Identity struct {
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Claims map[string]any `json:"claims,omitempty"` // raw provider payload
}

// TokenSet is the result of a code exchange or a refresh.
type TokenSet struct {
	AccessToken  string
	RefreshToken string // empty when the provider did not issue or rotate one
	IDToken      string
	Expiry       time.Time

	// Identity is populated by a code exchange; refreshes leave it nil.
	Identity *Identity
}

// Source names the credential that produced an identity.
type Source int

const (
	SourceNone Source = iota
	SourceCookie
	SourceSession
)

func (s Source) String() string {
	switch s {
	case SourceCookie:
		return "cookie"
	case SourceSession:
		return "session"
	default:
		return "none"
	}
}
