// Package providertest provides an in-memory provider.Client for tests.
package providertest

import (
	"context"
	"net/url"
	"sync"

	"login-service/internal/auth"
)

// Fake answers from fixed tables. Unknown access tokens are unauthorized,
// unknown codes and refresh tokens are rejected grants.
type Fake struct {
	AuthURL string

	// Profiles maps access tokens to the identity user-info returns.
	Profiles map[string]*auth.Identity
	// Unavailable access tokens make user-info fail with KindUnavailable.
	Unavailable map[string]bool
	// Codes maps authorization codes to exchange results.
	Codes map[string]*auth.TokenSet
	// Refreshes maps refresh tokens to refresh results.
	Refreshes map[string]*auth.TokenSet

	mu    sync.Mutex
	calls map[string]int
}

func New() *Fake {
	return &Fake{
		AuthURL:     "https://accounts.example.test/o/oauth2/v2/auth",
		Profiles:    map[string]*auth.Identity{},
		Unavailable: map[string]bool{},
		Codes:       map[string]*auth.TokenSet{},
		Refreshes:   map[string]*auth.TokenSet{},
		calls:       map[string]int{},
	}
}

// Calls returns how often op ("exchange", "refresh", "userinfo") ran.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *Fake) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *Fake) AuthCodeURL(state string) string {
	q := url.Values{
		"state":       {state},
		"scope":       {"openid email profile"},
		"access_type": {"offline"},
	}
	return f.AuthURL + "?" + q.Encode()
}

func (f *Fake) Exchange(_ context.Context, code string) (*auth.TokenSet, error) {
	f.record("exchange")
	ts, ok := f.Codes[code]
	if !ok {
		return nil, &auth.ProviderError{Kind: auth.KindAuth, Op: "exchange", Message: "invalid_grant"}
	}
	return ts, nil
}

func (f *Fake) Refresh(_ context.Context, refreshToken string) (*auth.TokenSet, error) {
	f.record("refresh")
	ts, ok := f.Refreshes[refreshToken]
	if !ok {
		return nil, &auth.ProviderError{Kind: auth.KindAuth, Op: "refresh", Message: "invalid_grant"}
	}
	return ts, nil
}

func (f *Fake) UserInfo(_ context.Context, accessToken string) (*auth.Identity, error) {
	f.record("userinfo")
	if f.Unavailable[accessToken] {
		return nil, &auth.ProviderError{Kind: auth.KindUnavailable, Op: "userinfo", Message: "unexpected status 503"}
	}
	id, ok := f.Profiles[accessToken]
	if !ok {
		return nil, &auth.ProviderError{Kind: auth.KindUnauthorized, Op: "userinfo", Message: "access token rejected"}
	}
	return id, nil
}
