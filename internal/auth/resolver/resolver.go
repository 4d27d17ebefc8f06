package resolver

import (
	"context"

	"login-service/internal/auth"
	"login-service/internal/logger"
	"login-service/internal/session"
)

// Provider is the subset of the provider client the resolver needs.
type Provider interface {
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenSet, error)
	UserInfo(ctx context.Context, accessToken string) (*auth.Identity, error)
}

// Credentials are the token cookies a browser sent.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// State is where the resolution of a request ended.
type State int

const (
	StateAnonymous State = iota
	// StateCookie: the access_token cookie was accepted by the provider.
	StateCookie
	// StateRefreshed: the access token was rejected and a refresh succeeded.
	// The caller must persist Result.Refreshed and redirect.
	StateRefreshed
	// StateSession: the identity came from the session record.
	StateSession
)

func (s State) String() string {
	switch s {
	case StateCookie:
		return "cookie"
	case StateRefreshed:
		return "refreshed"
	case StateSession:
		return "session"
	default:
		return "anonymous"
	}
}

type Result struct {
	State     State
	Identity  *auth.Identity // nil unless State is StateCookie or StateSession
	Refreshed *auth.TokenSet // non-nil only for StateRefreshed
}

// Source reports which credential produced the identity.
func (r Result) Source() auth.Source {
	switch r.State {
	case StateCookie:
		return auth.SourceCookie
	case StateSession:
		return auth.SourceSession
	default:
		return auth.SourceNone
	}
}

func (r Result) Authenticated() bool { return r.Identity != nil }

// IdentityResolver decides which identity, if any, a request carries.
// Cookie credentials take precedence over the session record; the session
// is only consulted once the cookies have nothing usable to offer.
type IdentityResolver struct {
	provider Provider
}

func New(p Provider) *IdentityResolver {
	return &IdentityResolver{provider: p}
}

// Resolve never fails: every provider error degrades to a weaker state.
// A successful cookie check writes the identity into sess.
func (r *IdentityResolver) Resolve(ctx context.Context, creds Credentials, sess *session.Session) Result {
	if creds.AccessToken != "" {
		identity, err := r.provider.UserInfo(ctx, creds.AccessToken)
		switch {
		case err == nil:
			if err := sess.Set(auth.SessionKeyUser, identity); err != nil {
				logger.Error("failed to cache identity in session", map[string]any{
					"error": err.Error(),
				})
			}
			return Result{State: StateCookie, Identity: identity}

		case auth.IsKind(err, auth.KindUnauthorized):
			if res, ok := r.refresh(ctx, creds.RefreshToken); ok {
				return res
			}

		default:
			logger.Warn("userinfo request failed", map[string]any{
				"error": err.Error(),
			})
			return Result{State: StateAnonymous}
		}
	} else if !sess.Has(auth.SessionKeyUser) {
		// The access cookie is gone but the browser still holds a refresh
		// token and nothing else identifies it.
		if res, ok := r.refresh(ctx, creds.RefreshToken); ok {
			return res
		}
	}

	return r.fromSession(sess)
}

func (r *IdentityResolver) refresh(ctx context.Context, refreshToken string) (Result, bool) {
	if refreshToken == "" {
		return Result{}, false
	}

	ts, err := r.provider.Refresh(ctx, refreshToken)
	if err != nil {
		logger.Warn("token refresh failed", map[string]any{
			"error": err.Error(),
		})
		return Result{}, false
	}
	if ts.AccessToken == "" {
		logger.Warn("token refresh returned no access token", nil)
		return Result{}, false
	}

	return Result{State: StateRefreshed, Refreshed: ts}, true
}

func (r *IdentityResolver) fromSession(sess *session.Session) Result {
	var identity auth.Identity
	ok, err := sess.Get(auth.SessionKeyUser, &identity)
	if err != nil {
		logger.Warn("session identity unreadable", map[string]any{
			"error": err.Error(),
		})
		return Result{State: StateAnonymous}
	}
	if !ok {
		return Result{State: StateAnonymous}
	}
	return Result{State: StateSession, Identity: &identity}
}
