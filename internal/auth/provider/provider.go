package provider

import (
	"context"

	"login-service/internal/auth"
)

// Client is the contract of the OIDC identity provider. Implementations
// return facts only and never touch sessions or cookies.
//
// Every error returned is an *auth.ProviderError so callers can branch on
// its Kind.
type Client interface {
	// AuthCodeURL returns the authorization URL for the given state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for tokens and the identity
	// asserted by the provider.
	Exchange(ctx context.Context, code string) (*auth.TokenSet, error)

	// Refresh obtains a new access token from a refresh token.
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenSet, error)

	// UserInfo fetches the profile for an access token. A rejected token
	// yields auth.KindUnauthorized.
	UserInfo(ctx context.Context, accessToken string) (*auth.Identity, error)
}
