package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"login-service/internal/auth"
	"login-service/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const (
	DefaultIssuer      = "https://accounts.google.com"
	DefaultUserInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Issuer is used for OIDC discovery. Defaults to DefaultIssuer.
	Issuer string
	// UserInfoURL defaults to DefaultUserInfoURL.
	UserInfoURL string
	// HTTPClient is used for every provider round-trip when set.
	HTTPClient *http.Client
}

// Provider talks to Google's OAuth2 and OIDC endpoints.
type Provider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
	userInfoURL string
	httpClient  *http.Client
}

// New discovers Google's endpoints and returns a ready client.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = DefaultUserInfoURL
	}

	p := &Provider{
		userInfoURL: cfg.UserInfoURL,
		httpClient:  cfg.HTTPClient,
	}

	oidcProvider, err := oidc.NewProvider(p.clientContext(ctx), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	p.verifier = oidcProvider.Verifier(&oidc.Config{
		ClientID: cfg.ClientID,
	})

	ep := oidcProvider.Endpoint()
	ep.AuthStyle = oauth2.AuthStyleInParams

	p.oauthConfig = &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     ep,
		Scopes: []string{
			oidc.ScopeOpenID,
			"email",
			"profile",
		},
	}

	return p, nil
}

func (p *Provider) clientContext(ctx context.Context) context.Context {
	if p.httpClient == nil {
		return ctx
	}
	return oidc.ClientContext(ctx, p.httpClient)
}

// AuthCodeURL requests offline access so Google issues a refresh token, and
// forces the consent screen so it does so on every sign-in.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (p *Provider) Exchange(ctx context.Context, code string) (*auth.TokenSet, error) {
	token, err := p.oauthConfig.Exchange(p.clientContext(ctx), code)
	if err != nil {
		return nil, tokenError("exchange", err)
	}

	ts := tokenSet(token)

	rawIDToken, _ := token.Extra("id_token").(string)
	if rawIDToken == "" {
		// No id_token: fall back to the user-info endpoint.
		identity, err := p.UserInfo(ctx, token.AccessToken)
		if err != nil {
			return nil, err
		}
		ts.Identity = identity
		return ts, nil
	}
	ts.IDToken = rawIDToken

	idToken, err := p.verifier.Verify(p.clientContext(ctx), rawIDToken)
	if err != nil {
		return nil, &auth.ProviderError{
			Kind:    auth.KindAuth,
			Op:      "exchange",
			Message: "id_token verification failed",
			Err:     err,
		}
	}

	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return nil, &auth.ProviderError{
			Kind:    auth.KindAuth,
			Op:      "exchange",
			Message: "id_token claims parse failed",
			Err:     err,
		}
	}

	logger.Debug("google oidc verified", map[string]any{
		"issuer":        idToken.Issuer,
		"email_present": claims["email"] != nil,
		"expiry_unix":   idToken.Expiry.Unix(),
	})

	ts.Identity = identityFromClaims(claims)
	return ts, nil
}

// Refresh redeems a refresh token. TokenSet.RefreshToken is set only when
// Google rotated it.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*auth.TokenSet, error) {
	src := p.oauthConfig.TokenSource(
		p.clientContext(ctx),
		&oauth2.Token{RefreshToken: refreshToken},
	)

	token, err := src.Token()
	if err != nil {
		return nil, tokenError("refresh", err)
	}

	ts := tokenSet(token)
	if ts.RefreshToken == refreshToken {
		ts.RefreshToken = ""
	}
	return ts, nil
}

func (p *Provider) UserInfo(ctx context.Context, accessToken string) (*auth.Identity, error) {
	client := oauth2.NewClient(p.clientContext(ctx), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, http.NoBody)
	if err != nil {
		return nil, &auth.ProviderError{Kind: auth.KindUnavailable, Op: "userinfo", Message: "build request", Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &auth.ProviderError{Kind: auth.KindUnavailable, Op: "userinfo", Message: "request failed", Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, &auth.ProviderError{Kind: auth.KindUnauthorized, Op: "userinfo", Message: "access token rejected"}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &auth.ProviderError{
			Kind:    auth.KindUnavailable,
			Op:      "userinfo",
			Message: fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, body),
		}
	}

	var claims map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, &auth.ProviderError{Kind: auth.KindUnavailable, Op: "userinfo", Message: "decode profile", Err: err}
	}
	return identityFromClaims(claims), nil
}

func tokenSet(t *oauth2.Token) *auth.TokenSet {
	return &auth.TokenSet{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
	}
}

// tokenError maps token-endpoint failures: a 4xx answer means the grant was
// rejected, everything else means Google could not be reached or answered
// unexpectedly.
func tokenError(op string, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		status := re.Response.StatusCode
		kind := auth.KindUnavailable
		if status >= 400 && status < 500 {
			kind = auth.KindAuth
		}
		return &auth.ProviderError{
			Kind:    kind,
			Op:      op,
			Message: fmt.Sprintf("token endpoint returned %d %s", status, re.ErrorCode),
			Err:     err,
		}
	}
	return &auth.ProviderError{Kind: auth.KindUnavailable, Op: op, Message: "token request failed", Err: err}
}

func identityFromClaims(claims map[string]any) *auth.Identity {
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	return &auth.Identity{
		Name:   name,
		Email:  email,
		Claims: claims,
	}
}
