package auth

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures so callers can branch without
// inspecting HTTP details.
type ErrorKind int

const (
	// KindAuth: the provider rejected a grant (bad or expired code, revoked
	// refresh token, state mismatch, unverifiable id_token).
	KindAuth ErrorKind = iota + 1
	// KindUnauthorized: the access token was rejected by the user-info endpoint.
	KindUnauthorized
	// KindUnavailable: transport failure or any other non-success response.
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

type ProviderError struct {
	Kind    ErrorKind
	Op      string // e.g. "exchange", "refresh", "userinfo"
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsKind reports whether err is a *ProviderError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == kind
}
