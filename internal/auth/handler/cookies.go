package handler

import (
	"net/http"

	"login-service/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// No Max-Age or SameSite: browser defaults apply.
var tokenCookie = session.CookieOptions{
	Path:     "/",
	HttpOnly: true,
	Secure:   true,
}

// setTokenCookies writes the access token and, when present, the refresh
// token.
func setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	session.SetCookie(w, AccessTokenCookie, accessToken, tokenCookie)
	if refreshToken != "" {
		session.SetCookie(w, RefreshTokenCookie, refreshToken, tokenCookie)
	}
}

func clearTokenCookies(w http.ResponseWriter) {
	session.ClearCookie(w, AccessTokenCookie, tokenCookie)
	session.ClearCookie(w, RefreshTokenCookie, tokenCookie)
}

func cookieValue(c *gin.Context, name string) string {
	cookie, err := c.Request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
