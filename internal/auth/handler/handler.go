package handler

import (
	"net/http"

	"login-service/internal/auth"
	"login-service/internal/auth/provider"
	"login-service/internal/auth/resolver"
	"login-service/internal/logger"
	"login-service/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	provider     provider.Client
	sessionStore session.Store
	resolver     *resolver.IdentityResolver
}

func NewHandler(
	p provider.Client,
	sessionStore session.Store,
	resolver *resolver.IdentityResolver,
) *Handler {
	return &Handler{
		provider:     p,
		sessionStore: sessionStore,
		resolver:     resolver,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(views)

	r.GET("/", h.root)
	r.GET("/login", h.login)
	r.GET("/auth", h.callback)
	r.GET("/logout", h.logout)

	for _, route := range r.Routes() {
		logger.Debug("route registered", map[string]any{
			"method": route.Method,
			"path":   route.Path,
		})
	}
}

func (h *Handler) root(c *gin.Context) {
	sess := h.loadSession(c)

	res := h.resolver.Resolve(c.Request.Context(), resolver.Credentials{
		AccessToken:  cookieValue(c, AccessTokenCookie),
		RefreshToken: cookieValue(c, RefreshTokenCookie),
	}, sess)

	h.saveSession(c, sess)

	switch {
	case res.State == resolver.StateRefreshed:
		// The greeting is rendered on the next request, with the new cookie.
		setTokenCookies(c.Writer, res.Refreshed.AccessToken, res.Refreshed.RefreshToken)
		c.Redirect(http.StatusTemporaryRedirect, "/")

	case res.Authenticated():
		c.HTML(http.StatusOK, greetingView, gin.H{"Name": res.Identity.Name})

	default:
		c.HTML(http.StatusOK, anonymousView, nil)
	}
}

func (h *Handler) login(c *gin.Context) {
	state, err := generateState(c)
	if err != nil {
		logger.Error("failed to generate oauth state", map[string]any{
			"error": err.Error(),
		})
		c.Redirect(http.StatusTemporaryRedirect, "/")
		return
	}

	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// callback finishes the authorization-code flow. Every failure is logged
// and ends in a redirect home with session and credential cookies untouched.
func (h *Handler) callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oidc callback returned error", map[string]any{
			"error": errParam,
			"desc":  c.Query("error_description"),
		})
		c.Redirect(http.StatusTemporaryRedirect, "/")
		return
	}

	if !validateState(c) {
		logger.Warn("oidc callback state mismatch", map[string]any{
			"client": c.ClientIP(),
		})
		c.Redirect(http.StatusTemporaryRedirect, "/")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Warn("oidc callback missing code", nil)
		c.Redirect(http.StatusTemporaryRedirect, "/")
		return
	}

	tokens, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.Warn("token exchange failed", map[string]any{
			"error": err.Error(),
		})
		c.Redirect(http.StatusTemporaryRedirect, "/")
		return
	}

	sess := h.loadSession(c)
	if tokens.Identity != nil {
		if err := sess.Set(auth.SessionKeyUser, tokens.Identity); err != nil {
			logger.Error("failed to store identity in session", map[string]any{
				"error": err.Error(),
			})
		}
	}
	h.saveSession(c, sess)

	setTokenCookies(c.Writer, tokens.AccessToken, tokens.RefreshToken)
	clearState(c)

	logger.Info("login succeeded", map[string]any{
		"email_present": tokens.Identity != nil && tokens.Identity.Email != "",
		"refresh_token": tokens.RefreshToken != "",
		"client":        c.ClientIP(),
	})

	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// logout is idempotent: it always ends with no identity in the session and
// no credential cookies.
func (h *Handler) logout(c *gin.Context) {
	sess := h.loadSession(c)
	sess.Remove(auth.SessionKeyUser)
	h.saveSession(c, sess)

	clearTokenCookies(c.Writer)

	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// loadSession always returns a usable session; backend failures are logged
// and the request continues as if it had none.
func (h *Handler) loadSession(c *gin.Context) *session.Session {
	sess, err := h.sessionStore.Load(c.Request)
	if err != nil {
		logger.Error("failed to load session", map[string]any{
			"error": err.Error(),
		})
	}
	if sess == nil {
		sess = session.New()
	}
	return sess
}

func (h *Handler) saveSession(c *gin.Context, sess *session.Session) {
	if !sess.Modified() {
		return
	}
	if err := h.sessionStore.Save(c.Writer, c.Request, sess); err != nil {
		logger.Error("failed to persist session", map[string]any{
			"error": err.Error(),
		})
	}
}
