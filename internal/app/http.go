package app

import (
	"context"
	"net/http"

	"login-service/internal/auth/handler"
	"login-service/internal/auth/provider"
	"login-service/internal/auth/provider/google"
	"login-service/internal/auth/resolver"
	"login-service/internal/config"
	"login-service/internal/logger"
	"login-service/internal/middleware"
	"login-service/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	googleProvider, err := google.New(ctx, google.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURI,
	})
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	logger.Info("google oidc provider ready", map[string]any{
		"session_backend": cfg.SessionBackend,
	})

	return newRouter(googleProvider, infra.SessionStore(cfg)), infra.Close, nil
}

func newRouter(p provider.Client, store session.Store) *gin.Engine {
	authHandler := handler.NewHandler(p, store, resolver.New(p))

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
	)

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
