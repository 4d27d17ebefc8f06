package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"login-service/internal/auth"
	"login-service/internal/auth/provider/providertest"
	"login-service/internal/config"
	"login-service/internal/middleware"
	"login-service/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouter_Health(t *testing.T) {
	r := newRouter(providertest.New(), session.NewCookieStore("secret"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if rec.Code != http.StatusOK || rec.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_RootWithRequestID(t *testing.T) {
	fake := providertest.New()
	fake.Profiles["valid-access"] = &auth.Identity{Name: "Ada Lovelace"}
	r := newRouter(fake, session.NewCookieStore("secret"))

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "valid-access"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Body.String() != `<p>Hello Ada Lovelace!</p><a href=/logout>Logout</a>` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("expected request id header")
	}
}

func TestInfra_SelectsSessionBackend(t *testing.T) {
	infra, err := setupInfra(context.Background(), config.Config{SessionBackend: config.SessionBackendCookie})
	if err != nil {
		t.Fatalf("setupInfra failed: %v", err)
	}
	if _, ok := infra.SessionStore(config.Config{SecretKey: "k"}).(*session.CookieStore); !ok {
		t.Fatal("expected cookie store")
	}
	if err := infra.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mini.Close() })

	cfg := config.Config{SessionBackend: config.SessionBackendRedis, RedisAddr: mini.Addr(), SecretKey: "k"}
	infra, err = setupInfra(context.Background(), cfg)
	if err != nil {
		t.Fatalf("setupInfra failed: %v", err)
	}
	t.Cleanup(func() { infra.Close() })

	if _, ok := infra.SessionStore(cfg).(*session.RedisStore); !ok {
		t.Fatal("expected redis store")
	}
}
