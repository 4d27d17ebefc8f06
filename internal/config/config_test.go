package config

import (
	"errors"
	"strings"
	"testing"
)

func baseEnv() map[string]string {
	return map[string]string{
		"GOOGLE_CLIENT_ID":     "client-id",
		"GOOGLE_CLIENT_SECRET": "client-secret",
		"GOOGLE_REDIRECT_URI":  "http://127.0.0.1:5173/auth",
		"SECRET_KEY":           "signing-key",
	}
}

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := FromMap(baseEnv())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "127.0.0.1" || cfg.Port != 5173 {
		t.Fatalf("unexpected listen defaults: %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.Addr() != "127.0.0.1:5173" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
	if cfg.SessionBackend != SessionBackendCookie {
		t.Fatalf("expected cookie backend by default, got %q", cfg.SessionBackend)
	}
}

func TestFromMap_MissingRequired(t *testing.T) {
	for _, key := range []string{"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URI", "SECRET_KEY"} {
		t.Run(key, func(t *testing.T) {
			environ := baseEnv()
			delete(environ, key)

			_, err := FromMap(environ)
			if err == nil {
				t.Fatalf("expected error when %s is missing", key)
			}

			var cfgErr *Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *config.Error, got %T", err)
			}
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("error should name %s: %v", key, err)
			}
		})
	}
}

func TestFromMap_EmptyRequired(t *testing.T) {
	environ := baseEnv()
	environ["SECRET_KEY"] = ""

	if _, err := FromMap(environ); err == nil {
		t.Fatal("expected error for empty SECRET_KEY")
	}
}

func TestFromMap_Overrides(t *testing.T) {
	environ := baseEnv()
	environ["HOST"] = "0.0.0.0"
	environ["PORT"] = "8080"
	environ["SESSION_BACKEND"] = "redis"
	environ["REDIS_ADDR"] = "redis:6379"

	cfg, err := FromMap(environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
	if cfg.SessionBackend != SessionBackendRedis || cfg.RedisAddr != "redis:6379" {
		t.Fatalf("unexpected redis settings: %+v", cfg)
	}
}

func TestFromMap_UnknownBackend(t *testing.T) {
	environ := baseEnv()
	environ["SESSION_BACKEND"] = "memcached"

	if _, err := FromMap(environ); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestFromMap_BadPort(t *testing.T) {
	environ := baseEnv()
	environ["PORT"] = "not-a-port"

	if _, err := FromMap(environ); err == nil {
		t.Fatal("expected error for non-numeric PORT")
	}
}
