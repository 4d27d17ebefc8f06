package app

import (
	"context"

	"login-service/internal/config"
	"login-service/internal/logger"
	"login-service/internal/redis"
	"login-service/internal/session"
)

type Infra struct {
	Redis *redis.Client // nil unless SESSION_BACKEND=redis
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.SessionBackend == config.SessionBackendRedis {
		client, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.Redis = client

		logger.Info("redis ready", map[string]any{
			"addr": cfg.RedisAddr,
		})
	}

	return infra, nil
}

// SessionStore returns the store selected by SESSION_BACKEND.
func (i *Infra) SessionStore(cfg config.Config) session.Store {
	if i.Redis != nil {
		return session.NewRedisStore(i.Redis.Client, cfg.SecretKey)
	}
	return session.NewCookieStore(cfg.SecretKey)
}

func (i *Infra) Close() error {
	if i.Redis != nil {
		return i.Redis.Close()
	}
	return nil
}
