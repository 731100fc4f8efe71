package app

import (
	"context"
	"errors"

	"auth-gateway/internal/config"
	"auth-gateway/internal/db"
	"auth-gateway/internal/logger"
	"auth-gateway/internal/redis"
	"auth-gateway/internal/session"

	"github.com/uptrace/bun"
)

type Infra struct {
	DB       *bun.DB
	Redis    *redis.Client
	Sessions session.Store
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	bdb, err := db.Open(ctx, cfg.DatabaseDSN, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx, bdb); err != nil {
		_ = bdb.Close()
		return nil, err
	}

	logger.Info("database ready", map[string]any{
		"driver": string(db.DetectDriver(cfg.DatabaseDSN)),
	})

	infra := &Infra{DB: bdb}

	switch cfg.SessionStore {
	case "memory":
		infra.Sessions = session.NewMemoryStore(session.DefaultMemoryCapacity, cfg.SessionTTL)
		logger.Warn("using in-process session store; sessions are lost on restart", nil)

	default:
		redisClient, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			_ = bdb.Close()
			return nil, err
		}
		infra.Redis = redisClient
		infra.Sessions = session.NewRedisStore(redisClient.Client)
		logger.Info("redis ready", map[string]any{"addr": cfg.RedisAddr})
	}

	return infra, nil
}

func (i *Infra) Close() error {
	var errs []error
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	errs = append(errs, i.DB.Close())
	return errors.Join(errs...)
}
