package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

type Health struct {
	DB    *bun.DB
	Redis *redis.Client
}

func NewHealth(db *bun.DB, redisClient *redis.Client) *Health {
	return &Health{
		DB:    db,
		Redis: redisClient,
	}
}

func (s *Health) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "service: health: database is unreachable")
	}
	if s.Redis == nil {
		return nil
	}
	if err := s.Redis.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "service: health: redis is unreachable")
	}
	return nil
}
