package redisrepo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker hands out short-lived exclusive locks. A lock is only released by
// the holder of its token; an expired lock is free for anyone.
type Locker interface {
	Acquire(ctx context.Context, key string, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string, token string) error
}

type RedisRepository struct {
	Locker
}

func New(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{
		Locker: newLocker(rdb),
	}
}
