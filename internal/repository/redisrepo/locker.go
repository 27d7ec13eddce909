package redisrepo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type locker struct {
	rdb *redis.Client
}

func newLocker(rdb *redis.Client) Locker {
	return &locker{
		rdb: rdb,
	}
}

func (l *locker) Acquire(ctx context.Context, key string, token string, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, key, token, ttl).Result()
}

func (l *locker) Release(ctx context.Context, key string, token string) error {
	return releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
}
