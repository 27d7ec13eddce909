package service

import (
	"context"
	"time"

	"github.com/BloggingApp/engagement-service/internal/config"
	"github.com/BloggingApp/engagement-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DEFAULT_LOCK_TTL   = 5 * time.Second
	DEFAULT_LOCK_WAIT  = 2 * time.Second
	LOCK_RETRY_EVERY   = 25 * time.Millisecond
	LOCK_RELEASE_LIMIT = time.Second
)

// postLock serialises read-modify-write cycles on a single post across all
// service instances.
type postLock struct {
	logger *zap.Logger
	locker redisrepo.Locker
	ttl    time.Duration
	wait   time.Duration
}

func newPostLock(logger *zap.Logger, locker redisrepo.Locker, cfg config.LockConfig) *postLock {
	if cfg.TTL <= 0 {
		cfg.TTL = DEFAULT_LOCK_TTL
	}
	if cfg.Wait <= 0 {
		cfg.Wait = DEFAULT_LOCK_WAIT
	}

	return &postLock{
		logger: logger,
		locker: locker,
		ttl:    cfg.TTL,
		wait:   cfg.Wait,
	}
}

func (l *postLock) withLock(ctx context.Context, postID primitive.ObjectID, fn func() error) error {
	key := redisrepo.PostLockKey(postID.Hex())
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		acquired, err := l.locker.Acquire(ctx, key, token, l.ttl)
		if err != nil {
			l.logger.Sugar().Errorf("failed to acquire lock for post(%s): %s", postID.Hex(), err.Error())
			return ErrInternal
		}
		if acquired {
			break
		}
		if time.Now().After(deadline) {
			return ErrPostBusy
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(LOCK_RETRY_EVERY):
		}
	}

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LOCK_RELEASE_LIMIT)
		defer cancel()

		if err := l.locker.Release(releaseCtx, key, token); err != nil {
			l.logger.Sugar().Errorf("failed to release lock for post(%s): %s", postID.Hex(), err.Error())
		}
	}()

	return fn()
}
