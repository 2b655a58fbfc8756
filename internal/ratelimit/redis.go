package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisLimiter is a sliding-window limiter over a sorted set per
// identity, usable across replicas. Redis being unreachable fails open.
type RedisLimiter struct {
	client *redis.Client
	logger *zap.Logger
}

var _ Limiter = (*RedisLimiter)(nil)

func NewRedisLimiter(client *redis.Client, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{client: client, logger: logger}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) bool {
	nowNs := time.Now().UnixNano()
	windowStart := nowNs - Window.Nanoseconds()

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, "rl:"+key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, "rl:"+key, &redis.Z{
		Score:  float64(nowNs),
		Member: nowNs,
	})
	count := pipe.ZCard(ctx, "rl:"+key)
	pipe.Expire(ctx, "rl:"+key, Window)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("rate limiter redis error, allowing call",
			zap.String("key", key),
			zap.Error(err),
		)
		return true
	}

	return count.Val() <= MaxCalls
}
