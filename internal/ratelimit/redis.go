package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps one sorted set per key and window. Members are
// unique request ids scored by their unix-millisecond timestamp.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

// DialRedis parses a redis:// URL, connects and pings.
func DialRedis(ctx context.Context, url string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisBackend{client: client}, nil
}

func (b *RedisBackend) Hit(ctx context.Context, key string, w Window, now time.Time) (Result, error) {
	k := windowKey(key, w)
	ts := now.UnixMilli()
	cutoff := strconv.FormatInt(ts-w.Period.Milliseconds(), 10)
	member := uuid.NewString()

	var card *redis.IntCmd
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, k, "-inf", cutoff)
		card = pipe.ZCard(ctx, k)
		pipe.ZAdd(ctx, k, redis.Z{Score: float64(ts), Member: member})
		pipe.PExpire(ctx, k, w.Period)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	count := int(card.Val())
	if count >= w.Limit {
		if err := b.client.ZRem(ctx, k, member).Err(); err != nil {
			return Result{}, err
		}
		return Result{Blocked: true}, nil
	}
	return Result{Remaining: remaining(w.Limit, count+1)}, nil
}

// Close releases the underlying connection pool.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
