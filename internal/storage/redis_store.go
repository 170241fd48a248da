package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "shabd:post:"
	redisOpTimeout = 3 * time.Second
	redisMarker    = "1"
)

// redisClient is the subset of *redis.Client the store uses.
type redisClient interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// redisStore shares post keys between relay replicas. Redis expires keys on
// its own, so there is no sweep.
type redisStore struct {
	client redisClient
	ttl    time.Duration
}

func openRedis(addr string, opts Options) (Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return newRedisStore(client, opts), nil
}

func newRedisStore(client redisClient, opts Options) *redisStore {
	return &redisStore{client: client, ttl: opts.PostTTL}
}

func (r *redisStore) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *redisStore) SeenPost(key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	n, err := r.client.Exists(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (r *redisStore) MarkPost(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("post key is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := r.client.Set(ctx, redisKeyPrefix+key, redisMarker, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
