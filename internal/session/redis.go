package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "console:token:"

const discardScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) end return 0`

// RedisStore keeps tokens in redis so sessions survive console restarts and are shared between replicas.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ CredentialStore = (*RedisStore)(nil)

// NewRedisStore expires tokens after ttl; zero keeps them until cleared.
func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, key string) (string, error) {
	token, err := r.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}
	return token, nil
}

func (r *RedisStore) Save(ctx context.Context, key, token string) error {
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, token, r.ttl).Err(); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (r *RedisStore) Discard(ctx context.Context, key, token string) error {
	if err := r.rdb.Eval(ctx, discardScript, []string{redisKeyPrefix + key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("discard credential: %w", err)
	}
	return nil
}
