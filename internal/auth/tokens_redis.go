package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTokenPrefix = "soukel:authtok:"

// RedisTokenStore keeps one-time tokens in Redis so they survive restarts and
// expire server-side. Selected when REDIS_ADDR is configured.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(addr string) (*RedisTokenStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisTokenStore{client: client}, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, redisTokenPrefix+token, userID, ttl).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, token string) (string, error) {
	v, err := s.client.Get(ctx, redisTokenPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisTokenPrefix+token).Err()
}
