package share

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "botdb:share:"

// RedisStore keeps codes in redis with an expiry.
type RedisStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisStore(rdb redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// DialRedis connects to addr and checks the connection.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return rdb, nil
}

func (s *RedisStore) Save(ctx context.Context, code string) (string, error) {
	id := NewID()
	if err := s.rdb.Set(ctx, keyPrefix+id, code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("save shared deck: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (string, error) {
	code, err := s.rdb.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load shared deck: %w", err)
	}
	return code, nil
}
