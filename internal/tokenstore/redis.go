package tokenstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 3 * time.Second

// RedisStore keeps credentials in a Redis hash, for shared-terminal
// deployments where several dashboard hosts must see the same session.
// Redis being unreachable never surfaces as a failure: writes are logged
// and dropped, reads report absent.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store backed by client. namespace distinguishes
// installs sharing one Redis; empty means "opca".
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "opca"
	}
	return &RedisStore{client: client, key: namespace + ":credentials"}
}

func (s *RedisStore) Save(kind Kind, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.HSet(ctx, s.key, string(kind), value).Err(); err != nil {
		slog.Warn("Failed to save credential to redis", "kind", string(kind), "error", err)
	}
}

func (s *RedisStore) Get(kind Kind) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	value, err := s.client.HGet(ctx, s.key, string(kind)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Failed to read credential from redis", "kind", string(kind), "error", err)
		}
		return "", false
	}
	if value == "" {
		return "", false
	}
	return value, true
}

// Clear deletes the hash as a single key, so no partial state survives.
func (s *RedisStore) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		slog.Warn("Failed to clear credentials in redis", "error", err)
	}
}
