package store

import (
	"context"
	"errors"
	"fmt"

	"go-fieldtrack/internal/domain"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore keeps the snapshot in a single redis string without expiry.
func NewRedisStore(rdb *redis.Client, key string) Store {
	if key == "" {
		key = DefaultKey
	}
	return &redisStore{rdb: rdb, key: key}
}

func (s *redisStore) Load(ctx context.Context) (domain.Snapshot, error) {
	payload, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return Decode(s.key, payload)
}

func (s *redisStore) Save(ctx context.Context, snap domain.Snapshot) error {
	payload, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
