package activeorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tableserve/internal/domain"
)

// DefaultKey is the redis key the active-order set lives under.
const DefaultKey = "tableserve:active-orders"

// RedisStore persists the active-order set as one JSON array under a
// single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]domain.ActiveOrder, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}

	var orders []domain.ActiveOrder
	if err := json.Unmarshal(payload, &orders); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return orders, nil
}

func (s *RedisStore) Save(ctx context.Context, orders []domain.ActiveOrder) error {
	payload, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}
