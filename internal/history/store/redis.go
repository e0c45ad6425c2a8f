package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis keeps the history as a JSON string under one key.
type Redis struct {
	client cmdable
	key    string
}

func NewRedis(client cmdable, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (s *Redis) Load(ctx context.Context) ([]invoice.Record, error) {
	value, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []invoice.Record{}, nil
		}

		return nil, fmt.Errorf("loading history: %w", err)
	}

	return history.Decode(strings.NewReader(value))
}

func (s *Redis) Store(ctx context.Context, records []invoice.Record) error {
	data, err := history.Encode(records)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, string(data), 0).Err(); err != nil {
		return fmt.Errorf("storing history: %w", err)
	}

	return nil
}
