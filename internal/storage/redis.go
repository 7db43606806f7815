package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "invoicely:slot:"

// Redis keeps the slot under a single key, snappy-compressed.
type Redis struct {
	client redis.UniversalClient
	key    string
}

func NewRedis(client redis.UniversalClient, name string) (*Redis, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidSlotName
	}
	return &Redis{client: client, key: redisKeyPrefix + name}, nil
}

func (r *Redis) Read(ctx context.Context) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	payload, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (r *Redis) Write(ctx context.Context, payload []byte) error {
	return r.client.Set(ctx, r.key, snappy.Encode(nil, payload), 0).Err()
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

func (r *Redis) Driver() string { return "redis" }

func (r *Redis) Key() string { return r.key }
