package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each namespace in one hash: <prefix>:<namespace>.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a Store backed by client.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "portal:storage"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(namespace string) string {
	return r.prefix + ":" + namespace
}

func (r *Redis) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	if namespace == "" {
		return "", false, ErrNamespaceRequired
	}
	val, err := r.client.HGet(ctx, r.key(namespace), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget: %w", err)
	}
	return val, true, nil
}

func (r *Redis) Items(ctx context.Context, namespace string) (map[string]string, error) {
	if namespace == "" {
		return nil, ErrNamespaceRequired
	}
	items, err := r.client.HGetAll(ctx, r.key(namespace)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	return items, nil
}

// SetItems writes every field with a single HSET, which Redis applies atomically.
func (r *Redis) SetItems(ctx context.Context, namespace string, items map[string]string) error {
	if namespace == "" {
		return ErrNamespaceRequired
	}
	if len(items) == 0 {
		return nil
	}
	args := make([]any, 0, len(items)*2)
	for k, v := range items {
		args = append(args, k, v)
	}
	if err := r.client.HSet(ctx, r.key(namespace), args...).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, namespace string, keys ...string) error {
	if namespace == "" {
		return ErrNamespaceRequired
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, r.key(namespace), keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context, namespace string) error {
	if namespace == "" {
		return ErrNamespaceRequired
	}
	if err := r.client.Del(ctx, r.key(namespace)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
