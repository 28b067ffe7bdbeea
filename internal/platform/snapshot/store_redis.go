// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snapshot

import (
	stdctx "context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// # Redis Backend

// redisStore persists each document as a plain string value under its key.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed [Store] on an established client.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

// Read loads the document stored under key. redis.Nil maps to ErrNotFound.
func (store *redisStore) Read(context stdctx.Context, key string) ([]byte, error) {
	data, err := store.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("snapshot: failed to read %q: %w", key, err)
	}
	return data, nil
}

// Write replaces the document stored under key.
//
// Snapshots are state, not cache — no TTL is set.
func (store *redisStore) Write(context stdctx.Context, key string, data []byte) error {
	if err := store.client.Set(context, key, data, 0).Err(); err != nil {
		return fmt.Errorf("snapshot: failed to write %q: %w", key, err)
	}
	return nil
}
