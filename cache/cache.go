// Package cache stores expensive API responses, like the full NFL player
// directory, between runs.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is missing or has expired.
var ErrCacheMiss = errors.New("cache miss")

type Store interface {
	// Get decodes the cached value for key into v.
	Get(ctx context.Context, key string, v any) error
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

// NopStore never caches anything.
type NopStore struct{}

func (NopStore) Get(ctx context.Context, key string, v any) error {
	return ErrCacheMiss
}

func (NopStore) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	return nil
}
