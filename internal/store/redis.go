/**
 * @description
 * This file wraps the optional Redis connection used for shared rate limiting.
 */
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Redis is the optional Redis collaborator backing distributed rate limiting.
type Redis struct {
	url string

	mu     sync.RWMutex
	client *redis.Client
}

// NewRedis creates an unopened Redis collaborator for the given redis:// URL.
func NewRedis(url string) *Redis {
	return &Redis{url: url}
}

// Name identifies the resource in lifecycle logs and readiness checks.
func (r *Redis) Name() string { return "redis" }

// Open parses the URL, dials and pings the server.
func (r *Redis) Open(ctx context.Context) error {
	opts, err := redis.ParseURL(r.url)
	if err != nil {
		return fmt.Errorf("redis url parse failed: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	r.mu.Lock()
	r.client = client
	r.mu.Unlock()
	return nil
}

// Ping reports ErrNotOpen until Open has succeeded.
func (r *Redis) Ping(ctx context.Context) error {
	client := r.Client()
	if client == nil {
		return ErrNotOpen
	}
	return client.Ping(ctx).Err()
}

// Close releases the client. Closing an unopened Redis is a no-op.
func (r *Redis) Close(context.Context) error {
	r.mu.Lock()
	client := r.client
	r.client = nil
	r.mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Close()
}

// Client returns the connected client, or nil when Open has not succeeded.
func (r *Redis) Client() *redis.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.client
}
