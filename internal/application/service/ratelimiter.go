package service

import "context"

// RateLimiter decides whether the client identified by key may make
// another request now.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
