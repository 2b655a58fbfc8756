package ratelimit

import (
	"context"
	"time"
)

// Window shared by both backends: 10 calls per identity per minute,
// tracked separately per operation family (callers bake the family into
// the key).
const (
	Window   = time.Minute
	MaxCalls = 10
)

// Limiter answers whether one more call is allowed for the given key.
// Backends may fail open: a limiter that cannot reach its store should
// allow the call rather than take the API down.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}
