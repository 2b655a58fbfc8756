package ratelimit

import (
	"context"
	"sync"
	"time"
)

type visitor struct {
	calls    []time.Time
	lastSeen time.Time
}

// MemoryLimiter keeps a sliding window of call timestamps per caller
// identity: a call passes only while fewer than MaxCalls happened in the
// trailing Window, regardless of how the calls are spaced. State is
// process-local and resets on restart, which is fine for a single
// instance; multi-instance deployments use the Redis backend instead.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

func NewMemoryLimiter() *MemoryLimiter {
	m := &MemoryLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}

	go m.evictLoop()
	return m
}

func (m *MemoryLimiter) Allow(ctx context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{}
		m.visitors[key] = v
	}
	v.lastSeen = now

	cutoff := now.Add(-Window)
	kept := v.calls[:0]
	for _, at := range v.calls {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	v.calls = kept

	if len(v.calls) >= MaxCalls {
		return false
	}
	v.calls = append(v.calls, now)
	return true
}

// evictLoop drops identities idle for longer than three windows so the
// map does not grow without bound.
func (m *MemoryLimiter) evictLoop() {
	ticker := time.NewTicker(Window)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		cutoff := m.now().Add(-3 * Window)
		for key, v := range m.visitors {
			if v.lastSeen.Before(cutoff) {
				delete(m.visitors, key)
			}
		}
		m.mu.Unlock()
	}
}
