package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterAllowsUpToWindowMax(t *testing.T) {
	m := NewMemoryLimiter()
	ctx := context.Background()

	for i := 1; i <= MaxCalls; i++ {
		if !m.Allow(ctx, "email:ip:1.2.3.4") {
			t.Fatalf("call %d should be allowed", i)
		}
	}

	if m.Allow(ctx, "email:ip:1.2.3.4") {
		t.Errorf("call %d should be rejected", MaxCalls+1)
	}
}

func TestMemoryLimiterTracksIdentitiesSeparately(t *testing.T) {
	m := NewMemoryLimiter()
	ctx := context.Background()

	for i := 0; i < MaxCalls; i++ {
		m.Allow(ctx, "email:ip:1.2.3.4")
	}

	if !m.Allow(ctx, "email:ip:5.6.7.8") {
		t.Error("a different identity should have its own budget")
	}
	if !m.Allow(ctx, "sms:ip:1.2.3.4") {
		t.Error("the sms family should have its own budget")
	}
}

func TestMemoryLimiterRejectsSpacedCallsInWindow(t *testing.T) {
	m := NewMemoryLimiter()
	ctx := context.Background()
	const key = "email:ip:1.2.3.4"

	current := time.Now()
	m.now = func() time.Time { return current }

	// Ten calls spread over 45 seconds, well under any burst.
	for i := 1; i <= MaxCalls; i++ {
		if !m.Allow(ctx, key) {
			t.Fatalf("call %d should be allowed", i)
		}
		current = current.Add(5 * time.Second)
	}

	// 50 seconds in, every prior call is still inside the window; no
	// amount of spacing buys an 11th call.
	if m.Allow(ctx, key) {
		t.Fatal("call 11 inside the window should be rejected")
	}

	// Another 15 seconds push the oldest call out of the window.
	current = current.Add(15 * time.Second)
	if !m.Allow(ctx, key) {
		t.Error("call should pass once the oldest drops out of the window")
	}
}
