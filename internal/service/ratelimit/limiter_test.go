package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowConsumesTokens(t *testing.T) {
	l := New()
	if !l.Allow("k", 2, 0) {
		t.Fatalf("first token should be available")
	}
	if !l.Allow("k", 2, 0) {
		t.Fatalf("second token should be available")
	}
	if l.Allow("k", 2, 0) {
		t.Fatalf("bucket should be empty")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 100) {
		t.Fatalf("first token should be available")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("k", 1, 100) {
		t.Fatalf("bucket should have refilled")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()
	l.Allow("k", 1, 0) // drain; zero refill keeps it empty

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if l.Wait(ctx, "k", 1, 0) {
		t.Fatalf("wait should fail when the bucket never refills")
	}
}
