package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 100; i++ {
		if err := limiter.Wait(ctx, "data"); err != nil {
			t.Fatalf("unlimited limiter refused job %d: %v", i, err)
		}
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "data/a"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "data/b"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_RateLimitPerKey(t *testing.T) {
	limiter := NewLimiter(0.01, 1)

	if err := limiter.Wait(context.Background(), "data"); err != nil {
		t.Fatalf("first job should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "data"); err == nil {
		t.Error("expected error when no token is available before the deadline")
	}

	if err := limiter.Wait(context.Background(), "other"); err != nil {
		t.Errorf("expected other key to have its own budget: %v", err)
	}
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/a.csv", "data"},
		{"data/./b.csv", "data"},
		{"a.csv", "."},
		{"-", "stdin"},
	}
	for _, tt := range tests {
		if got := KeyFor(tt.path); got != tt.want {
			t.Errorf("KeyFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
