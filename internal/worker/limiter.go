package worker

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles job starts per key. Batch jobs are keyed by the
// directory of their input file, so jobs reading the same share or mount
// share a budget.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter. perSecond <= 0 disables throttling.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until key may start another job
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[key] = limiter

	return limiter
}

// KeyFor returns the limiter key of an input path
func KeyFor(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Dir(filepath.Clean(path))
}
