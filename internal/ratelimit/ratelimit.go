/**
 * @description
 * Package ratelimit provides fixed-window request limiting, in memory for a
 * single instance or in Redis when several instances share a budget.
 * This file holds the Limiter contract and the in-process implementation.
 */
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of consuming one request from a key's budget.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter consumes one request for key and reports whether it fits the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type window struct {
	count int
	start time.Time
}

// FixedWindow is an in-process fixed-window limiter.
type FixedWindow struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewFixedWindow allows limit requests per key in every period.
func NewFixedWindow(limit int, period time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

func (l *FixedWindow) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[key]
	if w == nil || now.Sub(w.start) >= l.period {
		l.sweep(now)
		w = &window{start: now}
		l.windows[key] = w
	}

	retryAfter := w.start.Add(l.period).Sub(now)
	if w.count >= l.limit {
		return Decision{Allowed: false, Limit: l.limit, RetryAfter: retryAfter}, nil
	}
	w.count++

	return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit - w.count, RetryAfter: retryAfter}, nil
}

// sweep drops expired windows so idle clients do not accumulate.
func (l *FixedWindow) sweep(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, key)
		}
	}
}
