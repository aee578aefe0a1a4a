package middleware

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a fixed-window limiter local to one process. Expired
// windows are swept lazily, at most once per window length.
type MemoryLimiter struct {
	max    int
	window time.Duration

	mu        sync.Mutex
	windows   map[string]*fixedWindow
	lastSweep time.Time

	now func() time.Time
}

type fixedWindow struct {
	count   int
	resetAt time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter allows max requests per key in each window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     max,
		window:  window,
		windows: make(map[string]*fixedWindow),
		now:     time.Now,
	}
}

// Allow counts one request for key.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &fixedWindow{resetAt: now.Add(l.window)}
		l.windows[key] = w
	}
	w.count++

	remaining := l.max - w.count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:    w.count <= l.max,
		Limit:      l.max,
		Remaining:  remaining,
		ResetAfter: w.resetAt.Sub(now),
	}, nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
