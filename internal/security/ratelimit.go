package security

import (
	"math"
	"sync"
	"time"
)

// RateLimiter enforces a fixed request window per identity. State lives in a
// single mutex-guarded map owned by the instance, so tests get isolation by
// constructing fresh limiters.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window

	window time.Duration
	max    int

	// now is replaceable in tests
	now func() time.Time
}

type window struct {
	count int
	start time.Time
}

// RateLimitResult is the outcome of a rate-limit check
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	// ResetIn is the whole seconds until the window expires, rounded up.
	// Only set on rejection.
	ResetIn int
}

// NewRateLimiter creates a rate limiter allowing max requests per window
func NewRateLimiter(windowLen time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		window:  windowLen,
		max:     max,
		now:     time.Now,
	}
}

// Check records a request for identity and reports whether it is allowed.
// Requests beyond the maximum are rejected, never queued.
func (l *RateLimiter) Check(identity string) RateLimitResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[identity]
	if !ok || now.Sub(w.start) > l.window {
		l.windows[identity] = &window{count: 1, start: now}
		l.scheduleCleanup(identity, now)
		return RateLimitResult{Allowed: true, Remaining: l.max - 1}
	}

	if w.count >= l.max {
		left := l.window - now.Sub(w.start)
		return RateLimitResult{
			Allowed: false,
			ResetIn: int(math.Ceil(left.Seconds())),
		}
	}

	w.count++
	return RateLimitResult{Allowed: true, Remaining: l.max - w.count}
}

// scheduleCleanup drops the identity's entry once its window has elapsed,
// bounding memory to identities active within the last window. A newer window
// for the same identity is left alone. Caller holds the lock.
func (l *RateLimiter) scheduleCleanup(identity string, start time.Time) {
	time.AfterFunc(l.window+time.Second, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if w, ok := l.windows[identity]; ok && w.start.Equal(start) {
			delete(l.windows, identity)
		}
	})
}
