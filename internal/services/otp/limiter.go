// internal/services/otp/limiter.go
package otp

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// throttle hands out one token bucket per key. A nil throttle allows
// everything.
type throttle struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	entries map[string]*throttleEntry
}

func newThrottle(perMinute, burst int) *throttle {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &throttle{
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		entries: make(map[string]*throttleEntry),
	}
}

func (t *throttle) allow(key string, now time.Time) bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok {
		e = &throttleEntry{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// prune forgets keys idle for longer than idle.
func (t *throttle) prune(now time.Time, idle time.Duration) int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for key, e := range t.entries {
		if now.Sub(e.lastSeen) > idle {
			delete(t.entries, key)
			n++
		}
	}
	return n
}
