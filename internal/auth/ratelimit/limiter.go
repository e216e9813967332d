// Package ratelimit implements the in-memory per-key quota tracker guarding sensitive
// endpoints. State is process-local; nothing is shared across instances.
package ratelimit

import (
	"sync"
	"time"

	autherror "github.com/techstud-dev/schedule-university/internal/errors"
)

// refillCheck is how long a window keeps serving its quota before a new access replaces
// it with a fresh one. It is intentionally independent of the caller-supplied interval,
// which only controls when an idle entry is evicted from the map.
const refillCheck = time.Second

type window struct {
	mu        sync.Mutex
	remaining int
	start     time.Time
}

// Limiter tracks remaining quota per resolved key (IP or user identifier). Safe for
// concurrent use by all in-flight requests.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func New() *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Admit records one call for key and reports whether it is allowed. limit is the quota
// of a fresh window; interval governs eviction of the key's entry from the map, not the
// refill cadence. Exhausted quota yields a RateLimitError carrying the time until the
// window refills.
func (l *Limiter) Admit(key string, limit int, interval time.Duration) error {
	now := l.now()
	w := l.fetchOrCreate(key, limit, now)

	// Check-and-decrement is one unit under the window lock; a concurrent replacement
	// of the map entry never mutates this window.
	w.mu.Lock()
	var err error
	if w.remaining <= 0 {
		retry := w.start.Add(refillCheck).Sub(now)
		if retry < 0 {
			retry = 0
		}
		err = &autherror.RateLimitError{RetryAfter: retry}
	} else {
		w.remaining--
	}
	start := w.start
	w.mu.Unlock()

	// Passive staleness check: entries older than the caller-supplied interval are
	// dropped entirely on access.
	if now.Sub(start) > interval {
		l.evict(key, w)
	}

	return err
}

func (l *Limiter) fetchOrCreate(key string, limit int, now time.Time) *window {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) > refillCheck {
		w = &window{remaining: limit, start: now}
		l.windows[key] = w
	}

	return w
}

func (l *Limiter) evict(key string, w *window) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.windows[key] == w {
		delete(l.windows, key)
	}
}
