package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autherror "github.com/techstud-dev/schedule-university/internal/errors"
)

func TestLimiter_AdmitWithinQuota(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		assert.NoError(t, l.Admit("10.0.0.1", 3, time.Minute))
	}
}

func TestLimiter_RejectsWhenExhausted(t *testing.T) {
	l := New()
	base := time.Now()
	l.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Admit("10.0.0.1", 3, time.Minute))
	}

	err := l.Admit("10.0.0.1", 3, time.Minute)

	var rateErr *autherror.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, refillCheck, rateErr.RetryAfter)
}

func TestLimiter_RetryAfterNeverNegative(t *testing.T) {
	l := New()
	base := time.Now()
	l.now = func() time.Time { return base }

	require.NoError(t, l.Admit("10.0.0.1", 1, time.Minute))

	// Move just shy of the refill boundary so the same window is still served.
	l.now = func() time.Time { return base.Add(refillCheck) }

	err := l.Admit("10.0.0.1", 1, time.Minute)

	var rateErr *autherror.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.GreaterOrEqual(t, rateErr.RetryAfter, time.Duration(0))
}

func TestLimiter_RefillsAfterWindowElapses(t *testing.T) {
	l := New()
	base := time.Now()
	l.now = func() time.Time { return base }

	require.NoError(t, l.Admit("10.0.0.1", 1, time.Minute))
	require.Error(t, l.Admit("10.0.0.1", 1, time.Minute))

	l.now = func() time.Time { return base.Add(refillCheck + time.Millisecond) }

	assert.NoError(t, l.Admit("10.0.0.1", 1, time.Minute))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New()
	base := time.Now()
	l.now = func() time.Time { return base }

	require.NoError(t, l.Admit("10.0.0.1", 1, time.Minute))
	require.Error(t, l.Admit("10.0.0.1", 1, time.Minute))

	assert.NoError(t, l.Admit("10.0.0.2", 1, time.Minute))
	assert.NoError(t, l.Admit("johndoe", 1, time.Minute))
}

func TestLimiter_EvictsStaleEntries(t *testing.T) {
	l := New()
	base := time.Now()
	l.now = func() time.Time { return base }

	require.NoError(t, l.Admit("10.0.0.1", 3, 30*time.Second))

	l.mu.Lock()
	_, present := l.windows["10.0.0.1"]
	l.mu.Unlock()
	require.True(t, present)

	// An access past the interval replaces the window, serves it, then drops the entry.
	l.now = func() time.Time { return base.Add(31 * time.Second) }
	require.NoError(t, l.Admit("10.0.0.1", 3, 30*time.Second))

	l.mu.Lock()
	_, present = l.windows["10.0.0.1"]
	l.mu.Unlock()
	assert.False(t, present)
}

func TestLimiter_ConcurrentAdmitsHonourQuota(t *testing.T) {
	l := New()
	base := time.Now()
	l.now = func() time.Time { return base }

	const (
		workers = 50
		limit   = 10
	)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Admit("10.0.0.1", limit, time.Minute) == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, allowed)
}
