package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func TestDoVal_SucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := DoVal(context.Background(), Policy{Sleep: noSleep}, func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestDoVal_RetriesTransient(t *testing.T) {
	calls := 0
	got, err := DoVal(context.Background(), Policy{MaxAttempts: 3, Sleep: noSleep}, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", MarkTransient(errors.New("rate limited"), 429)
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDoVal_StopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), Policy{MaxAttempts: 5, Sleep: noSleep}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("invalid request")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoVal_ExhaustsAttempts(t *testing.T) {
	calls := 0
	retries := 0
	p := Policy{
		MaxAttempts: 3,
		Sleep:       noSleep,
		OnRetry:     func(int, error) { retries++ },
	}
	_, err := DoVal(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		return 0, MarkTransient(errors.New("unavailable"), 503)
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, retries)
}

func TestDo_ContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Policy{MaxAttempts: 5, Sleep: noSleep}, func(ctx context.Context) error {
		calls++
		cancel()
		return MarkTransient(errors.New("reset"), 0)
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestPolicy_DelayBounds(t *testing.T) {
	p := Policy{BaseDelay: time.Second, MaxDelay: 4 * time.Second, Jitter: 0}.withDefaults()
	assert.Equal(t, time.Second, p.delay(0))
	assert.Equal(t, 2*time.Second, p.delay(1))
	assert.Equal(t, 4*time.Second, p.delay(2))
	// Capped past the max.
	assert.Equal(t, 4*time.Second, p.delay(5))
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(errors.New("bad input")))
	assert.True(t, IsTransient(MarkTransient(errors.New("529"), 529)))
	assert.True(t, IsTransient(errors.New("read tcp: i/o timeout")))
}

func TestRetryableStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, RetryableStatus(code), "code %d", code)
	}
	for _, code := range []int{200, 400, 401, 404} {
		assert.False(t, RetryableStatus(code), "code %d", code)
	}
}
