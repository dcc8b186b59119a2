package designai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterMinuteWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	rl := NewRateLimiter(2, 100)
	rl.lastReset = base
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow()
	require.True(t, ok)
	ok, _ = rl.Allow()
	require.True(t, ok)

	ok, reason := rl.Allow()
	require.False(t, ok)
	require.Equal(t, "Rate limit exceeded. Please wait a minute.", reason)

	// Window slides: a minute later the slots free up again.
	now = base.Add(61 * time.Second)
	ok, _ = rl.Allow()
	require.True(t, ok)
}

func TestRateLimiterDailyLimit(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	rl := NewRateLimiter(100, 3)
	rl.lastReset = base
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow()
		require.True(t, ok)
		now = now.Add(2 * time.Minute)
	}

	ok, reason := rl.Allow()
	require.False(t, ok)
	require.Equal(t, "Daily API limit reached. Please try again tomorrow.", reason)

	// A day later the counter resets.
	now = base.Add(25 * time.Hour)
	ok, _ = rl.Allow()
	require.True(t, ok)
}

func TestRateLimiterStatusDoesNotConsume(t *testing.T) {
	rl := NewRateLimiter(5, 10)

	status := rl.Status()
	require.Equal(t, 0, status.RequestsPerMinuteUsed)
	require.Equal(t, 5, status.RequestsPerMinuteLimit)
	require.Equal(t, 10, status.DailyRequestsLimit)
	require.True(t, status.CanMakeRequest)

	ok, _ := rl.Allow()
	require.True(t, ok)

	status = rl.Status()
	require.Equal(t, 1, status.RequestsPerMinuteUsed)
	require.Equal(t, 1, status.DailyRequestsUsed)
	require.True(t, status.CanMakeRequest)

	status = rl.Status()
	require.Equal(t, 1, status.DailyRequestsUsed)
}

func TestRateLimiterStatusAtLimit(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	ok, _ := rl.Allow()
	require.True(t, ok)

	status := rl.Status()
	require.False(t, status.CanMakeRequest)
}
