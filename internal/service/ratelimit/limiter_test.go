package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterExhaustsAndRefills(t *testing.T) {
	l := New(2, 1) // 2 tokens, 1/sec refill
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := base
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("finnhub"))
	require.True(t, l.Allow("finnhub"))
	require.False(t, l.Allow("finnhub"))

	now = base.Add(time.Second)
	require.True(t, l.Allow("finnhub"))
	require.False(t, l.Allow("finnhub"))
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := New(1, 0)
	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
	require.False(t, l.Allow("a"))
}
