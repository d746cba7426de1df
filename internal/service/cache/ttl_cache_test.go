package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCacheGetWithinWindow(t *testing.T) {
	c := NewTTLCache(300 * time.Second)
	c.Set("data:TSLA", 42)

	v, ok := c.Get("data:TSLA")
	require.True(t, ok)
	require.Equal(t, 42, v)

	// second read returns the identical value
	v2, ok := c.Get("data:TSLA")
	require.True(t, ok)
	require.Equal(t, v, v2)
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache(300 * time.Second)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.now = func() time.Time { return now }

	c.Set("history:KO", []float64{1, 2, 3})

	now = base.Add(299 * time.Second)
	_, ok := c.Get("history:KO")
	require.True(t, ok)

	now = base.Add(300 * time.Second)
	_, ok = c.Get("history:KO")
	require.False(t, ok)

	// expired entry is not evicted; a later Set simply overwrites it
	c.Set("history:KO", []float64{4})
	v, ok := c.Get("history:KO")
	require.True(t, ok)
	require.Equal(t, []float64{4}, v)
}

func TestTTLCacheMissingKey(t *testing.T) {
	c := NewTTLCache(time.Second)
	_, ok := c.Get("nope")
	require.False(t, ok)
}
