package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

func series(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestComputeIndicatorsShortSeries(t *testing.T) {
	// 10 points: too short for SMAs and RSI, but the 3-month window works
	closes := series(10, 100, 1) // 100..109
	ph := ComputeIndicators(closes)

	assert.Nil(t, ph.SMA50)
	assert.Nil(t, ph.SMA200)
	assert.Nil(t, ph.RSI)
	assert.Nil(t, ph.GoldenCross)
	assert.Nil(t, ph.PriceVsSMA200)

	assert.Equal(t, 100.0, ph.StartPrice)
	assert.Equal(t, 109.0, ph.EndPrice)
	assert.InDelta(t, 9.0, ph.Return3M, 1e-9)
	assert.Equal(t, 109.0, ph.High3M)
	assert.Equal(t, 100.0, ph.Low3M)
}

func TestComputeIndicatorsRSIBoundary(t *testing.T) {
	// 14 points -> 13 deltas: not enough
	assert.Nil(t, ComputeIndicators(series(14, 100, 1)).RSI)

	// 15 points, strictly rising: no losses -> RSI 100
	ph := ComputeIndicators(series(15, 100, 1))
	require.NotNil(t, ph.RSI)
	assert.Equal(t, 100.0, *ph.RSI)

	// alternating equal gains and losses -> RSI 50
	closes := make([]float64, 15)
	closes[0] = 100
	for i := 1; i < 15; i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 2
		} else {
			closes[i] = closes[i-1] - 2
		}
	}
	ph = ComputeIndicators(closes)
	require.NotNil(t, ph.RSI)
	assert.InDelta(t, 50.0, *ph.RSI, 1e-9)
}

func TestComputeIndicatorsFullYear(t *testing.T) {
	closes := series(252, 100, 0.5)
	ph := ComputeIndicators(closes)

	require.NotNil(t, ph.SMA50)
	require.NotNil(t, ph.SMA200)
	require.NotNil(t, ph.GoldenCross)
	assert.True(t, *ph.GoldenCross) // rising series: short mean above long

	require.NotNil(t, ph.PriceVsSMA200)
	assert.Greater(t, *ph.PriceVsSMA200, 0.0)

	// 3-month window covers the last 63 points only
	assert.Equal(t, closes[252-63], ph.StartPrice)
	assert.Equal(t, closes[251], ph.EndPrice)
	assert.LessOrEqual(t, len(ph.Sparkline), 30)
}

func TestComputeIndicatorsSMAValues(t *testing.T) {
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 10 // flat
	}
	ph := ComputeIndicators(closes)
	require.NotNil(t, ph.SMA50)
	require.NotNil(t, ph.SMA200)
	assert.InDelta(t, 10, *ph.SMA50, 1e-9)
	assert.InDelta(t, 10, *ph.SMA200, 1e-9)
	require.NotNil(t, ph.GoldenCross)
	assert.False(t, *ph.GoldenCross) // equal means no golden cross
	assert.InDelta(t, 0, *ph.PriceVsSMA200, 1e-9)
}

func TestPriceHistoryFallbackToSecondary(t *testing.T) {
	primary := &stubProvider{closes: map[string][]float64{"KO": {60}}} // 1 point: unusable
	secondary := &stubProvider{closes: map[string][]float64{"KO": series(20, 60, 0.1)}}

	svc := NewHistoryService(primary, secondary, newMemCache(), nopMetrics{}, xlogger.Nop())
	ph, err := svc.PriceHistory(context.Background(), "KO")
	require.NoError(t, err)
	require.NotNil(t, ph)
	assert.Equal(t, 60.0, ph.StartPrice)
}

func TestPriceHistoryUnavailable(t *testing.T) {
	primary := &stubProvider{closesErr: context.DeadlineExceeded}
	svc := NewHistoryService(primary, nil, newMemCache(), nopMetrics{}, xlogger.Nop())

	ph, err := svc.PriceHistory(context.Background(), "XXXX")
	require.NoError(t, err)
	assert.Nil(t, ph)
}

func TestPriceHistoryCached(t *testing.T) {
	primary := &stubProvider{closes: map[string][]float64{"KO": series(20, 60, 0.1)}}
	cache := newMemCache()
	svc := NewHistoryService(primary, nil, cache, nopMetrics{}, xlogger.Nop())

	first, err := svc.PriceHistory(context.Background(), "KO")
	require.NoError(t, err)

	// mutate upstream; the cached view must win
	primary.closes["KO"] = series(20, 999, 1)
	second, err := svc.PriceHistory(context.Background(), "KO")
	require.NoError(t, err)
	assert.Same(t, first, second)
}
