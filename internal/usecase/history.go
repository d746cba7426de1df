package usecase

import (
	"context"
	"math"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/repository"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

const (
	historyLookbackDays = 365
	window3M            = 63 // trading days in ~3 months
	sparklinePoints     = 30
	rsiPeriods          = 14
)

// HistoryService derives momentum and trend indicators from a daily close
// series. The secondary source kicks in when the primary yields fewer
// than two usable points; fewer than two points overall means history is
// simply unavailable, not an error. Results are cached under
// history:{ticker}.
type HistoryService struct {
	primary   repository.HistorySource
	secondary repository.HistorySource // optional
	cache     repository.Cache
	metrics   repository.Metrics
	log       *xlogger.Logger
}

func NewHistoryService(
	primary repository.HistorySource,
	secondary repository.HistorySource,
	cache repository.Cache,
	metrics repository.Metrics,
	log *xlogger.Logger,
) *HistoryService {
	return &HistoryService{
		primary:   primary,
		secondary: secondary,
		cache:     cache,
		metrics:   metrics,
		log:       log.With("history"),
	}
}

// PriceHistory returns the derived indicators for a ticker, or (nil, nil)
// when no usable series exists.
func (s *HistoryService) PriceHistory(ctx context.Context, ticker string) (*models.PriceHistory, error) {
	key := "history:" + ticker
	if v, ok := s.cache.Get(key); ok {
		s.metrics.RecordCache("history", true)
		return v.(*models.PriceHistory), nil
	}
	s.metrics.RecordCache("history", false)

	closes := s.fetchCloses(ctx, ticker)
	if len(closes) < 2 {
		return nil, nil
	}

	ph := ComputeIndicators(closes)
	s.cache.Set(key, ph)
	return ph, nil
}

func (s *HistoryService) fetchCloses(ctx context.Context, ticker string) []float64 {
	closes, err := s.primary.DailyCloses(ctx, ticker, historyLookbackDays)
	if err != nil {
		s.log.Warn("primary history fetch failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		s.metrics.RecordProviderError("history")
	}
	if len(closes) >= 2 || s.secondary == nil {
		return closes
	}

	fallback, err := s.secondary.DailyCloses(ctx, ticker, historyLookbackDays)
	if err != nil {
		s.log.Warn("secondary history fetch failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		s.metrics.RecordProviderError("history_fallback")
		return closes
	}
	if len(fallback) >= 2 {
		return fallback
	}
	return closes
}

// ComputeIndicators derives the full technical view from an ordered daily
// close series (oldest first). Indicators that need more history than is
// available stay nil rather than being computed on a short window.
func ComputeIndicators(closes []float64) *models.PriceHistory {
	window := closes
	if len(window) > window3M {
		window = closes[len(closes)-window3M:]
	}

	start := window[0]
	end := window[len(window)-1]

	ph := &models.PriceHistory{
		StartPrice: start,
		EndPrice:   end,
		High3M:     window[0],
		Low3M:      window[0],
		Sparkline:  downsample(window, sparklinePoints),
	}
	for _, p := range window {
		if p > ph.High3M {
			ph.High3M = p
		}
		if p < ph.Low3M {
			ph.Low3M = p
		}
	}
	if start != 0 {
		ph.Return3M = (end - start) / start * 100
	}

	ph.SMA50 = sma(closes, 50)
	ph.SMA200 = sma(closes, 200)
	ph.RSI = rsi(closes, rsiPeriods)

	if ph.SMA50 != nil && ph.SMA200 != nil && !math.IsNaN(*ph.SMA50) && !math.IsNaN(*ph.SMA200) {
		golden := *ph.SMA50 > *ph.SMA200
		ph.GoldenCross = &golden
	}
	if ph.SMA200 != nil && *ph.SMA200 > 0 {
		vs := (end - *ph.SMA200) / *ph.SMA200 * 100
		ph.PriceVsSMA200 = &vs
	}

	return ph
}

// downsample caps the series at max points, sampling at stride
// len/max and keeping the most recent samples when the stride still
// overshoots.
func downsample(series []float64, max int) []float64 {
	stride := len(series) / max
	if stride < 1 {
		stride = 1
	}
	out := make([]float64, 0, max)
	for i := 0; i < len(series); i += stride {
		out = append(out, series[i])
	}
	if len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}

// sma is the simple trailing mean over the last n closes, nil when the
// series is shorter than n.
func sma(closes []float64, n int) *float64 {
	if len(closes) < n {
		return nil
	}
	var sum float64
	for _, p := range closes[len(closes)-n:] {
		sum += p
	}
	avg := sum / float64(n)
	return &avg
}

// rsi is the relative strength index over the last n periods, computed on
// plain averages of gains and losses. Needs n+1 closes.
func rsi(closes []float64, n int) *float64 {
	if len(closes) < n+1 {
		return nil
	}

	tail := closes[len(closes)-n-1:]
	var gains, losses float64
	for i := 1; i < len(tail); i++ {
		delta := tail[i] - tail[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses += -delta
		}
	}
	avgGain := gains / float64(n)
	avgLoss := losses / float64(n)

	if avgLoss == 0 {
		v := 100.0
		return &v
	}
	rs := avgGain / avgLoss
	v := 100 - 100/(1+rs)
	return &v
}
