package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/repository"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

// ErrStockNotFound means the ticker could not be resolved to a tradable
// identity. It is an expected outcome of free-text input, not a fault.
var ErrStockNotFound = errors.New("stock not found")

// Normalizer assembles the canonical StockMetrics record from the typed
// provider, with the legacy string-table source filling fields the typed
// provider does not carry. Results are cached under data:{ticker}.
type Normalizer struct {
	profiles repository.ProfileSource
	primary  repository.FundamentalsSource
	legacy   repository.FundamentalsSource // optional
	quotes   repository.QuoteSource
	cache    repository.Cache
	metrics  repository.Metrics
	log      *xlogger.Logger
}

func NewNormalizer(
	profiles repository.ProfileSource,
	primary repository.FundamentalsSource,
	legacy repository.FundamentalsSource,
	quotes repository.QuoteSource,
	cache repository.Cache,
	metrics repository.Metrics,
	log *xlogger.Logger,
) *Normalizer {
	return &Normalizer{
		profiles: profiles,
		primary:  primary,
		legacy:   legacy,
		quotes:   quotes,
		cache:    cache,
		metrics:  metrics,
		log:      log.With("normalizer"),
	}
}

// Metrics returns the normalized record for a ticker. A missing identity
// is terminal (ErrStockNotFound); failures on fundamentals or quote only
// leave the affected fields absent.
func (n *Normalizer) Metrics(ctx context.Context, ticker string) (*models.StockMetrics, error) {
	key := "data:" + ticker
	if v, ok := n.cache.Get(key); ok {
		n.metrics.RecordCache("metrics", true)
		return v.(*models.StockMetrics), nil
	}
	n.metrics.RecordCache("metrics", false)

	profile, err := n.profiles.Profile(ctx, ticker)
	if err != nil {
		n.log.Warn("profile lookup failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		n.metrics.RecordProviderError("profile")
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, ticker)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, ticker)
	}

	m := &models.StockMetrics{
		Ticker:  profile.Ticker,
		Company: profile.Name,
	}
	if profile.MarketCapMillions > 0 {
		m.MarketCap = FormatMarketCap(profile.MarketCapMillions)
	}

	fu := n.fetchFundamentals(ctx, ticker)
	if fu != nil {
		applyFundamentals(m, fu)
	}

	quote, err := n.quotes.Quote(ctx, ticker)
	if err != nil {
		n.log.Warn("quote fetch failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		n.metrics.RecordProviderError("quote")
	} else if quote != nil {
		price := quote.Price
		m.Price = &price
	}

	n.cache.Set(key, m)
	return m, nil
}

// fetchFundamentals merges the primary snapshot with the legacy source,
// primary fields winning.
func (n *Normalizer) fetchFundamentals(ctx context.Context, ticker string) *models.Fundamentals {
	fu, err := n.primary.Fundamentals(ctx, ticker)
	if err != nil {
		n.log.Warn("fundamentals fetch failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		n.metrics.RecordProviderError("fundamentals")
		fu = nil
	}

	if n.legacy == nil {
		return fu
	}
	legacy, err := n.legacy.Fundamentals(ctx, ticker)
	if err != nil {
		n.log.Warn("legacy fundamentals fetch failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		n.metrics.RecordProviderError("fundamentals_legacy")
		return fu
	}
	if legacy == nil {
		return fu
	}
	if fu == nil {
		return legacy
	}
	mergeFundamentals(fu, legacy)
	return fu
}

// applyFundamentals copies the snapshot onto the canonical record and
// applies the fallback precedence: trailing P/E falls back to forward
// P/E, forward EPS growth falls back to the trailing 5-year figure.
func applyFundamentals(m *models.StockMetrics, fu *models.Fundamentals) {
	m.PE = fu.PE
	m.ForwardPE = fu.ForwardPE
	if m.PE == nil {
		m.PE = fu.ForwardPE
	}

	m.EPSGrowth = fu.EPSGrowthNext
	if m.EPSGrowth == nil {
		m.EPSGrowth = fu.EPSGrowthPast
	}

	m.ROE = fu.ROE
	m.ROI = fu.ROI
	m.DebtEquity = fu.DebtEquity
	m.ProfitMargin = fu.ProfitMargin
	m.OperMargin = fu.OperMargin
	m.PB = fu.PB
	m.PS = fu.PS
	m.CurrentRatio = fu.CurrentRatio
	m.QuickRatio = fu.QuickRatio
	m.DividendYld = fu.DividendYld
	m.PayoutRatio = fu.PayoutRatio
	m.Beta = fu.Beta
	m.ShortFloat = fu.ShortFloat
	m.InsiderOwn = fu.InsiderOwn
	m.InstOwn = fu.InstOwn
	m.PerfYTD = fu.PerfYTD
	m.PerfYear = fu.PerfYear
}

// mergeFundamentals fills nil fields of dst from src.
func mergeFundamentals(dst, src *models.Fundamentals) {
	fill := func(d **float64, s *float64) {
		if *d == nil {
			*d = s
		}
	}
	fill(&dst.PE, src.PE)
	fill(&dst.ForwardPE, src.ForwardPE)
	fill(&dst.EPSGrowthNext, src.EPSGrowthNext)
	fill(&dst.EPSGrowthPast, src.EPSGrowthPast)
	fill(&dst.ROE, src.ROE)
	fill(&dst.ROI, src.ROI)
	fill(&dst.DebtEquity, src.DebtEquity)
	fill(&dst.ProfitMargin, src.ProfitMargin)
	fill(&dst.OperMargin, src.OperMargin)
	fill(&dst.PB, src.PB)
	fill(&dst.PS, src.PS)
	fill(&dst.CurrentRatio, src.CurrentRatio)
	fill(&dst.QuickRatio, src.QuickRatio)
	fill(&dst.DividendYld, src.DividendYld)
	fill(&dst.PayoutRatio, src.PayoutRatio)
	fill(&dst.Beta, src.Beta)
	fill(&dst.ShortFloat, src.ShortFloat)
	fill(&dst.InsiderOwn, src.InsiderOwn)
	fill(&dst.InstOwn, src.InstOwn)
	fill(&dst.PerfYTD, src.PerfYTD)
	fill(&dst.PerfYear, src.PerfYear)
}

// FormatMarketCap renders a raw magnitude in millions with base-1000
// suffixes: 2500000 -> "2.5T", 150000 -> "150.0B", 850 -> "850M".
func FormatMarketCap(millions float64) string {
	switch {
	case millions >= 1_000_000:
		return fmt.Sprintf("%.1fT", millions/1_000_000)
	case millions >= 1_000:
		return fmt.Sprintf("%.1fB", millions/1_000)
	default:
		return fmt.Sprintf("%.0fM", millions)
	}
}
