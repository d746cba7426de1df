package repository

import (
	"context"
	"time"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
)

// SymbolSearcher performs fuzzy symbol lookups. Candidates come back in
// upstream relevance order.
type SymbolSearcher interface {
	SearchSymbols(ctx context.Context, query string) ([]models.SymbolCandidate, error)
}

// ProfileSource resolves a ticker to a company identity. A (nil, nil)
// return means the ticker is unknown upstream; an error means the lookup
// itself failed.
type ProfileSource interface {
	Profile(ctx context.Context, ticker string) (*models.CompanyProfile, error)
}

// FundamentalsSource yields a named-ratio snapshot. Individual fields may
// be nil when the source does not cover them.
type FundamentalsSource interface {
	Fundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error)
}

// QuoteSource yields a real-time price.
type QuoteSource interface {
	Quote(ctx context.Context, ticker string) (*models.Quote, error)
}

// HistorySource yields an ordered daily close series, oldest first.
type HistorySource interface {
	DailyCloses(ctx context.Context, ticker string, lookbackDays int) ([]float64, error)
}

// NewsSource yields recent headline strings for a ticker.
type NewsSource interface {
	CompanyNews(ctx context.Context, ticker string, since time.Time) ([]string, error)
}

// MarketData is the full provider surface the analysis pipeline consumes.
type MarketData interface {
	SymbolSearcher
	ProfileSource
	FundamentalsSource
	QuoteSource
	HistorySource
	NewsSource
}

// Cache is the request-pipeline store. Get returns false for missing or
// expired entries; neither call ever fails.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// Metrics records operational counters for the pipeline.
type Metrics interface {
	RecordAnalysis(verdict string)
	RecordCache(kind string, hit bool)
	RecordProviderError(provider string)
	RecordStageLatency(stage string, seconds float64)
}
