package usecase

import (
	"context"
	"time"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/repository"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

// Analyzer runs the full pipeline: resolve, normalize, derive
// indicators, score, and (in extended mode) narrate. Stages run
// sequentially; only the identity lookup is terminal, every other
// upstream failure degrades to absent data.
type Analyzer struct {
	resolver     *Resolver
	normalizer   *Normalizer
	history      *HistoryService
	news         repository.NewsSource // optional
	newsLookback time.Duration
	maxHeadlines int
	metrics      repository.Metrics
	log          *xlogger.Logger
}

func NewAnalyzer(
	resolver *Resolver,
	normalizer *Normalizer,
	history *HistoryService,
	news repository.NewsSource,
	newsLookback time.Duration,
	maxHeadlines int,
	metrics repository.Metrics,
	log *xlogger.Logger,
) *Analyzer {
	if newsLookback <= 0 {
		newsLookback = 7 * 24 * time.Hour
	}
	if maxHeadlines <= 0 {
		maxHeadlines = 5
	}
	return &Analyzer{
		resolver:     resolver,
		normalizer:   normalizer,
		history:      history,
		news:         news,
		newsLookback: newsLookback,
		maxHeadlines: maxHeadlines,
		metrics:      metrics,
		log:          log.With("analyzer"),
	}
}

// Resolve maps a free-form query to a canonical ticker.
func (a *Analyzer) Resolve(ctx context.Context, query string) string {
	return a.resolver.Resolve(ctx, query)
}

// Analyze resolves a free-form query and analyzes the resulting ticker.
func (a *Analyzer) Analyze(ctx context.Context, query string, extended bool) (*models.AnalysisResult, error) {
	ticker := a.resolver.Resolve(ctx, query)
	return a.AnalyzeTicker(ctx, ticker, extended)
}

// AnalyzeTicker analyzes an already-resolved ticker.
func (a *Analyzer) AnalyzeTicker(ctx context.Context, ticker string, extended bool) (*models.AnalysisResult, error) {
	start := time.Now()

	m, err := a.normalizer.Metrics(ctx, ticker)
	if err != nil {
		return nil, err
	}

	ph, err := a.history.PriceHistory(ctx, ticker)
	if err != nil {
		// history is best-effort; score without it
		a.log.Warn("price history unavailable", xlogger.String("ticker", ticker), xlogger.Error(err))
		ph = nil
	}

	res := BuildResult(m, ph)

	if extended {
		headlines := a.fetchHeadlines(ctx, ticker)
		res.ExtendedAnalysis = Narrative(res, headlines)
		res.NewsHeadlines = headlines
	}

	a.metrics.RecordAnalysis(string(res.Verdict))
	a.metrics.RecordStageLatency("analyze", time.Since(start).Seconds())
	a.log.Info("analysis complete",
		xlogger.String("ticker", res.Ticker),
		xlogger.Int("score", res.Score),
		xlogger.String("verdict", string(res.Verdict)),
		xlogger.Duration("took", time.Since(start)))
	return res, nil
}

func (a *Analyzer) fetchHeadlines(ctx context.Context, ticker string) []string {
	if a.news == nil {
		return nil
	}
	since := time.Now().Add(-a.newsLookback)
	headlines, err := a.news.CompanyNews(ctx, ticker, since)
	if err != nil {
		a.log.Warn("news fetch failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		a.metrics.RecordProviderError("news")
		return nil
	}
	if len(headlines) > a.maxHeadlines {
		headlines = headlines[:a.maxHeadlines]
	}
	return headlines
}
