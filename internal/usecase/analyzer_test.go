package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	p := &stubProvider{
		profiles: map[string]*models.CompanyProfile{
			"KO": {Ticker: "KO", Name: "Coca-Cola Co", MarketCapMillions: 260_000},
		},
		fundamentals: map[string]*models.Fundamentals{
			"KO": strongFundamentals(),
		},
		quotes: map[string]*models.Quote{"KO": {Price: 62.5}},
		closes: map[string][]float64{"KO": series(252, 50, 0.05)},
	}
	a := newTestAnalyzer(p)

	res, err := a.Analyze(context.Background(), "coca cola", false)
	require.NoError(t, err)

	assert.Equal(t, "KO", res.Ticker)
	assert.Equal(t, "Coca-Cola Co", res.Company)
	assert.Equal(t, models.VerdictBuy, res.Verdict)
	require.NotNil(t, res.PriceHistory)
	assert.Equal(t, 20, res.Technical.Max)
	assert.Empty(t, res.ExtendedAnalysis)
	assert.Empty(t, res.NewsHeadlines)
}

func TestAnalyzeExtendedAddsNarrativeAndNews(t *testing.T) {
	p := &stubProvider{
		profiles: map[string]*models.CompanyProfile{
			"KO": {Ticker: "KO", Name: "Coca-Cola Co", MarketCapMillions: 260_000},
		},
		fundamentals: map[string]*models.Fundamentals{
			"KO": strongFundamentals(),
		},
		headlines: map[string][]string{
			"KO": {"one", "two", "three", "four", "five", "six", "seven"},
		},
	}
	a := newTestAnalyzer(p)

	res, err := a.AnalyzeTicker(context.Background(), "KO", true)
	require.NoError(t, err)

	assert.NotEmpty(t, res.ExtendedAnalysis)
	assert.Len(t, res.NewsHeadlines, 5) // capped
}

func TestAnalyzeUnknownTickerIsTerminal(t *testing.T) {
	a := newTestAnalyzer(&stubProvider{})
	_, err := a.AnalyzeTicker(context.Background(), "XXXX", false)
	assert.ErrorIs(t, err, ErrStockNotFound)
}

func TestAnalyzeSurvivesMissingHistory(t *testing.T) {
	p := &stubProvider{
		profiles: map[string]*models.CompanyProfile{
			"KO": {Ticker: "KO", Name: "Coca-Cola Co", MarketCapMillions: 260_000},
		},
		fundamentals: map[string]*models.Fundamentals{
			"KO": strongFundamentals(),
		},
		closesErr: context.DeadlineExceeded,
	}
	a := newTestAnalyzer(p)

	res, err := a.AnalyzeTicker(context.Background(), "KO", false)
	require.NoError(t, err)
	assert.Nil(t, res.PriceHistory)
	assert.Zero(t, res.Technical.Score)
	assert.Equal(t, 20, res.Technical.Max)
}
