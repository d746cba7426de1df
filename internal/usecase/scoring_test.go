package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
)

func TestScorePerfectFundamentals(t *testing.T) {
	m := &models.StockMetrics{
		Ticker:       "BRK.B",
		Company:      "Berkshire Hathaway",
		PE:           fptr(12),
		EPSGrowth:    fptr(22),
		ROE:          fptr(28),
		ProfitMargin: fptr(21),
		PB:           fptr(1.2),
		CurrentRatio: fptr(2.1),
		DebtEquity:   fptr(0.2),
		DividendYld:  fptr(3.5),
	}

	b := Score(m, nil)
	assert.Equal(t, 100, b.FundamentalPoints)
	assert.Equal(t, 0, b.TechnicalPoints)
	assert.Equal(t, 20, b.TechnicalMax)

	res := BuildResult(m, nil)
	assert.Equal(t, 83, res.Score) // 100*100/120
	assert.Equal(t, 100, res.FundamentalScore)
	assert.Equal(t, models.VerdictBuy, res.Verdict)
}

func TestScoreAllAbsent(t *testing.T) {
	m := &models.StockMetrics{Ticker: "XXXX", Company: "Unknown Corp"}

	res := BuildResult(m, nil)
	assert.Equal(t, 0, res.FundamentalScore)
	assert.Equal(t, models.VerdictPass, res.Verdict)
	assert.Equal(t, "❌", res.Emoji)
	// the only check that comments on absence is P/E
	require.Len(t, res.ReasonsAgainst, 1)
	assert.Contains(t, res.ReasonsAgainst[0], "P/E")
}

func TestPETierBoundaries(t *testing.T) {
	tests := []struct {
		pe        float64
		points    int
		forReason bool
	}{
		{14.9, 25, true},
		{15, 20, true},
		{19.9, 20, true},
		{20, 15, false},
		{24.9, 15, false},
		{25, 10, false},
		{34.9, 10, false},
		{35, 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("pe=%.1f", tt.pe), func(t *testing.T) {
			m := &models.StockMetrics{Ticker: "T", Company: "T", PE: fptr(tt.pe)}
			b := Score(m, nil)
			assert.Equal(t, tt.points, b.FundamentalPoints)
			if tt.forReason {
				require.NotEmpty(t, b.ReasonsFor)
				assert.Contains(t, b.ReasonsFor[0], fmt.Sprintf("%.1fx earnings", tt.pe))
			}
		})
	}
}

func TestRSIBoundaries(t *testing.T) {
	tests := []struct {
		rsi      float64
		points   int
		polarity string
	}{
		{29, 3, models.PolarityNeutral},
		{30, 5, models.PolarityBullish},
		{70, 5, models.PolarityBullish},
		{71, 0, models.PolarityBearish},
	}
	for _, tt := range tests {
		ph := &models.PriceHistory{RSI: fptr(tt.rsi), Return3M: -1}
		b := Score(&models.StockMetrics{Ticker: "T", Company: "T"}, ph)
		// momentum ≤0 contributes 1; isolate the RSI share
		assert.Equal(t, tt.points+1, b.TechnicalPoints, "rsi=%v", tt.rsi)
		require.NotEmpty(t, b.TechnicalSignals)
		assert.Equal(t, tt.polarity, b.TechnicalSignals[0].Polarity, "rsi=%v", tt.rsi)
	}
}

func TestTechnicalSignalOrderAndMax(t *testing.T) {
	golden := true
	ph := &models.PriceHistory{
		RSI:           fptr(50),
		GoldenCross:   &golden,
		PriceVsSMA200: fptr(4.2),
		Return3M:      12,
	}
	b := Score(&models.StockMetrics{Ticker: "T", Company: "T"}, ph)

	assert.Equal(t, 20, b.TechnicalPoints)
	require.Len(t, b.TechnicalSignals, 4)
	assert.Contains(t, b.TechnicalSignals[0].Label, "RSI")
	assert.Contains(t, b.TechnicalSignals[1].Label, "Golden cross")
	assert.Contains(t, b.TechnicalSignals[2].Label, "above 200-day")
	assert.Contains(t, b.TechnicalSignals[3].Label, "three months")
}

func TestReasonTruncationByEvaluationOrder(t *testing.T) {
	// every factor fires a "for" reason plus both bonus reasons
	m := &models.StockMetrics{
		Ticker: "T", Company: "T",
		PE:           fptr(10),
		EPSGrowth:    fptr(25),
		ROE:          fptr(30),
		ProfitMargin: fptr(25),
		PB:           fptr(1.0),
		CurrentRatio: fptr(2.5),
		DebtEquity:   fptr(0.1),
		DividendYld:  fptr(4),
		InsiderOwn:   fptr(10),
	}
	b := Score(m, nil)

	require.Len(t, b.ReasonsFor, 4)
	assert.Contains(t, b.ReasonsFor[0], "earnings") // P/E first
	assert.Contains(t, b.ReasonsFor[1], "growth")   // then EPS
	assert.Contains(t, b.ReasonsFor[2], "equity")   // then ROE
	assert.Contains(t, b.ReasonsFor[3], "margin")   // then profit margin
}

func TestSummaryShape(t *testing.T) {
	m := &models.StockMetrics{
		Ticker: "KO", Company: "Coca-Cola Co",
		PE:        fptr(12),
		EPSGrowth: fptr(2),
	}
	res := BuildResult(m, nil)
	assert.Contains(t, res.Summary, "Coca-Cola Co")
	assert.Contains(t, res.Summary, "Attractively valued")
	assert.Contains(t, res.Summary, "However, eps growth")
}

func TestFinalScoreRange(t *testing.T) {
	for _, pe := range []float64{1, 14, 22, 40, 90} {
		m := &models.StockMetrics{Ticker: "T", Company: "T", PE: fptr(pe)}
		res := BuildResult(m, nil)
		assert.GreaterOrEqual(t, res.Score, 0)
		assert.LessOrEqual(t, res.Score, 100)
		assert.GreaterOrEqual(t, res.FundamentalScore, 0)
		assert.LessOrEqual(t, res.FundamentalScore, 100)
	}
}
