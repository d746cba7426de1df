package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
)

func narrativeResult(m *models.StockMetrics) *models.AnalysisResult {
	return &models.AnalysisResult{Company: "Coca-Cola Co", Metrics: m}
}

func TestNarrativeCapsAtThreeSentences(t *testing.T) {
	// all four metric rules plus a headline would fire: only three survive
	m := &models.StockMetrics{
		PE:           fptr(12),
		ROE:          fptr(40),
		ProfitMargin: fptr(22),
		DebtEquity:   fptr(0.3),
		CurrentRatio: fptr(2.1),
		EPSGrowth:    fptr(12),
		DividendYld:  fptr(3.0),
	}
	out := Narrative(narrativeResult(m), []string{"Coca-Cola raises guidance"})

	assert.Contains(t, out, "12.0 times earnings")
	assert.Contains(t, out, "competitive moat")
	assert.Contains(t, out, "balance sheet")
	assert.NotContains(t, out, "Buffett rarely passes up")
	assert.NotContains(t, out, "In the news")
}

func TestNarrativeHeadlineOnly(t *testing.T) {
	out := Narrative(narrativeResult(&models.StockMetrics{}), []string{"Coca-Cola raises guidance", "second story"})
	assert.Equal(t, `In the news: "Coca-Cola raises guidance".`, out)
}

func TestNarrativeEmptyWhenNothingFires(t *testing.T) {
	m := &models.StockMetrics{PE: fptr(30)} // too expensive for the valuation rule
	assert.Empty(t, Narrative(narrativeResult(m), nil))
}

func TestNarrativeRulesNeedBothLegs(t *testing.T) {
	// high ROE alone does not fire the moat rule
	m := &models.StockMetrics{ROE: fptr(40)}
	assert.Empty(t, Narrative(narrativeResult(m), nil))

	m.ProfitMargin = fptr(22)
	assert.Contains(t, Narrative(narrativeResult(m), nil), "competitive moat")
}
