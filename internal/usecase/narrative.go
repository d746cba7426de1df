package usecase

import (
	"fmt"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
)

const maxNarrativeSentences = 3

// Narrative expands an already-scored result into up to three templated
// prose sentences. Rules fire at most once each, in priority order:
// valuation, quality, balance sheet, growth-plus-dividend, recent news.
func Narrative(res *models.AnalysisResult, headlines []string) string {
	m := res.Metrics
	sentences := make([]string, 0, maxNarrativeSentences)
	add := func(s string) {
		if len(sentences) < maxNarrativeSentences {
			sentences = append(sentences, s)
		}
	}

	if m.PE != nil && *m.PE > 0 && *m.PE < 15 {
		add(fmt.Sprintf("At %.1f times earnings, %s trades at a discount to the broader market.", *m.PE, res.Company))
	}
	if m.ROE != nil && *m.ROE > 20 && m.ProfitMargin != nil && *m.ProfitMargin > 15 {
		add(fmt.Sprintf("A %.1f%% return on equity paired with %.1f%% profit margins suggests a durable competitive moat.", *m.ROE, *m.ProfitMargin))
	}
	if m.DebtEquity != nil && *m.DebtEquity < 0.5 && m.CurrentRatio != nil && *m.CurrentRatio > 1.5 {
		add(fmt.Sprintf("With debt at %.2fx equity and a current ratio of %.1f, the balance sheet leaves plenty of room for bad years.", *m.DebtEquity, *m.CurrentRatio))
	}
	if m.EPSGrowth != nil && *m.EPSGrowth > 10 && m.DividendYld != nil && *m.DividendYld > 1.5 {
		add(fmt.Sprintf("Earnings compounding at %.1f%% alongside a %.1f%% dividend is a combination Buffett rarely passes up.", *m.EPSGrowth, *m.DividendYld))
	}
	if len(headlines) > 0 {
		add(fmt.Sprintf("In the news: %q.", headlines[0]))
	}

	if len(sentences) == 0 {
		return ""
	}
	out := sentences[0]
	for _, s := range sentences[1:] {
		out += " " + s
	}
	return out
}
