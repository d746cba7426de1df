package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
)

const (
	fundamentalMax = 100
	technicalMax   = 20

	maxReasonsFor     = 4
	maxReasonsAgainst = 3
)

// Score blends the fundamental and technical sub-scores into a
// ScoreBreakdown. Pure function of its inputs; ph may be nil when no
// price history exists, which yields 0 of the (still reported) 20
// technical points.
func Score(m *models.StockMetrics, ph *models.PriceHistory) *models.ScoreBreakdown {
	b := &models.ScoreBreakdown{
		FundamentalMax: fundamentalMax,
		TechnicalMax:   technicalMax,
	}

	scoreFundamentals(m, b)
	scoreTechnical(ph, b)

	if len(b.ReasonsFor) > maxReasonsFor {
		b.ReasonsFor = b.ReasonsFor[:maxReasonsFor]
	}
	if len(b.ReasonsAgainst) > maxReasonsAgainst {
		b.ReasonsAgainst = b.ReasonsAgainst[:maxReasonsAgainst]
	}
	return b
}

// FinalScore renormalizes the blended points to 0-100.
func FinalScore(b *models.ScoreBreakdown) int {
	total := b.FundamentalMax + b.TechnicalMax
	return int(math.Round(100 * float64(b.FundamentalPoints+b.TechnicalPoints) / float64(total)))
}

// FundamentalScore is the fundamental sub-score on its own 0-100 scale.
func FundamentalScore(b *models.ScoreBreakdown) int {
	return int(math.Round(100 * float64(b.FundamentalPoints) / float64(b.FundamentalMax)))
}

// scoreFundamentals applies the fixed-weight tiered checks in factor
// order: P/E, EPS growth, ROE, profit margin, P/B, current ratio, D/E,
// then the dividend and insider-ownership bonus commentary. A check
// contributes nothing when its metric is absent.
func scoreFundamentals(m *models.StockMetrics, b *models.ScoreBreakdown) {
	forReason := func(format string, a ...any) {
		b.ReasonsFor = append(b.ReasonsFor, fmt.Sprintf(format, a...))
	}
	againstReason := func(format string, a ...any) {
		b.ReasonsAgainst = append(b.ReasonsAgainst, fmt.Sprintf(format, a...))
	}

	// P/E, max 25
	if m.PE != nil && *m.PE > 0 {
		pe := *m.PE
		switch {
		case pe < 15:
			b.FundamentalPoints += 25
			forReason("Attractively valued at %.1fx earnings", pe)
		case pe < 20:
			b.FundamentalPoints += 20
			forReason("Reasonably priced at %.1fx earnings", pe)
		case pe < 25:
			b.FundamentalPoints += 15
		case pe < 35:
			b.FundamentalPoints += 10
			againstReason("P/E of %.1f is on the higher side", pe)
		default:
			againstReason("P/E of %.1f is rich for a value investor", pe)
		}
	} else {
		againstReason("No P/E ratio available (may be unprofitable)")
	}

	// EPS growth, max 20
	if m.EPSGrowth != nil {
		g := *m.EPSGrowth
		switch {
		case g > 20:
			b.FundamentalPoints += 20
			forReason("Excellent earnings growth of %.1f%%", g)
		case g > 15:
			b.FundamentalPoints += 16
			forReason("Strong earnings growth of %.1f%%", g)
		case g > 10:
			b.FundamentalPoints += 12
			forReason("Solid earnings growth of %.1f%%", g)
		case g > 5:
			b.FundamentalPoints += 8
		default:
			againstReason("EPS growth of %.1f%% is anemic", g)
		}
	}

	// ROE, max 15
	if m.ROE != nil {
		roe := *m.ROE
		switch {
		case roe > 25:
			b.FundamentalPoints += 15
			forReason("Exceptional return on equity of %.1f%%", roe)
		case roe > 20:
			b.FundamentalPoints += 12
		case roe > 15:
			b.FundamentalPoints += 9
		case roe > 10:
			b.FundamentalPoints += 6
		default:
			againstReason("ROE of %.1f%% points to weak capital returns", roe)
		}
	}

	// Profit margin, max 10
	if m.ProfitMargin != nil {
		pm := *m.ProfitMargin
		switch {
		case pm > 20:
			b.FundamentalPoints += 10
			forReason("Outstanding profit margin of %.1f%%", pm)
		case pm > 15:
			b.FundamentalPoints += 8
		case pm > 10:
			b.FundamentalPoints += 6
		case pm > 5:
			b.FundamentalPoints += 4
		}
	}

	// Price/Book, max 10
	if m.PB != nil {
		pb := *m.PB
		switch {
		case pb < 1.5:
			b.FundamentalPoints += 10
			forReason("Trading near book value (P/B: %.1f)", pb)
		case pb < 2.5:
			b.FundamentalPoints += 7
		case pb < 4:
			b.FundamentalPoints += 4
		default:
			againstReason("P/B of %.1f leaves little margin of safety", pb)
		}
	}

	// Current ratio, max 10
	if m.CurrentRatio != nil {
		cr := *m.CurrentRatio
		switch {
		case cr > 2.0:
			b.FundamentalPoints += 10
			forReason("Strong liquidity (current ratio: %.1f)", cr)
		case cr > 1.5:
			b.FundamentalPoints += 7
		case cr > 1.0:
			b.FundamentalPoints += 4
		default:
			againstReason("Current ratio of %.1f signals tight liquidity", cr)
		}
	}

	// Debt/Equity, max 10
	if m.DebtEquity != nil {
		de := *m.DebtEquity
		switch {
		case de < 0.3:
			b.FundamentalPoints += 10
			forReason("Very low debt (D/E: %.2f)", de)
		case de < 0.5:
			b.FundamentalPoints += 8
			forReason("Conservative debt levels (D/E: %.2f)", de)
		case de < 1.0:
			b.FundamentalPoints += 6
		case de < 1.5:
			b.FundamentalPoints += 4
		default:
			againstReason("High debt (D/E: %.2f) adds risk", de)
		}
	}

	// Bonus commentary, no points.
	if m.DividendYld != nil && *m.DividendYld > 2 {
		forReason("Pays a healthy %.1f%% dividend", *m.DividendYld)
	}
	if m.InsiderOwn != nil && *m.InsiderOwn > 5 {
		forReason("Insiders hold %.1f%% of the shares", *m.InsiderOwn)
	}
}

// scoreTechnical evaluates the momentum signals in fixed order: RSI,
// cross, price vs SMA200, 3-month momentum. Absent history contributes 0
// points; TechnicalMax stays 20 regardless.
func scoreTechnical(ph *models.PriceHistory, b *models.ScoreBreakdown) {
	if ph == nil {
		return
	}

	signal := func(points int, polarity, format string, a ...any) {
		b.TechnicalPoints += points
		b.TechnicalSignals = append(b.TechnicalSignals, models.TechnicalSignal{
			Label:    fmt.Sprintf(format, a...),
			Polarity: polarity,
		})
	}

	if ph.RSI != nil {
		rsi := *ph.RSI
		switch {
		case rsi >= 30 && rsi <= 70:
			signal(5, models.PolarityBullish, "RSI %.0f in healthy range", rsi)
		case rsi < 30:
			signal(3, models.PolarityNeutral, "RSI %.0f — oversold, potential rebound", rsi)
		default:
			signal(0, models.PolarityBearish, "RSI %.0f — overbought", rsi)
		}
	}

	if ph.GoldenCross != nil {
		if *ph.GoldenCross {
			signal(5, models.PolarityBullish, "Golden cross: 50-day above 200-day average")
		} else {
			signal(0, models.PolarityBearish, "Death cross: 50-day below 200-day average")
		}
	}

	if ph.PriceVsSMA200 != nil {
		vs := *ph.PriceVsSMA200
		if vs > 0 {
			signal(5, models.PolarityBullish, "Price %.1f%% above 200-day average", vs)
		} else {
			signal(2, models.PolarityBearish, "Price %.1f%% below 200-day average", math.Abs(vs))
		}
	}

	r := ph.Return3M
	switch {
	case r > 10:
		signal(5, models.PolarityBullish, "Up %.1f%% over three months", r)
	case r > 0:
		signal(3, models.PolarityNeutral, "Modest three-month gain of %.1f%%", r)
	default:
		signal(1, models.PolarityBearish, "Down %.1f%% over three months", math.Abs(r))
	}
}

// verdictFor maps the final score to the label, emoji, and opening
// sentence.
func verdictFor(score int, company string) (models.Verdict, string, string) {
	switch {
	case score >= 75:
		return models.VerdictBuy, "✅", fmt.Sprintf("Warren would likely approve of %s.", company)
	case score >= 55:
		return models.VerdictConsider, "🤔", fmt.Sprintf("%s has some Buffett-worthy qualities.", company)
	case score >= 35:
		return models.VerdictCaution, "⚠️", fmt.Sprintf("%s doesn't fully meet Buffett's criteria.", company)
	default:
		return models.VerdictPass, "❌", fmt.Sprintf("Warren would likely pass on %s.", company)
	}
}

// buildSummary appends the leading reason, then either the leading
// concern (lower-cased behind "However, ") or the runner-up reason.
func buildSummary(opening string, reasonsFor, reasonsAgainst []string) string {
	var sb strings.Builder
	sb.WriteString(opening)
	if len(reasonsFor) > 0 {
		sb.WriteString(" ")
		sb.WriteString(reasonsFor[0])
		sb.WriteString(".")
	}
	if len(reasonsAgainst) > 0 {
		sb.WriteString(" However, ")
		sb.WriteString(strings.ToLower(reasonsAgainst[0]))
		sb.WriteString(".")
	} else if len(reasonsFor) > 1 {
		sb.WriteString(" ")
		sb.WriteString(reasonsFor[1])
		sb.WriteString(".")
	}
	return sb.String()
}

// BuildResult assembles the full analysis record from the normalized
// metrics and (possibly nil) price history.
func BuildResult(m *models.StockMetrics, ph *models.PriceHistory) *models.AnalysisResult {
	b := Score(m, ph)
	final := FinalScore(b)
	verdict, emoji, opening := verdictFor(final, m.Company)

	return &models.AnalysisResult{
		Ticker:           m.Ticker,
		Company:          m.Company,
		Price:            m.Price,
		MarketCap:        m.MarketCap,
		Metrics:          m,
		PriceHistory:     ph,
		Score:            final,
		FundamentalScore: FundamentalScore(b),
		Technical: models.TechnicalScore{
			Score:   b.TechnicalPoints,
			Max:     b.TechnicalMax,
			Signals: b.TechnicalSignals,
		},
		Verdict:        verdict,
		Emoji:          emoji,
		Summary:        buildSummary(opening, b.ReasonsFor, b.ReasonsAgainst),
		ReasonsFor:     b.ReasonsFor,
		ReasonsAgainst: b.ReasonsAgainst,
	}
}
