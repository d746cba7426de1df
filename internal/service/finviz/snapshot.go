package finviz

import (
	"strconv"
	"strings"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
)

// Snapshot is the raw string-keyed metric table as the quote page renders
// it ("P/E" -> "28.5", "ROE" -> "147.00%", missing -> "-").
type Snapshot map[string]string

// ParseMetric converts one snapshot cell to a float. "-" and empty cells
// mean the value is unknown; malformed input also yields nil, never an
// error.
func ParseMetric(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return nil
	}
	clean := strings.NewReplacer("%", "", ",", "").Replace(value)
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Fundamentals maps the snapshot onto the typed record every source
// shape feeds the normalizer through.
func (s Snapshot) Fundamentals() *models.Fundamentals {
	return &models.Fundamentals{
		PE:            ParseMetric(s["P/E"]),
		ForwardPE:     ParseMetric(s["Forward P/E"]),
		EPSGrowthNext: ParseMetric(s["EPS next 5Y"]),
		EPSGrowthPast: ParseMetric(s["EPS past 5Y"]),
		ROE:           ParseMetric(s["ROE"]),
		ROI:           ParseMetric(s["ROI"]),
		DebtEquity:    ParseMetric(s["Debt/Eq"]),
		ProfitMargin:  ParseMetric(s["Profit Margin"]),
		OperMargin:    ParseMetric(s["Oper. Margin"]),
		PB:            ParseMetric(s["P/B"]),
		PS:            ParseMetric(s["P/S"]),
		CurrentRatio:  ParseMetric(s["Current Ratio"]),
		QuickRatio:    ParseMetric(s["Quick Ratio"]),
		DividendYld:   ParseMetric(s["Dividend %"]),
		PayoutRatio:   ParseMetric(s["Payout"]),
		Beta:          ParseMetric(s["Beta"]),
		ShortFloat:    ParseMetric(s["Short Float"]),
		InsiderOwn:    ParseMetric(s["Insider Own"]),
		InstOwn:       ParseMetric(s["Inst Own"]),
		PerfYTD:       ParseMetric(s["Perf YTD"]),
		PerfYear:      ParseMetric(s["Perf Year"]),
	}
}
