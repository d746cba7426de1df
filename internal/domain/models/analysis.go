package models

// Verdict is the qualitative recommendation label.
type Verdict string

const (
	VerdictBuy      Verdict = "BUY"
	VerdictConsider Verdict = "CONSIDER"
	VerdictCaution  Verdict = "CAUTION"
	VerdictPass     Verdict = "PASS"
)

// Signal polarity labels.
const (
	PolarityBullish = "bullish"
	PolarityNeutral = "neutral"
	PolarityBearish = "bearish"
)

// PriceHistory is the derived technical view of a daily close series.
// Indicators that need more history than is available stay nil.
type PriceHistory struct {
	Return3M      float64   `json:"return_3m"`
	StartPrice    float64   `json:"start_price"`
	EndPrice      float64   `json:"end_price"`
	High3M        float64   `json:"high_3m"`
	Low3M         float64   `json:"low_3m"`
	Sparkline     []float64 `json:"sparkline"`
	SMA50         *float64  `json:"sma_50,omitempty"`
	SMA200        *float64  `json:"sma_200,omitempty"`
	RSI           *float64  `json:"rsi,omitempty"`
	GoldenCross   *bool     `json:"golden_cross,omitempty"`
	PriceVsSMA200 *float64  `json:"price_vs_sma200,omitempty"`
}

// TechnicalSignal is one labelled momentum/trend observation.
type TechnicalSignal struct {
	Label    string `json:"label"`
	Polarity string `json:"polarity"`
}

// ScoreBreakdown carries the raw points behind a blended score.
type ScoreBreakdown struct {
	FundamentalPoints int               `json:"fundamental_points"`
	FundamentalMax    int               `json:"fundamental_max"`
	TechnicalPoints   int               `json:"technical_points"`
	TechnicalMax      int               `json:"technical_max"`
	ReasonsFor        []string          `json:"reasons_for"`
	ReasonsAgainst    []string          `json:"reasons_against"`
	TechnicalSignals  []TechnicalSignal `json:"technical_signals"`
}

// TechnicalScore is the technical slice of an AnalysisResult.
type TechnicalScore struct {
	Score   int               `json:"score"`
	Max     int               `json:"max"`
	Signals []TechnicalSignal `json:"signals"`
}

// AnalysisResult is the engine's final record for one request. It is not
// mutated after being returned.
type AnalysisResult struct {
	Ticker           string          `json:"ticker"`
	Company          string          `json:"company"`
	Price            *float64        `json:"price,omitempty"`
	MarketCap        string          `json:"market_cap,omitempty"`
	Metrics          *StockMetrics   `json:"metrics"`
	PriceHistory     *PriceHistory   `json:"price_history,omitempty"`
	Score            int             `json:"score"`
	FundamentalScore int             `json:"fundamental_score"`
	Technical        TechnicalScore  `json:"technical"`
	Verdict          Verdict         `json:"verdict"`
	Emoji            string          `json:"emoji"`
	Summary          string          `json:"summary"`
	ReasonsFor       []string        `json:"reasons_for"`
	ReasonsAgainst   []string        `json:"reasons_against"`
	ExtendedAnalysis string          `json:"extended_analysis,omitempty"`
	NewsHeadlines    []string        `json:"news_headlines,omitempty"`
}
