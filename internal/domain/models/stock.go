package models

// StockMetrics is the canonical fundamentals record assembled by the
// normalizer. Numeric fields are pointers: nil means the value was not
// available upstream, never zero.
type StockMetrics struct {
	Ticker       string   `json:"ticker"`
	Company      string   `json:"company"`
	Price        *float64 `json:"price,omitempty"`
	MarketCap    string   `json:"market_cap,omitempty"`
	PE           *float64 `json:"pe,omitempty"`
	ForwardPE    *float64 `json:"forward_pe,omitempty"`
	EPSGrowth    *float64 `json:"eps_growth,omitempty"`
	ROE          *float64 `json:"roe,omitempty"`
	ROI          *float64 `json:"roi,omitempty"`
	DebtEquity   *float64 `json:"debt_equity,omitempty"`
	ProfitMargin *float64 `json:"profit_margin,omitempty"`
	OperMargin   *float64 `json:"oper_margin,omitempty"`
	PB           *float64 `json:"pb,omitempty"`
	PS           *float64 `json:"ps,omitempty"`
	CurrentRatio *float64 `json:"current_ratio,omitempty"`
	QuickRatio   *float64 `json:"quick_ratio,omitempty"`
	DividendYld  *float64 `json:"dividend_yield,omitempty"`
	PayoutRatio  *float64 `json:"payout_ratio,omitempty"`
	Beta         *float64 `json:"beta,omitempty"`
	ShortFloat   *float64 `json:"short_float,omitempty"`
	InsiderOwn   *float64 `json:"insider_own,omitempty"`
	InstOwn      *float64 `json:"inst_own,omitempty"`
	PerfYTD      *float64 `json:"perf_ytd,omitempty"`
	PerfYear     *float64 `json:"perf_year,omitempty"`
}

// Fundamentals is the named-ratio snapshot a single upstream source yields.
// The normalizer merges one or more of these into a StockMetrics.
type Fundamentals struct {
	PE            *float64
	ForwardPE     *float64
	EPSGrowthNext *float64 // forward-looking 5y estimate
	EPSGrowthPast *float64 // trailing 5y
	ROE           *float64
	ROI           *float64
	DebtEquity    *float64
	ProfitMargin  *float64
	OperMargin    *float64
	PB            *float64
	PS            *float64
	CurrentRatio  *float64
	QuickRatio    *float64
	DividendYld   *float64
	PayoutRatio   *float64
	Beta          *float64
	ShortFloat    *float64
	InsiderOwn    *float64
	InstOwn       *float64
	PerfYTD       *float64
	PerfYear      *float64
}

// CompanyProfile is the upstream identity record for a ticker.
type CompanyProfile struct {
	Ticker            string
	Name              string
	MarketCapMillions float64
}

// Quote is a real-time price snapshot.
type Quote struct {
	Price float64
}

// SymbolCandidate is one fuzzy-search result.
type SymbolCandidate struct {
	Symbol   string
	Type     string
	Exchange string
}
