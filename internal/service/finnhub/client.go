package finnhub

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	"github.com/jagjothbhullar/uncle-warren-says/internal/service/ratelimit"
	xhttp "github.com/jagjothbhullar/uncle-warren-says/pkg/http"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// Client is a Finnhub REST client covering the provider surface the
// analysis pipeline needs: symbol search, company profile, fundamentals
// snapshot, real-time quote, daily candles, and company news.
type Client struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	log     *xlogger.Logger
}

// New creates a Finnhub client. The limiter guards the upstream request
// quota; a denied token surfaces as a regular request error.
func New(apiKey, baseURL string, timeout time.Duration, limiter *ratelimit.Limiter, log *xlogger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: limiter,
		log:     log.With("finnhub"),
	}
}

func (c *Client) getJSON(ctx context.Context, path string, params map[string][]string, dest interface{}) error {
	if c.limiter != nil && !c.limiter.Allow("finnhub") {
		return fmt.Errorf("finnhub: request quota exhausted")
	}
	if params == nil {
		params = map[string][]string{}
	}
	params["token"] = []string{c.apiKey}

	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		QueryParams: params,
	}, dest)
	if err != nil {
		return fmt.Errorf("finnhub %s: %w", path, err)
	}
	return nil
}

type searchResponse struct {
	Count  int `json:"count"`
	Result []struct {
		Symbol        string `json:"symbol"`
		DisplaySymbol string `json:"displaySymbol"`
		Type          string `json:"type"`
	} `json:"result"`
}

// SearchSymbols performs a fuzzy symbol lookup, preserving upstream order.
func (c *Client) SearchSymbols(ctx context.Context, query string) ([]models.SymbolCandidate, error) {
	var resp searchResponse
	if err := c.getJSON(ctx, "/search", map[string][]string{"q": {query}}, &resp); err != nil {
		return nil, err
	}

	out := make([]models.SymbolCandidate, 0, len(resp.Result))
	for _, r := range resp.Result {
		out = append(out, models.SymbolCandidate{
			Symbol:   r.Symbol,
			Type:     r.Type,
			Exchange: exchangeOf(r.Symbol),
		})
	}
	return out, nil
}

// exchangeOf derives the listing venue from a symbol suffix. Unsuffixed
// symbols are US primary listings.
func exchangeOf(symbol string) string {
	if i := strings.LastIndex(symbol, "."); i >= 0 && len(symbol)-i-1 >= 2 {
		return symbol[i+1:]
	}
	return "US"
}

type profileResponse struct {
	Ticker               string  `json:"ticker"`
	Name                 string  `json:"name"`
	MarketCapitalization float64 `json:"marketCapitalization"` // millions
}

// Profile returns the company identity, or (nil, nil) when the ticker is
// unknown upstream (Finnhub answers an empty object).
func (c *Client) Profile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	var resp profileResponse
	if err := c.getJSON(ctx, "/stock/profile2", map[string][]string{"symbol": {ticker}}, &resp); err != nil {
		return nil, err
	}
	if resp.Name == "" && resp.Ticker == "" {
		return nil, nil
	}
	name := resp.Name
	if name == "" {
		name = ticker
	}
	return &models.CompanyProfile{
		Ticker:            ticker,
		Name:              name,
		MarketCapMillions: resp.MarketCapitalization,
	}, nil
}

type metricResponse struct {
	Metric map[string]any `json:"metric"`
}

// Fundamentals fetches the /stock/metric snapshot and maps the named
// ratios onto the typed record. Fields the payload lacks stay nil.
func (c *Client) Fundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error) {
	var resp metricResponse
	params := map[string][]string{"symbol": {ticker}, "metric": {"all"}}
	if err := c.getJSON(ctx, "/stock/metric", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Metric) == 0 {
		return nil, nil
	}

	m := resp.Metric
	return &models.Fundamentals{
		PE:            floatVal(m, "peTTM"),
		ForwardPE:     floatVal(m, "forwardPE"),
		EPSGrowthNext: floatVal(m, "epsGrowth5YEstimate"),
		EPSGrowthPast: floatVal(m, "epsGrowth5Y"),
		ROE:           floatVal(m, "roeTTM"),
		ROI:           floatVal(m, "roiTTM"),
		DebtEquity:    floatVal(m, "totalDebt/totalEquityQuarterly"),
		ProfitMargin:  floatVal(m, "netProfitMarginTTM"),
		OperMargin:    floatVal(m, "operatingMarginTTM"),
		PB:            floatVal(m, "pbQuarterly"),
		PS:            floatVal(m, "psTTM"),
		CurrentRatio:  floatVal(m, "currentRatioQuarterly"),
		QuickRatio:    floatVal(m, "quickRatioQuarterly"),
		DividendYld:   floatVal(m, "dividendYieldIndicatedAnnual"),
		PayoutRatio:   floatVal(m, "payoutRatioTTM"),
		Beta:          floatVal(m, "beta"),
		PerfYTD:       floatVal(m, "yearToDatePriceReturnDaily"),
		PerfYear:      floatVal(m, "52WeekPriceReturnDaily"),
	}, nil
}

// floatVal pulls a numeric metric out of the mixed-type payload.
func floatVal(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

type quoteResponse struct {
	Current   float64 `json:"c"`
	Timestamp int64   `json:"t"`
}

// Quote returns the latest trade price, or (nil, nil) when Finnhub has no
// data for the symbol (all-zero payload).
func (c *Client) Quote(ctx context.Context, ticker string) (*models.Quote, error) {
	var resp quoteResponse
	if err := c.getJSON(ctx, "/quote", map[string][]string{"symbol": {ticker}}, &resp); err != nil {
		return nil, err
	}
	if resp.Current == 0 && resp.Timestamp == 0 {
		return nil, nil
	}
	return &models.Quote{Price: resp.Current}, nil
}

type candleResponse struct {
	Status string    `json:"s"`
	Closes []float64 `json:"c"`
}

// DailyCloses returns up to lookbackDays of daily closes, oldest first.
func (c *Client) DailyCloses(ctx context.Context, ticker string, lookbackDays int) ([]float64, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -lookbackDays)

	var resp candleResponse
	params := map[string][]string{
		"symbol":     {ticker},
		"resolution": {"D"},
		"from":       {fmt.Sprintf("%d", from.Unix())},
		"to":         {fmt.Sprintf("%d", to.Unix())},
	}
	if err := c.getJSON(ctx, "/stock/candle", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, nil
	}
	return resp.Closes, nil
}

type newsItem struct {
	Headline string `json:"headline"`
	Datetime int64  `json:"datetime"`
}

// CompanyNews returns recent headline strings, newest first as upstream
// delivers them.
func (c *Client) CompanyNews(ctx context.Context, ticker string, since time.Time) ([]string, error) {
	var items []newsItem
	params := map[string][]string{
		"symbol": {ticker},
		"from":   {since.Format("2006-01-02")},
		"to":     {time.Now().Format("2006-01-02")},
	}
	if err := c.getJSON(ctx, "/company-news", params, &items); err != nil {
		return nil, err
	}

	headlines := make([]string, 0, len(items))
	for _, it := range items {
		if h := strings.TrimSpace(it.Headline); h != "" {
			headlines = append(headlines, h)
		}
	}
	return headlines, nil
}
