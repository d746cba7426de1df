package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	xhttp "github.com/jagjothbhullar/uncle-warren-says/pkg/http"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client pulls daily close series from the Yahoo chart API. It is the
// secondary history source, used when the primary provider yields fewer
// than two usable points.
type Client struct {
	baseURL string
	client  *xhttp.Client
	log     *xlogger.Logger
}

func New(baseURL string, timeout time.Duration, log *xlogger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:     log.With("yahoo"),
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// DailyCloses fetches up to lookbackDays of daily closes, oldest first.
// Sessions Yahoo reports as null are skipped.
func (c *Client) DailyCloses(ctx context.Context, ticker string, lookbackDays int) ([]float64, error) {
	rng := "1y"
	switch {
	case lookbackDays <= 95:
		rng = "3mo"
	case lookbackDays <= 190:
		rng = "6mo"
	}

	var resp chartResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v8/finance/chart/" + url.PathEscape(ticker),
		QueryParams: map[string][]string{
			"range":    {rng},
			"interval": {"1d"},
		},
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}

	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	raw := resp.Chart.Result[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, p := range raw {
		if p != nil {
			closes = append(closes, *p)
		}
	}
	return closes, nil
}
