package finviz

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	xhttp "github.com/jagjothbhullar/uncle-warren-says/pkg/http"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

const defaultBaseURL = "https://finviz.com"

// The quote page renders the fundamentals snapshot as alternating
// label/value table cells.
var (
	snapshotCell = regexp.MustCompile(`<td[^>]*class="snapshot-td2[^"]*"[^>]*>(?:<b>)?(?:<a[^>]*>)?(?:<span[^>]*>)?([^<]*)`)
	tagStripper  = regexp.MustCompile(`<[^>]+>`)
)

// Client is the legacy fundamentals source: it scrapes the quote page's
// snapshot table and feeds it through the string-metric adapter. Wired as
// the fallback behind the typed provider to fill ownership and
// short-interest fields that provider does not carry.
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
		log:     log.With("finviz"),
	}
}

// Fetch retrieves and parses the snapshot table for a ticker.
func (c *Client) Fetch(ctx context.Context, ticker string) (Snapshot, error) {
	var body []byte
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/quote.ashx",
		QueryParams: map[string][]string{
			"t": {strings.ToUpper(ticker)},
		},
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("finviz quote %s: %w", ticker, err)
	}

	cells := snapshotCell.FindAllStringSubmatch(string(body), -1)
	if len(cells) < 2 {
		return nil, nil
	}

	snap := make(Snapshot, len(cells)/2)
	for i := 0; i+1 < len(cells); i += 2 {
		key := strings.TrimSpace(tagStripper.ReplaceAllString(cells[i][1], ""))
		val := strings.TrimSpace(tagStripper.ReplaceAllString(cells[i+1][1], ""))
		if key != "" {
			snap[key] = val
		}
	}
	return snap, nil
}

// Fundamentals implements the fundamentals-source contract over the
// scraped snapshot.
func (c *Client) Fundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error) {
	snap, err := c.Fetch(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}
	return snap.Fundamentals(), nil
}
