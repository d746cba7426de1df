package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/repository"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

// tickerPattern matches ticker-shaped input: 1-5 uppercase letters with an
// optional single-letter share class (BRK.B).
var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z])?$`)

// aliasTable maps common company names to tickers. Static configuration,
// never fetched.
var aliasTable = map[string]string{
	"TESLA":            "TSLA",
	"APPLE":            "AAPL",
	"MICROSOFT":        "MSFT",
	"GOOGLE":           "GOOGL",
	"ALPHABET":         "GOOGL",
	"AMAZON":           "AMZN",
	"META":             "META",
	"FACEBOOK":         "META",
	"NVIDIA":           "NVDA",
	"NETFLIX":          "NFLX",
	"BERKSHIRE":        "BRK.B",
	"COCA COLA":        "KO",
	"COCA-COLA":        "KO",
	"COKE":             "KO",
	"JOHNSON":          "JNJ",
	"VISA":             "V",
	"MASTERCARD":       "MA",
	"WALMART":          "WMT",
	"DISNEY":           "DIS",
	"MCDONALDS":        "MCD",
	"COSTCO":           "COST",
	"PROCTER":          "PG",
	"BANK OF AMERICA":  "BAC",
	"AMERICAN EXPRESS": "AXP",
	"MOODYS":           "MCO",
	"UNITEDHEALTH":     "UNH",
}

// Resolver maps free-form input (ticker, $TICKER, or company name) to a
// canonical ticker symbol. It never fails: an unresolvable query falls
// through as a best-effort guess and the normalizer reports not-found.
type Resolver struct {
	search   repository.SymbolSearcher
	profiles repository.ProfileSource
	log      *xlogger.Logger
}

func NewResolver(search repository.SymbolSearcher, profiles repository.ProfileSource, log *xlogger.Logger) *Resolver {
	return &Resolver{search: search, profiles: profiles, log: log.With("resolver")}
}

// Resolve applies the resolution order: alias table, ticker-shaped
// validation, fuzzy search, verbatim fallback.
func (r *Resolver) Resolve(ctx context.Context, query string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(query), "$")))

	if ticker, ok := aliasTable[cleaned]; ok {
		return ticker
	}

	if tickerPattern.MatchString(cleaned) {
		profile, err := r.profiles.Profile(ctx, cleaned)
		if err != nil {
			r.log.Warn("ticker validation lookup failed", xlogger.String("ticker", cleaned), xlogger.Error(err))
		}
		if profile != nil {
			return cleaned
		}
	}

	if symbol := r.fuzzySearch(ctx, cleaned); symbol != "" {
		return symbol
	}

	return strings.ReplaceAll(cleaned, " ", "")
}

// fuzzySearch ranks candidates: common stock on a primary listing (no
// suffix in the symbol) first, any equity second, first raw result last.
func (r *Resolver) fuzzySearch(ctx context.Context, query string) string {
	candidates, err := r.search.SearchSymbols(ctx, query)
	if err != nil {
		r.log.Warn("symbol search failed", xlogger.String("query", query), xlogger.Error(err))
		return ""
	}
	if len(candidates) == 0 {
		return ""
	}

	for _, c := range candidates {
		if isCommonStock(c.Type) && !strings.Contains(c.Symbol, ".") {
			return c.Symbol
		}
	}
	for _, c := range candidates {
		if isCommonStock(c.Type) {
			return c.Symbol
		}
	}
	return candidates[0].Symbol
}

func isCommonStock(typ string) bool {
	t := strings.ToLower(typ)
	return strings.Contains(t, "common stock") || strings.Contains(t, "equity")
}
