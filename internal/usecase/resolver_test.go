package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

func newTestResolver(p *stubProvider) *Resolver {
	return NewResolver(p, p, xlogger.Nop())
}

func TestResolveAliasSkipsNetwork(t *testing.T) {
	p := &stubProvider{}
	r := newTestResolver(p)

	assert.Equal(t, "TSLA", r.Resolve(context.Background(), "tesla"))
	assert.Equal(t, "BRK.B", r.Resolve(context.Background(), "  Berkshire "))
	assert.Equal(t, "KO", r.Resolve(context.Background(), "coca cola"))

	assert.Zero(t, p.searchCalls)
	assert.Zero(t, p.profileCalls)
}

func TestResolveDollarPrefix(t *testing.T) {
	p := &stubProvider{}
	r := newTestResolver(p)
	assert.Equal(t, "TSLA", r.Resolve(context.Background(), "$tesla"))
}

func TestResolveTickerShapedValidated(t *testing.T) {
	p := &stubProvider{profiles: map[string]*models.CompanyProfile{
		"AAPL": {Ticker: "AAPL", Name: "Apple Inc"},
	}}
	r := newTestResolver(p)

	assert.Equal(t, "AAPL", r.Resolve(context.Background(), "aapl"))
	assert.Equal(t, 1, p.profileCalls)
	assert.Zero(t, p.searchCalls)
}

func TestResolveTickerShapedUnknownFallsToSearch(t *testing.T) {
	// ticker-shaped but no profile: search decides
	p := &stubProvider{candidates: []models.SymbolCandidate{
		{Symbol: "ZZZQ", Type: "Common Stock"},
	}}
	r := newTestResolver(p)

	assert.Equal(t, "ZZZQ", r.Resolve(context.Background(), "zzzq"))
	assert.Equal(t, 1, p.profileCalls)
	assert.Equal(t, 1, p.searchCalls)
}

func TestResolveFuzzyRanking(t *testing.T) {
	p := &stubProvider{candidates: []models.SymbolCandidate{
		{Symbol: "SHOP.TO", Type: "Common Stock"},
		{Symbol: "SHOP", Type: "Common Stock"},
		{Symbol: "SHOPW", Type: "Warrant"},
	}}
	r := newTestResolver(p)

	// primary-listing common stock wins over the earlier dotted listing
	assert.Equal(t, "SHOP", r.Resolve(context.Background(), "shopify"))
}

func TestResolveFuzzyFallsBackToFirstCandidate(t *testing.T) {
	p := &stubProvider{candidates: []models.SymbolCandidate{
		{Symbol: "ABC-WT", Type: "Warrant"},
		{Symbol: "ABC-U", Type: "Unit"},
	}}
	r := newTestResolver(p)
	assert.Equal(t, "ABC-WT", r.Resolve(context.Background(), "abc corp"))
}

func TestResolveVerbatimFallback(t *testing.T) {
	p := &stubProvider{searchErr: errors.New("search down")}
	r := newTestResolver(p)

	// nothing matched anywhere: best-effort guess with spaces stripped
	assert.Equal(t, "SOMEUNKNOWNCO", r.Resolve(context.Background(), "some unknown co"))
}
