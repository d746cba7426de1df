package usecase

import (
	"context"
	"time"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

func fptr(v float64) *float64 { return &v }

// stubProvider implements the full provider surface from canned data.
type stubProvider struct {
	candidates   []models.SymbolCandidate
	profiles     map[string]*models.CompanyProfile
	fundamentals map[string]*models.Fundamentals
	quotes       map[string]*models.Quote
	closes       map[string][]float64
	headlines    map[string][]string

	searchCalls  int
	profileCalls int

	searchErr  error
	profileErr error
	fundErr    error
	quoteErr   error
	closesErr  error
	newsErr    error
}

func (s *stubProvider) SearchSymbols(_ context.Context, _ string) ([]models.SymbolCandidate, error) {
	s.searchCalls++
	return s.candidates, s.searchErr
}

func (s *stubProvider) Profile(_ context.Context, ticker string) (*models.CompanyProfile, error) {
	s.profileCalls++
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profiles[ticker], nil
}

func (s *stubProvider) Fundamentals(_ context.Context, ticker string) (*models.Fundamentals, error) {
	if s.fundErr != nil {
		return nil, s.fundErr
	}
	return s.fundamentals[ticker], nil
}

func (s *stubProvider) Quote(_ context.Context, ticker string) (*models.Quote, error) {
	if s.quoteErr != nil {
		return nil, s.quoteErr
	}
	return s.quotes[ticker], nil
}

func (s *stubProvider) DailyCloses(_ context.Context, ticker string, _ int) ([]float64, error) {
	if s.closesErr != nil {
		return nil, s.closesErr
	}
	return s.closes[ticker], nil
}

func (s *stubProvider) CompanyNews(_ context.Context, ticker string, _ time.Time) ([]string, error) {
	if s.newsErr != nil {
		return nil, s.newsErr
	}
	return s.headlines[ticker], nil
}

// memCache is a TTL-less pipeline cache for tests.
type memCache struct {
	m map[string]any
}

func newMemCache() *memCache { return &memCache{m: make(map[string]any)} }

func (c *memCache) Get(key string) (any, bool) {
	v, ok := c.m[key]
	return v, ok
}

func (c *memCache) Set(key string, value any) { c.m[key] = value }

// nopMetrics discards every recording.
type nopMetrics struct{}

func (nopMetrics) RecordAnalysis(string)             {}
func (nopMetrics) RecordCache(string, bool)          {}
func (nopMetrics) RecordProviderError(string)        {}
func (nopMetrics) RecordStageLatency(string, float64) {}

func newTestAnalyzer(p *stubProvider) *Analyzer {
	log := xlogger.Nop()
	cache := newMemCache()
	resolver := NewResolver(p, p, log)
	normalizer := NewNormalizer(p, p, nil, p, cache, nopMetrics{}, log)
	history := NewHistoryService(p, nil, cache, nopMetrics{}, log)
	return NewAnalyzer(resolver, normalizer, history, p, 0, 0, nopMetrics{}, log)
}
