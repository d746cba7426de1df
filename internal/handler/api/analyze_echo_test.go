package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	pkgcache "github.com/jagjothbhullar/uncle-warren-says/pkg/cache"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"

	"github.com/jagjothbhullar/uncle-warren-says/internal/usecase"
)

func f(v float64) *float64 { return &v }

// fakeProvider implements every market data interface from fixed maps.
type fakeProvider struct {
	profiles     map[string]*models.CompanyProfile
	fundamentals map[string]*models.Fundamentals
	fundErr      error
}

func (p *fakeProvider) SearchSymbols(context.Context, string) ([]models.SymbolCandidate, error) {
	return nil, nil
}

func (p *fakeProvider) Profile(_ context.Context, ticker string) (*models.CompanyProfile, error) {
	return p.profiles[ticker], nil
}

func (p *fakeProvider) Fundamentals(_ context.Context, ticker string) (*models.Fundamentals, error) {
	if p.fundErr != nil {
		return nil, p.fundErr
	}
	return p.fundamentals[ticker], nil
}

func (p *fakeProvider) Quote(context.Context, string) (*models.Quote, error) { return nil, nil }

func (p *fakeProvider) DailyCloses(context.Context, string, int) ([]float64, error) {
	return nil, nil
}

func (p *fakeProvider) CompanyNews(context.Context, string, time.Time) ([]string, error) {
	return nil, nil
}

type mapCache struct{ m map[string]any }

func (c *mapCache) Get(key string) (any, bool) { v, ok := c.m[key]; return v, ok }
func (c *mapCache) Set(key string, v any)      { c.m[key] = v }

type noMetrics struct{}

func (noMetrics) RecordAnalysis(string)              {}
func (noMetrics) RecordCache(string, bool)           {}
func (noMetrics) RecordProviderError(string)         {}
func (noMetrics) RecordStageLatency(string, float64) {}

func newTestHandler(p *fakeProvider) *AnalyzeEchoHandler {
	log := xlogger.Nop()
	dataCache := &mapCache{m: make(map[string]any)}
	resolver := usecase.NewResolver(p, p, log)
	normalizer := usecase.NewNormalizer(p, p, nil, p, dataCache, noMetrics{}, log)
	history := usecase.NewHistoryService(p, nil, dataCache, noMetrics{}, log)
	analyzer := usecase.NewAnalyzer(resolver, normalizer, history, p, 0, 0, noMetrics{}, log)
	picker := usecase.NewDailyPicker(analyzer, log)

	respCache := pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(16))
	return NewAnalyzeEchoHandler(log, analyzer, picker, respCache, time.Minute)
}

func performRequest(h *AnalyzeEchoHandler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func koProvider() *fakeProvider {
	return &fakeProvider{
		profiles: map[string]*models.CompanyProfile{
			"KO": {Ticker: "KO", Name: "Coca-Cola Co", MarketCapMillions: 260_000},
		},
		fundamentals: map[string]*models.Fundamentals{
			"KO": {PE: f(12), ROE: f(40), ProfitMargin: f(22)},
		},
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestHandler(koProvider())
	rec := performRequest(h, "/api/analyze/coca-cola")

	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "KO", res.Ticker)
	assert.Equal(t, "Coca-Cola Co", res.Company)
	assert.NotZero(t, res.Score)
	assert.Empty(t, res.ExtendedAnalysis)
}

func TestAnalyzeEndpointExtended(t *testing.T) {
	h := newTestHandler(koProvider())
	rec := performRequest(h, "/api/analyze/KO?extended=true")

	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.ExtendedAnalysis)
}

func TestAnalyzeEndpointUnknownStock(t *testing.T) {
	h := newTestHandler(&fakeProvider{})
	rec := performRequest(h, "/api/analyze/NOPE")

	// legacy contract: error body, not an error status
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
	assert.Contains(t, body["message"], "NOPE")
}

func TestAnalyzeEndpointServesCachedResponse(t *testing.T) {
	p := koProvider()
	h := newTestHandler(p)

	first := performRequest(h, "/api/analyze/KO")
	require.Equal(t, http.StatusOK, first.Code)

	// upstream now fails; the cached response still answers
	p.fundErr = errors.New("provider down")
	second := performRequest(h, "/api/analyze/KO")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestDailyEndpoint(t *testing.T) {
	p := koProvider()
	// make the fallback resolvable so the walk always ends somewhere
	p.profiles["BRK.B"] = &models.CompanyProfile{Ticker: "BRK.B", Name: "Berkshire Hathaway", MarketCapMillions: 900_000}
	h := newTestHandler(p)

	rec := performRequest(h, "/api/daily")
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Ticker)
	assert.NotEmpty(t, res.Verdict)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(koProvider())
	rec := performRequest(h, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
