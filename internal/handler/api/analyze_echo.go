package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	models "github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	"github.com/jagjothbhullar/uncle-warren-says/internal/usecase"
	pkgcache "github.com/jagjothbhullar/uncle-warren-says/pkg/cache"
	xhttp "github.com/jagjothbhullar/uncle-warren-says/pkg/http"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

// AnalyzeEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
// Analysis responses are cached as marshaled JSON keyed by the resolved
// ticker, so repeated lookups for the same stock skip the whole pipeline.
type AnalyzeEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	picker   *usecase.DailyPicker
	cache    pkgcache.Service
	cacheTTL time.Duration
}

func NewAnalyzeEchoHandler(
	logger *xlogger.Logger,
	analyzer *usecase.Analyzer,
	picker *usecase.DailyPicker,
	cache pkgcache.Service,
	cacheTTL time.Duration,
) *AnalyzeEchoHandler {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AnalyzeEchoHandler{
		logger:   logger,
		analyzer: analyzer,
		picker:   picker,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (h *AnalyzeEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analyze/:query", h.Analyze)
	g.GET("/daily", h.Daily)
	e.GET("/health", h.Health)
}

func (h *AnalyzeEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if unescaped, err := url.PathUnescape(req.Query); err == nil {
		req.Query = unescaped
	}

	ctx := c.Request().Context()
	ticker := h.analyzer.Resolve(ctx, req.Query)
	key := fmt.Sprintf("analysis:%s:%t", ticker, req.Extended)

	if cached, ok := h.cachedResponse(ctx, key); ok {
		return c.JSONBlob(http.StatusOK, cached)
	}

	res, err := h.analyzer.AnalyzeTicker(ctx, ticker, req.Extended)
	if err != nil {
		if errors.Is(err, usecase.ErrStockNotFound) {
			// Legacy contract: unknown stocks are a 200 with an error body
			return c.JSON(http.StatusOK, map[string]interface{}{
				"error":   true,
				"message": fmt.Sprintf("Could not find stock %q. Try a ticker symbol like AAPL.", req.Query),
			})
		}
		h.logger.Error("analyze usecase error", xlogger.String("query", req.Query), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	h.storeResponse(ctx, key, res)
	return c.JSON(http.StatusOK, res)
}

func (h *AnalyzeEchoHandler) Daily(c echo.Context) error {
	ctx := c.Request().Context()
	key := "analysis:daily"

	if cached, ok := h.cachedResponse(ctx, key); ok {
		return c.JSONBlob(http.StatusOK, cached)
	}

	res, err := h.picker.Pick(ctx)
	if err != nil {
		h.logger.Error("daily pick error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	h.storeResponse(ctx, key, res)
	return c.JSON(http.StatusOK, res)
}

func (h *AnalyzeEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AnalyzeEchoHandler) cachedResponse(ctx context.Context, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	var payload string
	if err := h.cache.Get(ctx, key, &payload); err != nil {
		if !errors.Is(err, pkgcache.ErrCacheMiss) {
			h.logger.Warn("response cache read failed", xlogger.String("key", key), xlogger.Error(err))
		}
		return nil, false
	}
	return []byte(payload), true
}

func (h *AnalyzeEchoHandler) storeResponse(ctx context.Context, key string, res *models.AnalysisResult) {
	if h.cache == nil {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, string(payload), h.cacheTTL); err != nil {
		h.logger.Warn("response cache write failed", xlogger.String("key", key), xlogger.Error(err))
	}
}
