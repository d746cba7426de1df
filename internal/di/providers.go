package di

import (
	"fmt"
	"time"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/repository"
	"github.com/jagjothbhullar/uncle-warren-says/internal/handler/api"
	icache "github.com/jagjothbhullar/uncle-warren-says/internal/service/cache"
	"github.com/jagjothbhullar/uncle-warren-says/internal/service/finnhub"
	"github.com/jagjothbhullar/uncle-warren-says/internal/service/finviz"
	"github.com/jagjothbhullar/uncle-warren-says/internal/service/ratelimit"
	"github.com/jagjothbhullar/uncle-warren-says/internal/service/yahoo"
	"github.com/jagjothbhullar/uncle-warren-says/internal/usecase"
	pkgcache "github.com/jagjothbhullar/uncle-warren-says/pkg/cache"
	"github.com/jagjothbhullar/uncle-warren-says/pkg/config"
	xhttp "github.com/jagjothbhullar/uncle-warren-says/pkg/http"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
	"github.com/jagjothbhullar/uncle-warren-says/pkg/metrics"
	"github.com/jagjothbhullar/uncle-warren-says/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Logging.Level,
		Format: format,
		Output: output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideDataCache creates the TTL cache for normalized provider data.
func ProvideDataCache(cfg *config.Config) repository.Cache {
	return icache.NewTTLCache(cfg.Cache.TTL)
}

// ProvideResponseCache creates the HTTP response cache. With Redis enabled
// it is layered (memory in front of Redis), otherwise memory only.
func ProvideResponseCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}

	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("response cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc), nil
}

// ProvideRateLimiter creates the token bucket guarding Finnhub's request quota.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	rpm := float64(cfg.Finnhub.RequestsPerMinute)
	return ratelimit.New(rpm, rpm/60)
}

// ProvideFinnhubClient creates the primary market data client.
func ProvideFinnhubClient(cfg *config.Config, limiter *ratelimit.Limiter, log *xlogger.Logger) *finnhub.Client {
	return finnhub.New(cfg.Finnhub.APIKey, cfg.Finnhub.BaseURL, cfg.Finnhub.Timeout, limiter, log)
}

// ProvideYahooClient creates the fallback price history client, nil when disabled.
func ProvideYahooClient(cfg *config.Config, log *xlogger.Logger) *yahoo.Client {
	if !cfg.Yahoo.Enabled {
		return nil
	}
	return yahoo.New(cfg.Yahoo.BaseURL, cfg.Yahoo.Timeout, log)
}

// ProvideFinvizClient creates the legacy fundamentals scraper, nil when disabled.
func ProvideFinvizClient(cfg *config.Config, log *xlogger.Logger) *finviz.Client {
	if !cfg.Finviz.Enabled {
		return nil
	}
	return finviz.New(cfg.Finviz.BaseURL, cfg.Finviz.Timeout, log)
}

// ProvideResolver creates the query resolver.
func ProvideResolver(fh *finnhub.Client, log *xlogger.Logger) *usecase.Resolver {
	return usecase.NewResolver(fh, fh, log)
}

// ProvideNormalizer creates the metrics normalizer.
func ProvideNormalizer(
	fh *finnhub.Client,
	fv *finviz.Client,
	cache repository.Cache,
	m repository.Metrics,
	log *xlogger.Logger,
) *usecase.Normalizer {
	var legacy repository.FundamentalsSource
	if fv != nil {
		legacy = fv
	}
	return usecase.NewNormalizer(fh, fh, legacy, fh, cache, m, log)
}

// ProvideHistoryService creates the price history service.
func ProvideHistoryService(
	fh *finnhub.Client,
	yh *yahoo.Client,
	cache repository.Cache,
	m repository.Metrics,
	log *xlogger.Logger,
) *usecase.HistoryService {
	var secondary repository.HistorySource
	if yh != nil {
		secondary = yh
	}
	return usecase.NewHistoryService(fh, secondary, cache, m, log)
}

// ProvideAnalyzer creates the analysis pipeline.
func ProvideAnalyzer(
	cfg *config.Config,
	resolver *usecase.Resolver,
	normalizer *usecase.Normalizer,
	history *usecase.HistoryService,
	fh *finnhub.Client,
	m repository.Metrics,
	log *xlogger.Logger,
) *usecase.Analyzer {
	lookback := time.Duration(cfg.News.LookbackDays) * 24 * time.Hour
	return usecase.NewAnalyzer(resolver, normalizer, history, fh, lookback, cfg.News.MaxHeadlines, m, log)
}

// ProvideDailyPicker creates the stock of the day selector.
func ProvideDailyPicker(analyzer *usecase.Analyzer, log *xlogger.Logger) *usecase.DailyPicker {
	return usecase.NewDailyPicker(analyzer, log)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	cfg *config.Config,
	analyzer *usecase.Analyzer,
	picker *usecase.DailyPicker,
	respCache pkgcache.Service,
	log *xlogger.Logger,
) xhttp.Handler {
	return api.NewAnalyzeEchoHandler(log, analyzer, picker, respCache, cfg.Cache.TTL)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *xlogger.Logger,
	handler xhttp.Handler,
	respCache pkgcache.Service,
) *server.App {
	return server.New(cfg, log, handler, respCache)
}
