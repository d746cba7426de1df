//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/jagjothbhullar/uncle-warren-says/pkg/config"
	"github.com/jagjothbhullar/uncle-warren-says/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient infrastructure
		ProvideLogger,
		ProvideMetrics,
		ProvideDataCache,
		ProvideResponseCache,

		// Market data providers
		ProvideRateLimiter,
		ProvideFinnhubClient,
		ProvideYahooClient,
		ProvideFinvizClient,

		// Use cases
		ProvideResolver,
		ProvideNormalizer,
		ProvideHistoryService,
		ProvideAnalyzer,
		ProvideDailyPicker,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
