//go:build wireinject
// +build wireinject

package di

import (
	"SignalDesk/pkg/config"
	"SignalDesk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideMarketData,
		ProvideQuoteStream,
		ProvideDecisionStore,
		ProvideTradeLedger,
		ProvideAlertPublisher,

		// Strategy and simulation
		ProvideSelector,
		ProvideEngine,

		// Use cases
		ProvideScannerUseCase,
		ProvideBacktestUseCase,
		ProvideAutomationUseCase,

		// HTTP surface
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
