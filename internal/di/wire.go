//go:build wireinject
// +build wireinject

package di

import (
	"SigPull/pkg/config"
	"SigPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Domain services
		ProvideSessionTable,
		ProvideAnalyzer,

		// Backend infrastructure
		ProvideBackend,
		ProvideSnapshotSource,

		// Use cases
		ProvideResultProcessor,
		ProvideScanRunner,
		ProvideSnapshotCollector,
		ProvideKafkaConsumer,
		ProvideKafkaSnapshotsHandler,
		ProvideAnalysisQuery,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
