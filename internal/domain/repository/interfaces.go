package repository

import (
	"context"
	"time"

	"SigPull/internal/domain/models"
)

// SnapshotSource supplies one MarketSnapshot per symbol. Implementations own
// all network concerns (retries, rate limits, reconnects); the engine only
// sees the field map.
type SnapshotSource interface {
	Fetch(ctx context.Context, symbol string) (models.MarketSnapshot, error)
	Close() error
}

// SnapshotStream pushes live field updates for the configured symbols.
type SnapshotStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.SnapshotEvent, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// HistorySink accepts one ScanResult per cycle. Failures must not corrupt
// previously persisted history.
type HistorySink interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, r *models.ScanResult) error
	Health(ctx context.Context) error
	Close() error
}

// HistoryQuerier reads persisted analyses back for the API.
type HistoryQuerier interface {
	QueryAnalyses(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.SymbolAnalysis, error)
}

// Metrics records operational counters for the scan loop and sinks.
type Metrics interface {
	RecordResultSent(backend, symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordDecision(symbol, decision string)
	RecordLatency(op string, seconds float64)
}
