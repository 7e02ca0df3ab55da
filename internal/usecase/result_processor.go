package usecase

import (
	"context"
	"fmt"
	"time"

	"SigPull/internal/domain/models"
	drepo "SigPull/internal/domain/repository"
)

// ResultProcessor routes a finished scan cycle to the configured backend.
type ResultProcessor struct {
	kafka   drepo.HistorySink
	store   drepo.HistorySink
	file    drepo.HistorySink
	metrics drepo.Metrics
	backend string
}

// NewResultProcessor creates a new ResultProcessor instance. Sinks not used
// by the configured backend may be nil.
func NewResultProcessor(
	kafka drepo.HistorySink,
	store drepo.HistorySink,
	file drepo.HistorySink,
	metrics drepo.Metrics,
	backend string,
) *ResultProcessor {
	return &ResultProcessor{
		kafka:   kafka,
		store:   store,
		file:    file,
		metrics: metrics,
		backend: backend,
	}
}

// Process persists one scan result to the configured backend.
func (p *ResultProcessor) Process(ctx context.Context, r *models.ScanResult) error {
	if r == nil {
		return fmt.Errorf("scan result is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.kafka.Store(ctx, r)
	case "clickhouse":
		err = p.store.Store(ctx, r)
	case "file":
		err = p.file.Store(ctx, r)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process result: %w", err)
	}

	for _, a := range r.Symbols {
		p.metrics.RecordResultSent(p.backend, a.Symbol)
		p.metrics.RecordDecision(a.Symbol, string(a.FinalSignal.Decision))
		if a.Price != nil {
			p.metrics.RecordLastPrice(a.Symbol, *a.Price)
		}
	}
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// Sink returns the active backend's sink, for lifecycle calls.
func (p *ResultProcessor) Sink() drepo.HistorySink {
	switch p.backend {
	case "kafka":
		return p.kafka
	case "clickhouse":
		return p.store
	case "file":
		return p.file
	default:
		return nil
	}
}

// Close closes whatever sinks were wired.
func (p *ResultProcessor) Close() {
	for _, s := range []drepo.HistorySink{p.kafka, p.store, p.file} {
		if s != nil {
			_ = s.Close()
		}
	}
}
