package usecase

import (
	"context"
	"fmt"
	"time"

	"SigPull/internal/domain/models"
	drepo "SigPull/internal/domain/repository"
	pkgcache "SigPull/pkg/cache"
)

// EventProcessor analyzes one streamed snapshot event and refreshes the
// latest-analysis cache. Stream ingestion keeps the cache warm between scan
// cycles; durable history stays with the scan loop.
type EventProcessor struct {
	analyzer *Analyzer
	cache    pkgcache.Service
	metrics  drepo.Metrics
	cacheTTL time.Duration
}

// NewEventProcessor creates a new EventProcessor instance.
func NewEventProcessor(analyzer *Analyzer, cache pkgcache.Service, metrics drepo.Metrics, cacheTTL time.Duration) *EventProcessor {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &EventProcessor{analyzer: analyzer, cache: cache, metrics: metrics, cacheTTL: cacheTTL}
}

// Process analyzes the event at its own timestamp and caches the result.
func (p *EventProcessor) Process(ctx context.Context, ev *models.SnapshotEvent) error {
	if ev == nil {
		return fmt.Errorf("event is nil")
	}
	at := time.Unix(ev.Timestamp, 0).UTC()
	p.metrics.RecordLatency("ingest_e2e_seconds", time.Since(at).Seconds())

	a := p.analyzer.AnalyzeAt(ev.Symbol, ev.Fields, at)

	if p.cache != nil {
		if err := p.cache.Set(ctx, cacheKeyAnalysis+a.Symbol, a, p.cacheTTL); err != nil {
			p.metrics.RecordError("cache_set")
			return fmt.Errorf("cache analysis %s: %w", a.Symbol, err)
		}
	}
	p.metrics.RecordDecision(a.Symbol, string(a.FinalSignal.Decision))
	if a.Price != nil {
		p.metrics.RecordLastPrice(a.Symbol, *a.Price)
	}
	return nil
}
