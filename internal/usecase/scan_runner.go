package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SigPull/internal/domain/models"
	drepo "SigPull/internal/domain/repository"
	pkgcache "SigPull/pkg/cache"
	"SigPull/pkg/logger"
)

const (
	cacheKeyAnalysis = "analysis:"
	cacheKeySummary  = "summary"
)

// ScanRunner drives the periodic scan cycle: fetch a snapshot per symbol,
// analyze, summarize, cache the latest records, and hand the cycle to the
// result processor.
type ScanRunner struct {
	source   drepo.SnapshotSource
	analyzer *Analyzer
	proc     *ResultProcessor
	cache    pkgcache.Service
	metrics  drepo.Metrics
	log      *logger.Logger

	symbols  []string
	interval time.Duration
	cacheTTL time.Duration

	stopCh  chan struct{}
	mu      sync.Mutex
	started bool
}

// NewScanRunner creates a new ScanRunner instance.
func NewScanRunner(
	source drepo.SnapshotSource,
	analyzer *Analyzer,
	proc *ResultProcessor,
	cache pkgcache.Service,
	metrics drepo.Metrics,
	log *logger.Logger,
	symbols []string,
	interval time.Duration,
) *ScanRunner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ScanRunner{
		source:   source,
		analyzer: analyzer,
		proc:     proc,
		cache:    cache,
		metrics:  metrics,
		log:      log,
		symbols:  symbols,
		interval: interval,
		cacheTTL: 3 * interval,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the scan loop. The first cycle runs immediately.
func (r *ScanRunner) Start(ctx context.Context) error {
	if len(r.symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = true
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.runCycle(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stopCh:
				return
			case <-ticker.C:
				r.runCycle(ctx)
			}
		}
	}()
	return nil
}

// Stop halts the scan loop.
func (r *ScanRunner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}
	r.started = false
	close(r.stopCh)
}

// RunOnce executes a single cycle synchronously and returns its result.
func (r *ScanRunner) RunOnce(ctx context.Context) (*models.ScanResult, error) {
	res := r.collect(ctx)
	if err := r.proc.Process(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

func (r *ScanRunner) runCycle(ctx context.Context) {
	start := time.Now()
	res := r.collect(ctx)
	if err := r.proc.Process(ctx, res); err != nil {
		r.log.Error("scan cycle persist failed", logger.Error(err))
	}
	r.metrics.RecordLatency("scan_cycle", time.Since(start).Seconds())
	r.log.Debug("scan cycle done",
		logger.Int("symbols", len(res.Symbols)),
		logger.Duration("took", time.Since(start)))
}

// collect fetches and analyzes all symbols in parallel, then summarizes.
// Symbols whose fetch fails are skipped for this cycle.
func (r *ScanRunner) collect(ctx context.Context) *models.ScanResult {
	type slot struct {
		analysis models.SymbolAnalysis
		ok       bool
	}
	slots := make([]slot, len(r.symbols))

	var wg sync.WaitGroup
	for i, sym := range r.symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			snap, err := r.source.Fetch(ctx, sym)
			if err != nil {
				r.metrics.RecordError("fetch")
				r.log.Warn("snapshot fetch failed",
					logger.String("symbol", sym), logger.Error(err))
				return
			}
			slots[i] = slot{analysis: r.analyzer.Analyze(sym, snap), ok: true}
		}(i, sym)
	}
	wg.Wait()

	analyses := make([]models.SymbolAnalysis, 0, len(slots))
	for _, s := range slots {
		if s.ok {
			analyses = append(analyses, s.analysis)
		}
	}

	now := r.analyzer.now().UTC()
	res := &models.ScanResult{
		Symbols: analyses,
		Summary: r.analyzer.Summarize(analyses, now),
	}
	r.cacheResult(ctx, res)
	return res
}

func (r *ScanRunner) cacheResult(ctx context.Context, res *models.ScanResult) {
	if r.cache == nil {
		return
	}
	values := make(map[string]interface{}, len(res.Symbols)+1)
	for i := range res.Symbols {
		values[cacheKeyAnalysis+res.Symbols[i].Symbol] = res.Symbols[i]
	}
	values[cacheKeySummary] = res.Summary
	if err := r.cache.MSet(ctx, values, r.cacheTTL); err != nil {
		r.metrics.RecordError("cache_set")
	}
}
