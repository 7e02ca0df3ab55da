package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SigPull/internal/domain/models"
	drepo "SigPull/internal/domain/repository"
	pkgcache "SigPull/pkg/cache"
	xhttp "SigPull/pkg/http"
	xutil "SigPull/pkg/util"
)

// AnalysisQuery serves the read side of the API: latest cached analyses,
// the batch summary, ad-hoc analysis, and persisted history.
type AnalysisQuery struct {
	analyzer *Analyzer
	cache    pkgcache.Service
	history  drepo.HistoryQuerier
}

// NewAnalysisQuery creates a new AnalysisQuery instance. history may be nil
// when the configured backend cannot be queried (kafka, file).
func NewAnalysisQuery(analyzer *Analyzer, cache pkgcache.Service, history drepo.HistoryQuerier) *AnalysisQuery {
	return &AnalysisQuery{analyzer: analyzer, cache: cache, history: history}
}

// Latest returns the most recent cached analysis for symbol.
func (q *AnalysisQuery) Latest(ctx context.Context, symbol string) (*models.SymbolAnalysis, error) {
	var a models.SymbolAnalysis
	err := q.cache.Get(ctx, cacheKeyAnalysis+symbol, &a)
	if err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, xhttp.NotFoundErrorf("no analysis for symbol %s", symbol)
		}
		return nil, fmt.Errorf("latest %s: %w", symbol, err)
	}
	return &a, nil
}

// Summary returns the most recent cached batch summary.
func (q *AnalysisQuery) Summary(ctx context.Context) (*models.AggregateSummary, error) {
	var s models.AggregateSummary
	err := q.cache.Get(ctx, cacheKeySummary, &s)
	if err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, xhttp.NotFoundError("no scan cycle has completed yet")
		}
		return nil, fmt.Errorf("summary: %w", err)
	}
	return &s, nil
}

// Analyze evaluates a caller-supplied snapshot synchronously. Nothing is
// cached or persisted.
func (q *AnalysisQuery) Analyze(symbol string, snapshot map[string]interface{}) models.SymbolAnalysis {
	return q.analyzer.Analyze(symbol, models.MarketSnapshot(snapshot))
}

// History returns persisted analyses for symbol, newest first. The from/to
// strings accept RFC 3339 or unix seconds; empty means unbounded.
func (q *AnalysisQuery) History(ctx context.Context, symbol, fromStr, toStr string, limit int) ([]models.SymbolAnalysis, error) {
	if q.history == nil {
		return nil, xhttp.BadRequestError("history queries require the clickhouse backend")
	}

	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, xhttp.BadRequestError(err.Error())
	}
	out, err := q.history.QueryAnalyses(ctx, symbol, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	return out, nil
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Unix(0, 0).UTC()
	to := time.Now().UTC()
	if fromStr != "" {
		t, ok := xutil.ParseTime(fromStr)
		if !ok {
			return from, to, fmt.Errorf("invalid from: %q", fromStr)
		}
		from = t
	}
	if toStr != "" {
		t, ok := xutil.ParseTime(toStr)
		if !ok {
			return from, to, fmt.Errorf("invalid to: %q", toStr)
		}
		to = t
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("to precedes from")
	}
	return from, to, nil
}
