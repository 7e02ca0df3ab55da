package usecase

import (
	"time"

	"SigPull/internal/domain/models"
	"SigPull/internal/engine"
	"SigPull/internal/service/sessions"
)

// Analyzer binds the pure evaluation engine to the session calendar and a
// clock. Everything time-dependent is resolved here so the engine stays
// deterministic.
type Analyzer struct {
	sessions *sessions.Table
	now      func() time.Time
}

// AnalyzerOption configures Analyzer.
type AnalyzerOption func(*Analyzer)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) { a.now = now }
}

// NewAnalyzer creates an Analyzer over the given session table.
func NewAnalyzer(tbl *sessions.Table, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{sessions: tbl, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze evaluates one snapshot at the current time.
func (a *Analyzer) Analyze(symbol string, snap models.MarketSnapshot) models.SymbolAnalysis {
	return a.AnalyzeAt(symbol, snap, a.now())
}

// AnalyzeAt evaluates one snapshot at an explicit time. Stream and Kafka
// ingestion use the event timestamp rather than arrival time.
func (a *Analyzer) AnalyzeAt(symbol string, snap models.MarketSnapshot, at time.Time) models.SymbolAnalysis {
	at = at.UTC()
	ectx := engine.Context{
		Time:           at,
		ActiveSessions: a.sessions.Active(at),
		MarketOpen:     a.sessions.IsOpen(at),
	}
	return engine.Analyze(symbol, snap, ectx)
}

// Summarize folds a batch of analyses into the cycle summary.
func (a *Analyzer) Summarize(analyses []models.SymbolAnalysis, at time.Time) models.AggregateSummary {
	at = at.UTC()
	return engine.BuildSummary(analyses, at, a.sessions.Active(at))
}
