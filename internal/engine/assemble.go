package engine

import (
	"time"

	"SigPull/internal/domain/models"
)

// Context carries the externally supplied facts attached to every analysis.
// Injecting it keeps the engine free of clocks and calendar rules.
type Context struct {
	Time           time.Time
	ActiveSessions []string
	MarketOpen     bool
}

// Analyze composes the evaluators, dominance scorer and pivot engine into one
// SymbolAnalysis. Construction is two-pass: base fields first, then the final
// signal, which depends on the sibling fields already being populated.
func Analyze(symbol string, snap models.MarketSnapshot, ectx Context) models.SymbolAnalysis {
	price := snap.Num(models.FieldClose)

	a := models.SymbolAnalysis{
		Symbol:         symbol,
		Time:           ectx.Time,
		Price:          price,
		Readings:       EvaluateAll(snap),
		Dominance:      ScoreDominance(snap),
		Pivots:         ComputePivots(snap, price),
		MarketOpen:     ectx.MarketOpen,
		ActiveSessions: ectx.ActiveSessions,
	}
	a.FinalSignal = AggregateSignal(a.Readings, a.Pivots.Recommendation)
	return a
}
