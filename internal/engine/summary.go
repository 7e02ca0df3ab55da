package engine

import (
	"time"

	"SigPull/internal/domain/models"
)

// BuildSummary folds one cycle's dominance scores into a batch-level view.
// It sums the DominanceScores, not the final signals, so the summary reflects
// raw-field bias rather than vote outcomes. The neutral residual absorbs
// rounding drift and is deliberately not clamped.
func BuildSummary(analyses []models.SymbolAnalysis, at time.Time, sessions []string) models.AggregateSummary {
	var sumBuy, sumSell float64
	for _, a := range analyses {
		sumBuy += a.Dominance.Buy
		sumSell += a.Dominance.Sell
	}

	var buyPct, sellPct float64
	if total := sumBuy + sumSell; total > 0 {
		buyPct = round2(sumBuy / total * 100)
		sellPct = round2(sumSell / total * 100)
	}

	return models.AggregateSummary{
		Time:           at,
		SymbolCount:    len(analyses),
		BuyPercent:     buyPct,
		SellPercent:    sellPct,
		NeutralPercent: round2(100 - buyPct - sellPct),
		ActiveSessions: sessions,
	}
}
