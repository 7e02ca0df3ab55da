package engine

import (
	"testing"
	"time"

	"SigPull/internal/domain/models"
)

func TestBuildSummaryBalancedBatch(t *testing.T) {
	batch := []models.SymbolAnalysis{
		{Symbol: "EURUSD", Dominance: models.DominanceScore{Buy: 50, Sell: 50}},
		{Symbol: "GBPUSD", Dominance: models.DominanceScore{Buy: 50, Sell: 50}},
		{Symbol: "USDJPY", Dominance: models.DominanceScore{Buy: 50, Sell: 50}},
	}
	at := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	s := BuildSummary(batch, at, []string{"london"})

	if s.BuyPercent != 50 || s.SellPercent != 50 || s.NeutralPercent != 0 {
		t.Fatalf("expected 50/50/0, got %v/%v/%v", s.BuyPercent, s.SellPercent, s.NeutralPercent)
	}
	if s.SymbolCount != 3 {
		t.Fatalf("expected 3 symbols, got %d", s.SymbolCount)
	}
	if !s.Time.Equal(at) || len(s.ActiveSessions) != 1 {
		t.Fatalf("timestamp/session facts not carried")
	}
}

func TestBuildSummarySkewedBatch(t *testing.T) {
	batch := []models.SymbolAnalysis{
		{Dominance: models.DominanceScore{Buy: 75, Sell: 25}},
		{Dominance: models.DominanceScore{Buy: 25, Sell: 75}},
		{Dominance: models.DominanceScore{Buy: 100, Sell: 0}},
	}
	s := BuildSummary(batch, time.Now(), nil)
	// sums: buy 200, sell 100, total 300
	if s.BuyPercent != 66.67 || s.SellPercent != 33.33 {
		t.Fatalf("expected 66.67/33.33, got %v/%v", s.BuyPercent, s.SellPercent)
	}
	if s.NeutralPercent != 0 {
		t.Fatalf("residual should round to 0, got %v", s.NeutralPercent)
	}
}

func TestBuildSummaryEmptyBatch(t *testing.T) {
	s := BuildSummary(nil, time.Now(), nil)
	if s.BuyPercent != 0 || s.SellPercent != 0 {
		t.Fatalf("empty batch yields zero percentages")
	}
	if s.NeutralPercent != 100 {
		t.Fatalf("residual takes the full weight, got %v", s.NeutralPercent)
	}
	if s.SymbolCount != 0 {
		t.Fatalf("symbol count must be 0")
	}
}
