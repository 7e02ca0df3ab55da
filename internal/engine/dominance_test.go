package engine

import (
	"testing"
)

func TestScoreDominanceBalancedCase(t *testing.T) {
	// RSI 75 -> sell+25, Mom -2 -> sell+25, ADX 25 with RSI>50 -> buy+25,
	// MACD above signal -> buy+25: perfectly split.
	s := snap(map[string]interface{}{
		"RSI":         75.0,
		"Mom":         -2.0,
		"ADX":         25.0,
		"MACD.macd":   1.0,
		"MACD.signal": 0.5,
	})
	d := ScoreDominance(s)
	if d.Buy != 50.00 || d.Sell != 50.00 {
		t.Fatalf("expected 50/50, got %v/%v", d.Buy, d.Sell)
	}
}

func TestScoreDominanceEmptySnapshot(t *testing.T) {
	d := ScoreDominance(snap(nil))
	if d.Buy != 50 || d.Sell != 50 {
		t.Fatalf("degenerate case must fall back to 50/50, got %v/%v", d.Buy, d.Sell)
	}
}

func TestScoreDominanceADXWithMissingRSIDefaultsToSell(t *testing.T) {
	// ADX>20 fires the trend branch even without RSI, landing on the sell
	// side. Parity with the historical scorer, not a bug.
	d := ScoreDominance(snap(map[string]interface{}{"ADX": 25.0}))
	if d.Buy != 0 || d.Sell != 100 {
		t.Fatalf("expected 0/100, got %v/%v", d.Buy, d.Sell)
	}
}

func TestScoreDominanceWeakADXFeedsBothSides(t *testing.T) {
	d := ScoreDominance(snap(map[string]interface{}{"ADX": 15.0}))
	if d.Buy != 50 || d.Sell != 50 {
		t.Fatalf("weak trend contributes 10/10, expected 50/50, got %v/%v", d.Buy, d.Sell)
	}
}

func TestScoreDominanceMidRSIContributes(t *testing.T) {
	// RSI never abstains: 60 lands in the mild-buy branch.
	d := ScoreDominance(snap(map[string]interface{}{"RSI": 60.0}))
	if d.Buy != 100 || d.Sell != 0 {
		t.Fatalf("expected 100/0, got %v/%v", d.Buy, d.Sell)
	}
	d = ScoreDominance(snap(map[string]interface{}{"RSI": 45.0}))
	if d.Buy != 0 || d.Sell != 100 {
		t.Fatalf("expected 0/100, got %v/%v", d.Buy, d.Sell)
	}
}

func TestScoreDominanceSumsToHundred(t *testing.T) {
	s := snap(map[string]interface{}{
		"RSI":         60.0,
		"Mom":         1.5,
		"ADX":         18.0,
		"MACD.macd":   -0.2,
		"MACD.signal": 0.1,
	})
	d := ScoreDominance(s)
	if sum := d.Buy + d.Sell; sum < 99.99 || sum > 100.01 {
		t.Fatalf("buy+sell must sum to 100 within rounding, got %v", sum)
	}
}

func TestScoreDominanceZeroMomentumAbstains(t *testing.T) {
	a := ScoreDominance(snap(map[string]interface{}{"RSI": 60.0}))
	b := ScoreDominance(snap(map[string]interface{}{"RSI": 60.0, "Mom": 0.0}))
	if a != b {
		t.Fatalf("zero momentum must contribute nothing: %v vs %v", a, b)
	}
}
