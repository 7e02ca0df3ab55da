package engine

import (
	"reflect"
	"testing"
	"time"

	"SigPull/internal/domain/models"
)

func fullSnapshot() models.MarketSnapshot {
	return snap(map[string]interface{}{
		"close":       102.0,
		"high":        110.0,
		"low":         90.0,
		"HullMA9":     100.0,
		"RSI":         62.0,
		"EMA20":       101.0,
		"MACD.macd":   0.8,
		"MACD.signal": 0.5,
		"Stoch.K":     55.0,
		"Stoch.D":     48.0,
		"ADX":         27.0,
		"ADX+DI":      28.0,
		"ADX-DI":      14.0,
		"CCI20":       130.0,
		"W.R":         -45.0,
		"BBPower":     0.6,
		"Mom":         1.2,
	})
}

func TestAnalyzeComposesRecord(t *testing.T) {
	ectx := Context{
		Time:           time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
		ActiveSessions: []string{"london", "newyork"},
		MarketOpen:     true,
	}
	a := Analyze("EURUSD", fullSnapshot(), ectx)

	if a.Symbol != "EURUSD" || !a.Time.Equal(ectx.Time) {
		t.Fatalf("identity fields not carried: %+v", a)
	}
	if a.Price == nil || *a.Price != 102 {
		t.Fatalf("price must come from close")
	}
	if !a.MarketOpen || len(a.ActiveSessions) != 2 {
		t.Fatalf("session facts not attached")
	}
	if a.Readings.HullMA9.Recommendation != models.SignalBuy {
		t.Fatalf("close above hull must Buy")
	}
	if a.FinalSignal.Decision == "" {
		t.Fatalf("final signal must be computed in the second pass")
	}
	sum := a.FinalSignal.Confidence[models.SignalBuy] +
		a.FinalSignal.Confidence[models.SignalSell] +
		a.FinalSignal.Confidence[models.SignalNeutral]
	if sum < 99.99 || sum > 100.01 {
		t.Fatalf("confidences sum to %v", sum)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	ectx := Context{
		Time:           time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
		ActiveSessions: []string{"tokyo"},
		MarketOpen:     false,
	}
	a := Analyze("GBPJPY", fullSnapshot(), ectx)
	b := Analyze("GBPJPY", fullSnapshot(), ectx)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs must yield identical analyses")
	}
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	a := Analyze("XAUUSD", snap(nil), Context{Time: time.Unix(0, 0).UTC()})
	if a.Price != nil {
		t.Fatalf("empty snapshot has no price")
	}
	if a.Dominance.Buy != 50 || a.Dominance.Sell != 50 {
		t.Fatalf("empty snapshot dominance must be 50/50")
	}
	if a.FinalSignal.Decision != models.SignalNeutral {
		t.Fatalf("empty snapshot must decide Neutral")
	}
	if a.FinalSignal.Confidence[models.SignalNeutral] != 100 {
		t.Fatalf("all votes neutral, expected 100%% Neutral confidence")
	}
}
