package engine

import (
	"testing"

	"SigPull/internal/domain/models"
)

func readingsWith(recs map[string]models.Signal) models.Readings {
	r := models.Readings{
		HullMA9:    models.Reading{Recommendation: models.SignalNeutral},
		RSI:        models.Reading{Recommendation: models.SignalNeutral},
		EMA:        models.Reading{Recommendation: models.SignalNeutral},
		MACD:       models.Reading{Recommendation: models.SignalNeutral},
		Stochastic: models.Reading{Recommendation: models.SignalNeutral},
		ADX:        models.Reading{Recommendation: models.SignalNeutral},
		CCI:        models.Reading{Recommendation: models.SignalNeutral},
		WilliamsR:  models.Reading{Recommendation: models.SignalNeutral},
		BBPower:    models.Reading{Recommendation: models.SignalNeutral},
	}
	for name, sig := range recs {
		switch name {
		case "hull":
			r.HullMA9.Recommendation = sig
		case "rsi":
			r.RSI.Recommendation = sig
		case "ema":
			r.EMA.Recommendation = sig
		case "macd":
			r.MACD.Recommendation = sig
		case "stoch":
			r.Stochastic.Recommendation = sig
		case "adx":
			r.ADX.Recommendation = sig
		case "cci":
			r.CCI.Recommendation = sig
		case "wr":
			r.WilliamsR.Recommendation = sig
		case "bbp":
			r.BBPower.Recommendation = sig
		}
	}
	return r
}

func TestAggregateSignalAllNeutral(t *testing.T) {
	fs := AggregateSignal(readingsWith(nil), models.SignalNeutral)
	if fs.Decision != models.SignalNeutral {
		t.Fatalf("expected Neutral decision, got %s", fs.Decision)
	}
	if fs.Confidence[models.SignalNeutral] != 100 {
		t.Fatalf("expected 100%% Neutral confidence, got %v", fs.Confidence[models.SignalNeutral])
	}
	if fs.Confidence[models.SignalBuy] != 0 || fs.Confidence[models.SignalSell] != 0 {
		t.Fatalf("expected zero Buy/Sell confidence")
	}
}

func TestAggregateSignalBonusWeights(t *testing.T) {
	// RSI and HullMA9 both Buy: 2 votes + 4 bonus = 6 of 14 total.
	fs := AggregateSignal(readingsWith(map[string]models.Signal{
		"rsi":  models.SignalBuy,
		"hull": models.SignalBuy,
	}), models.SignalNeutral)
	if fs.Confidence[models.SignalBuy] != 42.86 {
		t.Fatalf("expected Buy confidence 42.86, got %v", fs.Confidence[models.SignalBuy])
	}
	if fs.Confidence[models.SignalNeutral] != 57.14 {
		t.Fatalf("expected Neutral confidence 57.14, got %v", fs.Confidence[models.SignalNeutral])
	}
	if fs.Decision != models.SignalNeutral {
		t.Fatalf("neutral majority must win, got %s", fs.Decision)
	}
}

func TestAggregateSignalNeutralRSIEarnsNoBonus(t *testing.T) {
	// One plain Buy vote (EMA) against 9 Neutral: total stays 10.
	fs := AggregateSignal(readingsWith(map[string]models.Signal{
		"ema": models.SignalBuy,
	}), models.SignalNeutral)
	if fs.Confidence[models.SignalBuy] != 10 {
		t.Fatalf("expected Buy confidence 10, got %v", fs.Confidence[models.SignalBuy])
	}
}

func TestAggregateSignalDecisionRequiresStrictMajority(t *testing.T) {
	// 4 Buy vs 4 Sell votes (no bonus sources): tie resolves Neutral.
	fs := AggregateSignal(readingsWith(map[string]models.Signal{
		"ema":   models.SignalBuy,
		"macd":  models.SignalBuy,
		"stoch": models.SignalBuy,
		"adx":   models.SignalBuy,
		"cci":   models.SignalSell,
		"wr":    models.SignalSell,
		"bbp":   models.SignalSell,
	}), models.SignalSell)
	if fs.Decision != models.SignalNeutral {
		t.Fatalf("buy/sell tie must resolve Neutral, got %s", fs.Decision)
	}

	fs = AggregateSignal(readingsWith(map[string]models.Signal{
		"ema":   models.SignalBuy,
		"macd":  models.SignalBuy,
		"stoch": models.SignalBuy,
		"adx":   models.SignalBuy,
		"cci":   models.SignalSell,
		"wr":    models.SignalSell,
		"bbp":   models.SignalSell,
	}), models.SignalBuy) // 5 buy, 3 sell, 2 neutral
	if fs.Decision != models.SignalBuy {
		t.Fatalf("buy plurality must win, got %s", fs.Decision)
	}
}

func TestAggregateSignalConfidenceSumsToHundred(t *testing.T) {
	combos := []struct {
		recs  map[string]models.Signal
		pivot models.Signal
	}{
		{nil, models.SignalNeutral},
		{map[string]models.Signal{"rsi": models.SignalBuy}, models.SignalSell},
		{map[string]models.Signal{"rsi": models.SignalSell, "hull": models.SignalBuy}, models.SignalBuy},
		{map[string]models.Signal{"ema": models.SignalBuy, "cci": models.SignalSell, "hull": models.SignalSell}, models.SignalNeutral},
	}
	for i, c := range combos {
		fs := AggregateSignal(readingsWith(c.recs), c.pivot)
		sum := fs.Confidence[models.SignalBuy] + fs.Confidence[models.SignalSell] + fs.Confidence[models.SignalNeutral]
		if sum < 99.99 || sum > 100.01 {
			t.Fatalf("combo %d: confidences sum to %v, want 100 +-0.01", i, sum)
		}
	}
}
