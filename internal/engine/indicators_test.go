package engine

import (
	"testing"

	"SigPull/internal/domain/models"
)

func snap(fields map[string]interface{}) models.MarketSnapshot {
	return models.MarketSnapshot(fields)
}

func TestEvaluatorsMissingInputsAreNeutral(t *testing.T) {
	empty := snap(nil)
	evals := map[string]func(models.MarketSnapshot) models.Reading{
		"hullma9":    EvaluateHullMA9,
		"rsi":        EvaluateRSI,
		"ema":        EvaluateEMA,
		"macd":       EvaluateMACD,
		"stochastic": EvaluateStochastic,
		"adx":        EvaluateADX,
		"cci":        EvaluateCCI,
		"williamsR":  EvaluateWilliamsR,
		"bbPower":    EvaluateBBPower,
	}
	for name, eval := range evals {
		r := eval(empty)
		if r.Recommendation != models.SignalNeutral {
			t.Fatalf("%s: expected Neutral on empty snapshot, got %s", name, r.Recommendation)
		}
		if r.Value != nil {
			t.Fatalf("%s: expected nil value on empty snapshot, got %v", name, *r.Value)
		}
	}
}

func TestEvaluateHullMA9(t *testing.T) {
	cases := []struct {
		close, hull float64
		want        models.Signal
	}{
		{110, 100, models.SignalBuy},
		{90, 100, models.SignalSell},
		{100, 100, models.SignalNeutral},
	}
	for _, c := range cases {
		r := EvaluateHullMA9(snap(map[string]interface{}{"close": c.close, "HullMA9": c.hull}))
		if r.Recommendation != c.want {
			t.Fatalf("close=%v hull=%v: expected %s got %s", c.close, c.hull, c.want, r.Recommendation)
		}
		if r.Value == nil || *r.Value != c.hull {
			t.Fatalf("expected value %v, got %v", c.hull, r.Value)
		}
		if r.Price == nil || *r.Price != c.hull {
			t.Fatalf("expected price to reuse hull value")
		}
	}
}

func TestEvaluateRSIRecommendationOverride(t *testing.T) {
	r := EvaluateRSI(snap(map[string]interface{}{"RSI": 75.0, "Rec.RSI": 1.0}))
	if r.Recommendation != models.SignalBuy {
		t.Fatalf("positive Rec.RSI must override raw RSI, got %s", r.Recommendation)
	}
	r = EvaluateRSI(snap(map[string]interface{}{"RSI": 25.0, "Rec.RSI": -0.5}))
	if r.Recommendation != models.SignalSell {
		t.Fatalf("negative Rec.RSI must override raw RSI, got %s", r.Recommendation)
	}
	r = EvaluateRSI(snap(map[string]interface{}{"RSI": 75.0, "Rec.RSI": 0.0}))
	if r.Recommendation != models.SignalNeutral {
		t.Fatalf("zero Rec.RSI must be Neutral, got %s", r.Recommendation)
	}
}

func TestEvaluateRSIBands(t *testing.T) {
	cases := []struct {
		rsi  float64
		want models.Signal
	}{
		{75, models.SignalSell},
		{25, models.SignalBuy},
		{50, models.SignalNeutral},
		{70, models.SignalNeutral},
		{30, models.SignalNeutral},
	}
	for _, c := range cases {
		r := EvaluateRSI(snap(map[string]interface{}{"RSI": c.rsi}))
		if r.Recommendation != c.want {
			t.Fatalf("rsi=%v: expected %s got %s", c.rsi, c.want, r.Recommendation)
		}
	}
}

func TestEvaluateStochasticExtremeBands(t *testing.T) {
	// cross up but already overbought: no call
	r := EvaluateStochastic(snap(map[string]interface{}{"Stoch.K": 85.0, "Stoch.D": 80.0}))
	if r.Recommendation != models.SignalNeutral {
		t.Fatalf("overbought cross must stay Neutral, got %s", r.Recommendation)
	}
	// cross down but already oversold: no call
	r = EvaluateStochastic(snap(map[string]interface{}{"Stoch.K": 15.0, "Stoch.D": 20.0}))
	if r.Recommendation != models.SignalNeutral {
		t.Fatalf("oversold cross must stay Neutral, got %s", r.Recommendation)
	}
	r = EvaluateStochastic(snap(map[string]interface{}{"Stoch.K": 60.0, "Stoch.D": 50.0}))
	if r.Recommendation != models.SignalBuy {
		t.Fatalf("mid-band cross up must Buy, got %s", r.Recommendation)
	}
	r = EvaluateStochastic(snap(map[string]interface{}{"Stoch.K": 40.0, "Stoch.D": 50.0}))
	if r.Recommendation != models.SignalSell {
		t.Fatalf("mid-band cross down must Sell, got %s", r.Recommendation)
	}
}

func TestEvaluateADXWeakTrend(t *testing.T) {
	r := EvaluateADX(snap(map[string]interface{}{"ADX": 15.0, "ADX+DI": 30.0, "ADX-DI": 10.0}))
	if r.Recommendation != models.SignalNeutral {
		t.Fatalf("ADX<=20 must be Neutral regardless of DI, got %s", r.Recommendation)
	}
	r = EvaluateADX(snap(map[string]interface{}{"ADX": 25.0, "ADX+DI": 30.0, "ADX-DI": 10.0}))
	if r.Recommendation != models.SignalBuy {
		t.Fatalf("strong trend with +DI dominant must Buy, got %s", r.Recommendation)
	}
	r = EvaluateADX(snap(map[string]interface{}{"ADX": 25.0, "ADX+DI": 10.0, "ADX-DI": 30.0}))
	if r.Recommendation != models.SignalSell {
		t.Fatalf("strong trend with -DI dominant must Sell, got %s", r.Recommendation)
	}
	// all three fields required
	r = EvaluateADX(snap(map[string]interface{}{"ADX": 25.0, "ADX+DI": 30.0}))
	if r.Recommendation != models.SignalNeutral || r.Value != nil {
		t.Fatalf("missing DI must collapse to Neutral/nil")
	}
}

func TestEvaluateWilliamsR(t *testing.T) {
	cases := []struct {
		wr   float64
		want models.Signal
	}{
		{-90, models.SignalBuy},
		{-10, models.SignalSell},
		{-50, models.SignalNeutral},
	}
	for _, c := range cases {
		r := EvaluateWilliamsR(snap(map[string]interface{}{"W.R": c.wr}))
		if r.Recommendation != c.want {
			t.Fatalf("wr=%v: expected %s got %s", c.wr, c.want, r.Recommendation)
		}
	}
}

func TestEvaluateBBPowerSign(t *testing.T) {
	r := EvaluateBBPower(snap(map[string]interface{}{"BBPower": 0.0}))
	if r.Recommendation != models.SignalNeutral {
		t.Fatalf("zero BBPower must be Neutral, got %s", r.Recommendation)
	}
	r = EvaluateBBPower(snap(map[string]interface{}{"BBPower": 0.3}))
	if r.Recommendation != models.SignalBuy {
		t.Fatalf("positive BBPower must Buy, got %s", r.Recommendation)
	}
	r = EvaluateBBPower(snap(map[string]interface{}{"BBPower": -0.3}))
	if r.Recommendation != models.SignalSell {
		t.Fatalf("negative BBPower must Sell, got %s", r.Recommendation)
	}
}

func TestSnapshotNumToleratesTypes(t *testing.T) {
	s := snap(map[string]interface{}{
		"close": 100,          // int
		"RSI":   float32(55),  // float32
		"EMA20": "not-number", // string
		"Mom":   nil,          // null
	})
	if v := s.Num("close"); v == nil || *v != 100 {
		t.Fatalf("int field should read as numeric")
	}
	if v := s.Num("RSI"); v == nil || *v != 55 {
		t.Fatalf("float32 field should read as numeric")
	}
	if s.Num("EMA20") != nil {
		t.Fatalf("string field should read as absent")
	}
	if s.Num("Mom") != nil {
		t.Fatalf("null field should read as absent")
	}
	if s.Num("missing") != nil {
		t.Fatalf("missing field should read as absent")
	}
}
