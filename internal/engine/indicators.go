package engine

import (
	"SigPull/internal/domain/models"
)

// Indicator evaluators. Each one reads its exact fields from the snapshot and
// returns a Reading; missing or non-numeric input always collapses to a
// Neutral reading with nil value. No evaluator errors on sparse data.

// EvaluateHullMA9 compares close against the 9-period Hull moving average.
// The hull value doubles as both value and reference price.
func EvaluateHullMA9(s models.MarketSnapshot) models.Reading {
	close := s.Num(models.FieldClose)
	hull := s.Num(models.FieldHullMA9)
	if close == nil || hull == nil {
		return models.Reading{Recommendation: models.SignalNeutral}
	}
	rec := models.SignalNeutral
	switch {
	case *close > *hull:
		rec = models.SignalBuy
	case *close < *hull:
		rec = models.SignalSell
	}
	return models.Reading{Value: hull, Price: hull, Recommendation: rec}
}

// EvaluateRSI prefers the upstream recommendation field when it is numeric:
// its sign alone decides, overriding the RSI value. Otherwise falls back to
// the classic 70/30 bands.
func EvaluateRSI(s models.MarketSnapshot) models.Reading {
	rsi := s.Num(models.FieldRSI)
	price := s.Num(models.FieldClose)

	if rec := s.Num(models.FieldRecRSI); rec != nil {
		sig := models.SignalNeutral
		switch {
		case *rec > 0:
			sig = models.SignalBuy
		case *rec < 0:
			sig = models.SignalSell
		}
		return models.Reading{Value: rsi, Price: price, Recommendation: sig}
	}

	if rsi == nil {
		return models.Reading{Recommendation: models.SignalNeutral}
	}
	rec := models.SignalNeutral
	switch {
	case *rsi > 70:
		rec = models.SignalSell
	case *rsi < 30:
		rec = models.SignalBuy
	}
	return models.Reading{Value: rsi, Price: price, Recommendation: rec}
}

// EvaluateEMA compares close against the 20-period EMA.
func EvaluateEMA(s models.MarketSnapshot) models.Reading {
	close := s.Num(models.FieldClose)
	ema := s.Num(models.FieldEMA20)
	if close == nil || ema == nil {
		return models.Reading{Recommendation: models.SignalNeutral}
	}
	rec := models.SignalNeutral
	switch {
	case *close > *ema:
		rec = models.SignalBuy
	case *close < *ema:
		rec = models.SignalSell
	}
	return models.Reading{Value: ema, Price: close, Recommendation: rec}
}

// EvaluateMACD compares the MACD line against its signal line.
func EvaluateMACD(s models.MarketSnapshot) models.Reading {
	macd := s.Num(models.FieldMACD)
	signal := s.Num(models.FieldSignal)
	if macd == nil || signal == nil {
		return models.Reading{Recommendation: models.SignalNeutral}
	}
	rec := models.SignalNeutral
	switch {
	case *macd > *signal:
		rec = models.SignalBuy
	case *macd < *signal:
		rec = models.SignalSell
	}
	return models.Reading{Value: macd, Recommendation: rec}
}

// EvaluateStochastic signals only outside the extreme bands: a %K/%D cross
// inside overbought/oversold territory does not trigger a reversal call.
func EvaluateStochastic(s models.MarketSnapshot) models.Reading {
	k := s.Num(models.FieldStochK)
	d := s.Num(models.FieldStochD)
	if k == nil || d == nil {
		return models.Reading{Recommendation: models.SignalNeutral}
	}
	rec := models.SignalNeutral
	switch {
	case *k > *d && *k < 80:
		rec = models.SignalBuy
	case *k < *d && *k > 20:
		rec = models.SignalSell
	}
	return models.Reading{Value: k, Recommendation: rec}
}

// EvaluateADX requires ADX and both DI lines. A weak trend (ADX <= 20) is
// Neutral regardless of the DI relationship.
func EvaluateADX(s models.MarketSnapshot) models.Reading {
	adx := s.Num(models.FieldADX)
	plus := s.Num(models.FieldADXPos)
	minus := s.Num(models.FieldADXNeg)
	if adx == nil || plus == nil || minus == nil {
		return models.Reading{Recommendation: models.SignalNeutral}
	}
	rec := models.SignalNeutral
	if *adx > 20 {
		switch {
		case *plus > *minus:
			rec = models.SignalBuy
		case *minus > *plus:
			rec = models.SignalSell
		}
	}
	return models.Reading{Value: adx, Recommendation: rec}
}

// EvaluateCCI uses the +-100 bands.
func EvaluateCCI(s models.MarketSnapshot) models.Reading {
	cci := s.Num(models.FieldCCI)
	if cci == nil {
		return models.Reading{Recommendation: models.SignalNeutral}
	}
	rec := models.SignalNeutral
	switch {
	case *cci > 100:
		rec = models.SignalBuy
	case *cci < -100:
		rec = models.SignalSell
	}
	return models.Reading{Value: cci, Recommendation: rec}
}

// EvaluateWilliamsR reads oversold below -80 as Buy and overbought above -20
// as Sell.
func EvaluateWilliamsR(s models.MarketSnapshot) models.Reading {
	wr := s.Num(models.FieldWR)
	if wr == nil {
		return models.Reading{Recommendation: models.SignalNeutral}
	}
	rec := models.SignalNeutral
	switch {
	case *wr < -80:
		rec = models.SignalBuy
	case *wr > -20:
		rec = models.SignalSell
	}
	return models.Reading{Value: wr, Recommendation: rec}
}

// EvaluateBBPower decides on sign alone.
func EvaluateBBPower(s models.MarketSnapshot) models.Reading {
	bbp := s.Num(models.FieldBBPower)
	if bbp == nil {
		return models.Reading{Recommendation: models.SignalNeutral}
	}
	rec := models.SignalNeutral
	switch {
	case *bbp > 0:
		rec = models.SignalBuy
	case *bbp < 0:
		rec = models.SignalSell
	}
	return models.Reading{Value: bbp, Recommendation: rec}
}

// EvaluateAll runs every indicator evaluator over the snapshot.
func EvaluateAll(s models.MarketSnapshot) models.Readings {
	return models.Readings{
		HullMA9:    EvaluateHullMA9(s),
		RSI:        EvaluateRSI(s),
		EMA:        EvaluateEMA(s),
		MACD:       EvaluateMACD(s),
		Stochastic: EvaluateStochastic(s),
		ADX:        EvaluateADX(s),
		CCI:        EvaluateCCI(s),
		WilliamsR:  EvaluateWilliamsR(s),
		BBPower:    EvaluateBBPower(s),
	}
}
