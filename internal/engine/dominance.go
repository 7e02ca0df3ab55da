package engine

import (
	"SigPull/internal/domain/models"
)

// ScoreDominance re-derives a buy/sell bias straight from raw fields,
// independent of the indicator evaluators. The duplication with EvaluateAll
// is intentional: dominance is a second opinion for batch reporting, not an
// input to the final vote.
//
// Four additive checks contribute fixed points to each side:
//
//	RSI      >70 sell+25, <30 buy+25, >50 buy+15, else sell+15 (never abstains)
//	Momentum sign: buy+25 / sell+25, zero abstains
//	ADX      >20: buy+25 when RSI>50 else sell+25; <=20: both sides +10
//	MACD     line vs signal: buy+25 / sell+25, equal abstains
//
// The ADX>20 branch falls through to the sell case when RSI is absent; a
// missing RSI is not an abstention here.
func ScoreDominance(s models.MarketSnapshot) models.DominanceScore {
	var buy, sell float64

	rsi := s.Num(models.FieldRSI)
	if rsi != nil {
		switch {
		case *rsi > 70:
			sell += 25
		case *rsi < 30:
			buy += 25
		case *rsi > 50:
			buy += 15
		default:
			sell += 15
		}
	}

	if mom := s.Num(models.FieldMom); mom != nil {
		switch {
		case *mom > 0:
			buy += 25
		case *mom < 0:
			sell += 25
		}
	}

	if adx := s.Num(models.FieldADX); adx != nil {
		if *adx > 20 {
			if rsi != nil && *rsi > 50 {
				buy += 25
			} else {
				sell += 25
			}
		} else {
			buy += 10
			sell += 10
		}
	}

	macd := s.Num(models.FieldMACD)
	signal := s.Num(models.FieldSignal)
	if macd != nil && signal != nil {
		switch {
		case *macd > *signal:
			buy += 25
		case *macd < *signal:
			sell += 25
		}
	}

	total := buy + sell
	if total == 0 {
		return models.DominanceScore{Buy: 50, Sell: 50}
	}
	return models.DominanceScore{
		Buy:  round2(buy / total * 100),
		Sell: round2(sell / total * 100),
	}
}
