package engine

import (
	"SigPull/internal/domain/models"
)

// bonusWeight is the extra vote weight granted to RSI and HullMA9 when they
// make a directional call; a Neutral call earns no bonus.
const bonusWeight = 2

// AggregateSignal applies the weighted vote over the nine indicator readings
// plus the pivot recommendation. Each input contributes one vote; RSI and
// HullMA9 add bonusWeight to their own bucket when non-Neutral, making them
// triple-weighted against the other eight. Ties of any kind resolve to
// Neutral.
func AggregateSignal(r models.Readings, pivot models.Signal) models.FinalSignal {
	weights := map[models.Signal]float64{
		models.SignalBuy:     0,
		models.SignalSell:    0,
		models.SignalNeutral: 0,
	}

	votes := []models.Signal{
		r.HullMA9.Recommendation,
		r.RSI.Recommendation,
		r.EMA.Recommendation,
		r.MACD.Recommendation,
		r.Stochastic.Recommendation,
		r.ADX.Recommendation,
		r.CCI.Recommendation,
		r.WilliamsR.Recommendation,
		r.BBPower.Recommendation,
		pivot,
	}
	for _, v := range votes {
		weights[v]++
	}

	if r.RSI.Recommendation != models.SignalNeutral {
		weights[r.RSI.Recommendation] += bonusWeight
	}
	if r.HullMA9.Recommendation != models.SignalNeutral {
		weights[r.HullMA9.Recommendation] += bonusWeight
	}

	total := weights[models.SignalBuy] + weights[models.SignalSell] + weights[models.SignalNeutral]

	confidence := map[models.Signal]float64{
		models.SignalBuy:     round2(weights[models.SignalBuy] / total * 100),
		models.SignalSell:    round2(weights[models.SignalSell] / total * 100),
		models.SignalNeutral: round2(weights[models.SignalNeutral] / total * 100),
	}

	decision := models.SignalNeutral
	switch {
	case confidence[models.SignalBuy] > confidence[models.SignalSell] &&
		confidence[models.SignalBuy] > confidence[models.SignalNeutral]:
		decision = models.SignalBuy
	case confidence[models.SignalSell] > confidence[models.SignalBuy] &&
		confidence[models.SignalSell] > confidence[models.SignalNeutral]:
		decision = models.SignalSell
	}

	return models.FinalSignal{Decision: decision, Confidence: confidence}
}
