package engine

import (
	"SigPull/internal/domain/models"
)

// Pivot field key prefixes as delivered by the scanner.
const (
	pivotClassic   = "Pivot.M.Classic."
	pivotFibonacci = "Pivot.M.Fibonacci."
	pivotCamarilla = "Pivot.M.Camarilla."
	pivotWoodie    = "Pivot.M.Woodie."
	pivotDemark    = "Pivot.M.Demark."
)

// ComputePivots builds the five pivot systems plus the session high/low and
// derives the directional call from the classic R1/S1 band.
//
// When the snapshot carries precomputed pivot fields they are copied verbatim
// (absent labels stay nil). Otherwise the levels are derived locally from
// high/low/close. Woodie and demark intentionally reuse the classic-style
// r1/s1 formula against the (h+l+2c)/4 baseline; that mirrors the historical
// scorer rather than the textbook formulas.
func ComputePivots(s models.MarketSnapshot, price *float64) models.PivotLevels {
	var levels models.PivotLevels
	levels.HighLow = models.HighLow{High: s.Num(models.FieldHigh), Low: s.Num(models.FieldLow)}

	if hasPivotFields(s) {
		levels.Classic = extractGroup(s, pivotClassic)
		levels.Fibonacci = extractGroup(s, pivotFibonacci)
		levels.Camarilla = extractGroup(s, pivotCamarilla)
		levels.Woodie = extractGroup(s, pivotWoodie)
		levels.Demark = extractGroup(s, pivotDemark)
	} else {
		computeGroups(s, &levels)
	}

	levels.Recommendation = pivotCall(price, levels.Classic)
	return levels
}

func hasPivotFields(s models.MarketSnapshot) bool {
	return s.Num(pivotClassic+"Middle") != nil
}

func extractGroup(s models.MarketSnapshot, prefix string) models.PivotGroup {
	return models.PivotGroup{
		S3: s.Num(prefix + "S3"),
		S2: s.Num(prefix + "S2"),
		S1: s.Num(prefix + "S1"),
		PP: s.Num(prefix + "Middle"),
		R1: s.Num(prefix + "R1"),
		R2: s.Num(prefix + "R2"),
		R3: s.Num(prefix + "R3"),
	}
}

func computeGroups(s models.MarketSnapshot, levels *models.PivotLevels) {
	high := s.Num(models.FieldHigh)
	low := s.Num(models.FieldLow)
	close := s.Num(models.FieldClose)
	if high == nil || low == nil || close == nil {
		return
	}

	h, l, c := *high, *low, *close
	pp := (h + l + c) / 3
	diff := h - l

	levels.Classic = models.PivotGroup{
		PP: f(pp),
		R1: f(2*pp - l),
		S1: f(2*pp - h),
	}
	levels.Fibonacci = models.PivotGroup{
		PP: f(pp),
		R1: f(pp + 0.382*diff),
		S1: f(pp - 0.382*diff),
	}
	levels.Camarilla = models.PivotGroup{
		PP: f(pp),
		R1: f(c + diff*1.1/12),
		S1: f(c - diff*1.1/12),
	}

	// Both woodie and demark rebase the pivot on (h+l+2c)/4 but keep the
	// classic r1/s1 shape.
	wpp := (h + l + 2*c) / 4
	levels.Woodie = models.PivotGroup{
		PP: f(wpp),
		R1: f(2*wpp - l),
		S1: f(2*wpp - h),
	}
	levels.Demark = models.PivotGroup{
		PP: f(wpp),
		R1: f(2*wpp - l),
		S1: f(2*wpp - h),
	}
}

// pivotCall compares current price against the classic R1/S1 band only; the
// other methods are informational levels.
func pivotCall(price *float64, classic models.PivotGroup) models.Signal {
	if price != nil && classic.R1 != nil && *price > *classic.R1 {
		return models.SignalBuy
	}
	if price != nil && classic.S1 != nil && *price < *classic.S1 {
		return models.SignalSell
	}
	return models.SignalNeutral
}

func f(v float64) *float64 { return &v }
