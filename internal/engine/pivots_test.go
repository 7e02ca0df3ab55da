package engine

import (
	"math"
	"testing"

	"SigPull/internal/domain/models"
)

func TestPivotRecommendationFromClassicBand(t *testing.T) {
	s := snap(map[string]interface{}{
		"Pivot.M.Classic.Middle": 100.0,
		"Pivot.M.Classic.R1":     105.0,
		"Pivot.M.Classic.S1":     95.0,
	})
	cases := []struct {
		price float64
		want  models.Signal
	}{
		{110, models.SignalBuy},
		{90, models.SignalSell},
		{100, models.SignalNeutral},
		{105, models.SignalNeutral}, // exactly at the band edge
	}
	for _, c := range cases {
		p := c.price
		levels := ComputePivots(s, &p)
		if levels.Recommendation != c.want {
			t.Fatalf("price=%v: expected %s got %s", c.price, c.want, levels.Recommendation)
		}
	}
}

func TestPivotRecommendationWithoutPrice(t *testing.T) {
	s := snap(map[string]interface{}{
		"Pivot.M.Classic.Middle": 100.0,
		"Pivot.M.Classic.R1":     105.0,
		"Pivot.M.Classic.S1":     95.0,
	})
	levels := ComputePivots(s, nil)
	if levels.Recommendation != models.SignalNeutral {
		t.Fatalf("no price must be Neutral, got %s", levels.Recommendation)
	}
}

func TestPivotDirectExtraction(t *testing.T) {
	s := snap(map[string]interface{}{
		"Pivot.M.Classic.Middle":   100.0,
		"Pivot.M.Classic.R1":       105.0,
		"Pivot.M.Classic.S1":       95.0,
		"Pivot.M.Fibonacci.Middle": 100.0,
		"Pivot.M.Fibonacci.R2":     107.0,
		"Pivot.M.Demark.Middle":    101.0,
		"Pivot.M.Demark.R1":        106.0,
		"Pivot.M.Demark.S1":        96.0,
		"high":                     108.0,
		"low":                      92.0,
	})
	levels := ComputePivots(s, nil)

	if levels.Classic.R1 == nil || *levels.Classic.R1 != 105 {
		t.Fatalf("classic r1 not extracted")
	}
	if levels.Fibonacci.R2 == nil || *levels.Fibonacci.R2 != 107 {
		t.Fatalf("fibonacci r2 not extracted")
	}
	if levels.Fibonacci.S3 != nil {
		t.Fatalf("absent labels must stay nil")
	}
	if levels.Demark.PP == nil || *levels.Demark.PP != 101 {
		t.Fatalf("demark middle not extracted")
	}
	if levels.Demark.R2 != nil || levels.Demark.S2 != nil {
		t.Fatalf("demark populates only s1/pp/r1")
	}
	if levels.HighLow.High == nil || *levels.HighLow.High != 108 {
		t.Fatalf("high/low must pass through verbatim")
	}
}

func TestPivotFormulaFallback(t *testing.T) {
	s := snap(map[string]interface{}{
		"high":  110.0,
		"low":   90.0,
		"close": 100.0,
	})
	levels := ComputePivots(s, nil)

	pp := (110.0 + 90.0 + 100.0) / 3
	diff := 20.0

	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"classic.pp", levels.Classic.PP, pp},
		{"classic.r1", levels.Classic.R1, 2*pp - 90},
		{"classic.s1", levels.Classic.S1, 2*pp - 110},
		{"fib.r1", levels.Fibonacci.R1, pp + 0.382*diff},
		{"fib.s1", levels.Fibonacci.S1, pp - 0.382*diff},
		{"cam.r1", levels.Camarilla.R1, 100 + diff*1.1/12},
		{"cam.s1", levels.Camarilla.S1, 100 - diff*1.1/12},
	}
	for _, c := range checks {
		if c.got == nil || math.Abs(*c.got-c.want) > 1e-9 {
			t.Fatalf("%s: expected %v got %v", c.name, c.want, c.got)
		}
	}

	// woodie and demark share the rebased pivot and classic-shaped r1/s1
	wpp := (110.0 + 90.0 + 2*100.0) / 4
	if levels.Woodie.PP == nil || *levels.Woodie.PP != wpp {
		t.Fatalf("woodie pp: expected %v got %v", wpp, levels.Woodie.PP)
	}
	if levels.Woodie.R1 == nil || *levels.Woodie.R1 != 2*wpp-90 {
		t.Fatalf("woodie r1 must reuse the classic shape")
	}
	if levels.Demark.PP == nil || *levels.Demark.PP != wpp {
		t.Fatalf("demark pp must match woodie baseline")
	}
	if levels.Demark.S1 == nil || *levels.Demark.S1 != 2*wpp-110 {
		t.Fatalf("demark s1 must reuse the classic shape")
	}
}

func TestPivotFallbackWithPartialOHLC(t *testing.T) {
	levels := ComputePivots(snap(map[string]interface{}{"high": 110.0, "low": 90.0}), nil)
	if levels.Classic.PP != nil {
		t.Fatalf("missing close must leave groups empty")
	}
	if levels.Recommendation != models.SignalNeutral {
		t.Fatalf("no levels means Neutral call")
	}
	if levels.HighLow.High == nil || levels.HighLow.Low == nil {
		t.Fatalf("high/low still carried through")
	}
}
