package models

import "time"

// Signal is a directional call.
type Signal string

const (
	SignalBuy     Signal = "Buy"
	SignalSell    Signal = "Sell"
	SignalNeutral Signal = "Neutral"
)

// Reading is one indicator's computed value, optional reference price, and
// directional call. Value and Price are nil when the snapshot lacked the
// inputs the indicator needs.
type Reading struct {
	Value          *float64 `json:"value"`
	Price          *float64 `json:"price,omitempty"`
	Recommendation Signal   `json:"recommendation"`
}

// PivotGroup is one pivot method's support/resistance ladder. Demark only
// populates S1/PP/R1; absent labels stay nil.
type PivotGroup struct {
	S3 *float64 `json:"s3,omitempty"`
	S2 *float64 `json:"s2,omitempty"`
	S1 *float64 `json:"s1"`
	PP *float64 `json:"pp"`
	R1 *float64 `json:"r1"`
	R2 *float64 `json:"r2,omitempty"`
	R3 *float64 `json:"r3,omitempty"`
}

// HighLow carries the session extremes through verbatim.
type HighLow struct {
	High *float64 `json:"high"`
	Low  *float64 `json:"low"`
}

// PivotLevels holds the five pivot systems plus the directional call derived
// from the classic group's R1/S1 band.
type PivotLevels struct {
	Classic        PivotGroup `json:"classic"`
	Fibonacci      PivotGroup `json:"fibonacci"`
	Camarilla      PivotGroup `json:"camarilla"`
	Woodie         PivotGroup `json:"woodie"`
	Demark         PivotGroup `json:"demark"`
	HighLow        HighLow    `json:"highLow"`
	Recommendation Signal     `json:"recommendation"`
}

// DominanceScore is the independent buy/sell percentage pair re-derived from
// raw fields. Buy+Sell sum to 100 within rounding; there is no neutral bucket.
type DominanceScore struct {
	Buy  float64 `json:"buy"`
	Sell float64 `json:"sell"`
}

// FinalSignal is the weighted-vote outcome with per-outcome confidence
// percentages summing to 100 within rounding.
type FinalSignal struct {
	Decision   Signal             `json:"decision"`
	Confidence map[Signal]float64 `json:"confidence"`
}

// Readings collects the per-indicator calls of one analysis.
type Readings struct {
	HullMA9    Reading `json:"hullma9"`
	RSI        Reading `json:"rsi"`
	EMA        Reading `json:"ema"`
	MACD       Reading `json:"macd"`
	Stochastic Reading `json:"stochastic"`
	ADX        Reading `json:"adx"`
	CCI        Reading `json:"cci"`
	WilliamsR  Reading `json:"williamsR"`
	BBPower    Reading `json:"bbPower"`
}

// SymbolAnalysis is the full per-symbol record for one evaluation cycle.
// Immutable once assembled; FinalSignal is filled in a second pass because it
// depends on the sibling fields.
type SymbolAnalysis struct {
	Symbol         string         `json:"symbol"`
	Time           time.Time      `json:"time"`
	Price          *float64       `json:"price"`
	Readings       Readings       `json:"readings"`
	Dominance      DominanceScore `json:"dominance"`
	Pivots         PivotLevels    `json:"pivots"`
	FinalSignal    FinalSignal    `json:"finalSignal"`
	MarketOpen     bool           `json:"isOpen"`
	ActiveSessions []string       `json:"activeSessions"`
}

// AggregateSummary folds a batch of per-symbol dominance scores into one
// batch-level view.
type AggregateSummary struct {
	Time           time.Time `json:"time"`
	SymbolCount    int       `json:"symbolCount"`
	BuyPercent     float64   `json:"buyPercent"`
	SellPercent    float64   `json:"sellPercent"`
	NeutralPercent float64   `json:"neutralPercent"`
	ActiveSessions []string  `json:"activeSessions"`
}

// ScanResult is one evaluation cycle's output: all symbol analyses plus the
// batch summary. History sinks persist one ScanResult per cycle.
type ScanResult struct {
	Symbols []SymbolAnalysis `json:"symbols"`
	Summary AggregateSummary `json:"summary"`
}
