package models

// Field keys as delivered by the scanner API. Keys are indicator names,
// optionally timeframe-qualified upstream ("RSI|15"); the scanner client
// strips the qualifier before the snapshot reaches the engine.
const (
	FieldClose   = "close"
	FieldHigh    = "high"
	FieldLow     = "low"
	FieldRSI     = "RSI"
	FieldRecRSI  = "Rec.RSI"
	FieldEMA20   = "EMA20"
	FieldHullMA9 = "HullMA9"
	FieldMACD    = "MACD.macd"
	FieldSignal  = "MACD.signal"
	FieldStochK  = "Stoch.K"
	FieldStochD  = "Stoch.D"
	FieldADX     = "ADX"
	FieldADXPos  = "ADX+DI"
	FieldADXNeg  = "ADX-DI"
	FieldCCI     = "CCI20"
	FieldWR      = "W.R"
	FieldBBPower = "BBPower"
	FieldMom     = "Mom"
)

// MarketSnapshot is one point-in-time set of named indicator fields for a
// symbol. Values come straight from JSON decoding, so numbers may arrive as
// float64, int, or json-ish numeric strings are NOT coerced; anything that is
// not numeric reads as absent. The snapshot is read-only input and any field
// may be missing.
type MarketSnapshot map[string]interface{}

// Num returns the field as *float64, or nil when the field is absent, null,
// or not numeric.
func (s MarketSnapshot) Num(key string) *float64 {
	v, ok := s[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	default:
		return nil
	}
}

// SnapshotEvent is one streamed snapshot update for a symbol.
type SnapshotEvent struct {
	Symbol    string         `json:"symbol"`
	Timestamp int64          `json:"t"` // unix seconds
	Fields    MarketSnapshot `json:"fields"`
}

// Str returns the field as a string, or "" when absent or not a string.
func (s MarketSnapshot) Str(key string) string {
	if v, ok := s[key]; ok {
		if str, ok2 := v.(string); ok2 {
			return str
		}
	}
	return ""
}
