package scanner

import "testing"

func TestNormalizeKeysStripsTimeframe(t *testing.T) {
	raw := map[string]interface{}{
		"RSI|15":   55.0,
		"close|15": 101.5,
		"ADX":      22.0,
		"RSI|60":   40.0,
	}
	snap := normalizeKeys(raw, "15")

	if v := snap.Num("RSI"); v == nil || *v != 55.0 {
		t.Fatalf("expected RSI 55, got %v", v)
	}
	if v := snap.Num("close"); v == nil || *v != 101.5 {
		t.Fatalf("expected close 101.5, got %v", v)
	}
	if v := snap.Num("ADX"); v == nil || *v != 22.0 {
		t.Fatalf("unqualified key should pass through, got %v", v)
	}
	// other timeframes keep their qualifier
	if v := snap.Num("RSI|60"); v == nil || *v != 40.0 {
		t.Fatalf("expected RSI|60 untouched, got %v", v)
	}
}
