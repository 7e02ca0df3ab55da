package usecase

import (
	"testing"
	"time"

	"SigPull/internal/domain/models"
	"SigPull/internal/service/sessions"
)

func TestAnalyzerFillsSessionContext(t *testing.T) {
	// Monday 14:00 UTC: london and newyork overlap
	fixed := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	a := NewAnalyzer(sessions.NewTable(nil), WithClock(func() time.Time { return fixed }))

	got := a.Analyze("EURUSD", models.MarketSnapshot{"close": 1.08})
	if !got.Time.Equal(fixed) {
		t.Fatalf("expected time %v, got %v", fixed, got.Time)
	}
	if !got.MarketOpen {
		t.Fatalf("expected market open")
	}
	if len(got.ActiveSessions) != 2 || got.ActiveSessions[0] != "london" {
		t.Fatalf("unexpected sessions %v", got.ActiveSessions)
	}
}

func TestAnalyzeAtUsesEventTime(t *testing.T) {
	a := NewAnalyzer(sessions.NewTable(nil))
	// Saturday midday: closed
	at := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)
	got := a.AnalyzeAt("EURUSD", models.MarketSnapshot{}, at)
	if got.MarketOpen {
		t.Fatalf("expected market closed on saturday")
	}
	if len(got.ActiveSessions) != 0 {
		t.Fatalf("unexpected sessions %v", got.ActiveSessions)
	}
}

func TestSummarizeEmptyBatch(t *testing.T) {
	fixed := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	a := NewAnalyzer(sessions.NewTable(nil), WithClock(func() time.Time { return fixed }))

	sum := a.Summarize(nil, fixed)
	if sum.SymbolCount != 0 || sum.NeutralPercent != 100 {
		t.Fatalf("expected neutral empty summary, got %+v", sum)
	}
}

func TestParseRange(t *testing.T) {
	from, to, err := parseRange("2025-06-01T00:00:00Z", "2025-06-02T00:00:00Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !to.After(from) {
		t.Fatalf("expected to after from")
	}

	if _, _, err := parseRange("not-a-time", ""); err == nil {
		t.Fatalf("expected error for bad from")
	}
	if _, _, err := parseRange("2025-06-02T00:00:00Z", "2025-06-01T00:00:00Z"); err == nil {
		t.Fatalf("expected error for inverted range")
	}

	// unix seconds accepted
	if _, _, err := parseRange("1748736000", ""); err != nil {
		t.Fatalf("unix seconds: %v", err)
	}
}
