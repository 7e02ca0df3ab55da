package sessions

import (
	"testing"
	"time"
)

func TestActiveAtLondonNewYorkOverlap(t *testing.T) {
	tbl := NewTable(nil)
	// Monday 14:00 UTC: london and newyork overlap
	at := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	got := tbl.Active(at)
	if len(got) != 2 || got[0] != "london" || got[1] != "newyork" {
		t.Fatalf("expected [london newyork], got %v", got)
	}
	if !tbl.IsOpen(at) {
		t.Fatalf("market should be open")
	}
}

func TestActiveWrapsMidnight(t *testing.T) {
	tbl := NewTable(nil)
	// Tuesday 02:00 UTC: sydney (opened Monday 21:00) and tokyo
	at := time.Date(2025, 6, 3, 2, 0, 0, 0, time.UTC)
	got := tbl.Active(at)
	if len(got) != 2 || got[0] != "sydney" || got[1] != "tokyo" {
		t.Fatalf("expected [sydney tokyo], got %v", got)
	}
}

func TestClosedOnWeekend(t *testing.T) {
	tbl := NewTable(nil)
	// Saturday midday
	at := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)
	if tbl.IsOpen(at) {
		t.Fatalf("expected closed on saturday, got %v", tbl.Active(at))
	}
}

func TestFridayTailIntoSaturday(t *testing.T) {
	tbl := NewTable(nil)
	// Saturday 02:00 UTC belongs to the sydney window opened Friday 21:00
	at := time.Date(2025, 6, 7, 2, 0, 0, 0, time.UTC)
	got := tbl.Active(at)
	if len(got) != 1 || got[0] != "sydney" {
		t.Fatalf("expected friday's sydney tail, got %v", got)
	}
}

func TestCustomWindows(t *testing.T) {
	tbl := NewTable([]Window{{Name: "crypto", Open: 0, Close: 24, Days: []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
	}}})
	if !tbl.IsOpen(time.Date(2025, 6, 8, 3, 0, 0, 0, time.UTC)) {
		t.Fatalf("24/7 window should always be open")
	}
}
