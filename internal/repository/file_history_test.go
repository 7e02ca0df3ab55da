package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"SigPull/internal/domain/models"
)

func TestFileHistoryAppendsOneLinePerCycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "scans.jsonl")
	sink := NewFileHistory(path)
	if err := sink.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer sink.Close()

	price := 101.5
	r := &models.ScanResult{
		Symbols: []models.SymbolAnalysis{{
			Symbol: "EURUSD",
			Time:   time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
			Price:  &price,
		}},
		Summary: models.AggregateSummary{SymbolCount: 1, NeutralPercent: 100},
	}
	if err := sink.Store(context.Background(), r); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := sink.Store(context.Background(), r); err != nil {
		t.Fatalf("store again: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var got models.ScanResult
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if len(got.Symbols) != 1 || got.Symbols[0].Symbol != "EURUSD" {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestFileHistoryStoreBeforeInit(t *testing.T) {
	sink := NewFileHistory(filepath.Join(t.TempDir(), "x.jsonl"))
	if err := sink.Store(context.Background(), &models.ScanResult{}); err == nil {
		t.Fatalf("expected error before Init")
	}
	if err := sink.Health(context.Background()); err == nil {
		t.Fatalf("expected unhealthy before Init")
	}
}
