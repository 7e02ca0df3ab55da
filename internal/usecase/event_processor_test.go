package usecase

import (
	"context"
	"testing"
	"time"

	"SigPull/internal/domain/models"
	"SigPull/internal/service/sessions"
	pkgcache "SigPull/pkg/cache"
)

func TestEventProcessorCachesLatestAnalysis(t *testing.T) {
	cache := pkgcache.NewMemoryCache()
	defer cache.Close()

	analyzer := NewAnalyzer(sessions.NewTable(nil))
	proc := NewEventProcessor(analyzer, cache, &stubMetrics{}, time.Minute)

	at := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	ev := &models.SnapshotEvent{
		Symbol:    "EURUSD",
		Timestamp: at.Unix(),
		Fields:    models.MarketSnapshot{"close": 1.08, "RSI": 75.0},
	}
	if err := proc.Process(context.Background(), ev); err != nil {
		t.Fatalf("process: %v", err)
	}

	q := NewAnalysisQuery(analyzer, cache, nil)
	got, err := q.Latest(context.Background(), "EURUSD")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.Symbol != "EURUSD" || !got.Time.Equal(at) {
		t.Fatalf("unexpected cached analysis %+v", got)
	}
	if got.Readings.RSI.Recommendation != models.SignalSell {
		t.Fatalf("RSI 75 should read Sell, got %s", got.Readings.RSI.Recommendation)
	}
}

func TestLatestMissIs404(t *testing.T) {
	cache := pkgcache.NewMemoryCache()
	defer cache.Close()

	q := NewAnalysisQuery(NewAnalyzer(sessions.NewTable(nil)), cache, nil)
	if _, err := q.Latest(context.Background(), "XAUUSD"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestAdHocAnalyzeDoesNotCache(t *testing.T) {
	cache := pkgcache.NewMemoryCache()
	defer cache.Close()

	q := NewAnalysisQuery(NewAnalyzer(sessions.NewTable(nil)), cache, nil)
	res := q.Analyze("EURUSD", map[string]interface{}{"close": 1.08})
	if res.Symbol != "EURUSD" {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, err := q.Latest(context.Background(), "EURUSD"); err == nil {
		t.Fatalf("ad-hoc analyze must not populate the cache")
	}
}
