package usecase

import (
	"context"
	"testing"

	"SigPull/internal/domain/models"
)

type stubSink struct {
	stored int
	fail   bool
}

func (s *stubSink) Init(ctx context.Context) error { return nil }
func (s *stubSink) Store(ctx context.Context, r *models.ScanResult) error {
	if s.fail {
		return context.DeadlineExceeded
	}
	s.stored++
	return nil
}
func (s *stubSink) Health(ctx context.Context) error { return nil }
func (s *stubSink) Close() error                     { return nil }

type stubMetrics struct {
	sent   int
	errors int
}

func (m *stubMetrics) RecordResultSent(backend, symbol string)      { m.sent++ }
func (m *stubMetrics) RecordError(kind string)                      { m.errors++ }
func (m *stubMetrics) RecordLastPrice(symbol string, price float64) {}
func (m *stubMetrics) RecordDecision(symbol, decision string)       {}
func (m *stubMetrics) RecordLatency(op string, seconds float64)     {}

func TestResultProcessorRoutesToBackend(t *testing.T) {
	ch := &stubSink{}
	m := &stubMetrics{}
	p := NewResultProcessor(nil, ch, nil, m, "clickhouse")

	r := &models.ScanResult{Symbols: []models.SymbolAnalysis{{Symbol: "EURUSD"}, {Symbol: "GBPUSD"}}}
	if err := p.Process(context.Background(), r); err != nil {
		t.Fatalf("process: %v", err)
	}
	if ch.stored != 1 {
		t.Fatalf("expected 1 store call, got %d", ch.stored)
	}
	if m.sent != 2 {
		t.Fatalf("expected 2 result metrics, got %d", m.sent)
	}
}

func TestResultProcessorUnknownBackend(t *testing.T) {
	m := &stubMetrics{}
	p := NewResultProcessor(nil, nil, nil, m, "postgres")
	if err := p.Process(context.Background(), &models.ScanResult{}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if m.errors != 1 {
		t.Fatalf("expected error metric, got %d", m.errors)
	}
}

func TestResultProcessorSinkFailure(t *testing.T) {
	sink := &stubSink{fail: true}
	m := &stubMetrics{}
	p := NewResultProcessor(sink, nil, nil, m, "kafka")
	if err := p.Process(context.Background(), &models.ScanResult{Symbols: []models.SymbolAnalysis{{Symbol: "EURUSD"}}}); err == nil {
		t.Fatalf("expected error from failing sink")
	}
	if m.sent != 0 {
		t.Fatalf("failed cycle must not count results, got %d", m.sent)
	}
}
