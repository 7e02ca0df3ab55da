package middleware

import (
	"context"
	"fmt"
	"testing"
	"time"

	"SigPull/internal/domain/models"
)

type countingProc struct {
	calls int
	fail  bool
}

func (p *countingProc) Process(ctx context.Context, ev *models.SnapshotEvent) error {
	p.calls++
	if p.fail {
		return fmt.Errorf("downstream down")
	}
	return nil
}

type noopMetrics struct{}

func (noopMetrics) RecordResultSent(backend, symbol string)      {}
func (noopMetrics) RecordError(kind string)                      {}
func (noopMetrics) RecordLastPrice(symbol string, price float64) {}
func (noopMetrics) RecordDecision(symbol, decision string)       {}
func (noopMetrics) RecordLatency(op string, seconds float64)     {}

func event(sym string) *models.SnapshotEvent {
	return &models.SnapshotEvent{
		Symbol:    sym,
		Timestamp: time.Now().Unix(),
		Fields:    models.MarketSnapshot{"close": 1.0},
	}
}

func TestPipelineRejectsInvalidEvents(t *testing.T) {
	proc := &countingProc{}
	p := NewSnapshotPipeline(proc, noopMetrics{})

	if err := p.Process(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil event")
	}
	if err := p.Process(context.Background(), &models.SnapshotEvent{Symbol: "", Timestamp: 1}); err == nil {
		t.Fatalf("expected error for empty symbol")
	}
	ev := event("EURUSD")
	ev.Fields = nil
	if err := p.Process(context.Background(), ev); err == nil {
		t.Fatalf("expected error for empty fields")
	}
	if proc.calls != 0 {
		t.Fatalf("invalid events must not reach downstream, got %d", proc.calls)
	}
}

func TestPipelineThrottlesPerSymbol(t *testing.T) {
	proc := &countingProc{}
	p := NewSnapshotPipeline(proc, noopMetrics{}, WithMaxRPS(1))

	if err := p.Process(context.Background(), event("EURUSD")); err != nil {
		t.Fatalf("first event: %v", err)
	}
	// immediate second event for the same symbol is dropped silently
	if err := p.Process(context.Background(), event("EURUSD")); err != nil {
		t.Fatalf("throttled event should not error: %v", err)
	}
	if proc.calls != 1 {
		t.Fatalf("expected 1 downstream call, got %d", proc.calls)
	}

	// other symbols are not affected
	if err := p.Process(context.Background(), event("GBPUSD")); err != nil {
		t.Fatalf("other symbol: %v", err)
	}
	if proc.calls != 2 {
		t.Fatalf("expected 2 downstream calls, got %d", proc.calls)
	}
}

func TestPipelineBuffersOnDownstreamFailure(t *testing.T) {
	proc := &countingProc{fail: true}
	p := NewSnapshotPipeline(proc, noopMetrics{}, WithBufferSize(4))

	if err := p.Process(context.Background(), event("EURUSD")); err == nil {
		t.Fatalf("expected downstream error")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("expected event buffered, got %d", len(p.bufCh))
	}
}
