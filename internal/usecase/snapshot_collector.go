package usecase

import (
	"context"

	"SigPull/internal/domain/models"
	drepo "SigPull/internal/domain/repository"
	mid "SigPull/internal/middleware"
)

// SnapshotCollector collects field updates from the snapshot stream and
// processes them.
type SnapshotCollector struct {
	stream  drepo.SnapshotStream
	proc    *EventProcessor
	metrics drepo.Metrics
	pipe    *mid.SnapshotPipeline
}

// NewSnapshotCollector creates a new SnapshotCollector instance.
func NewSnapshotCollector(stream drepo.SnapshotStream, proc *EventProcessor, metrics drepo.Metrics, pipe *mid.SnapshotPipeline) *SnapshotCollector {
	return &SnapshotCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the snapshot stream is connected.
func (c *SnapshotCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *SnapshotCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	evCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, evCh, errCh)
	return nil
}

func (c *SnapshotCollector) consume(ctx context.Context, evCh <-chan *models.SnapshotEvent, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case ev := <-evCh:
			if ev == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, ev)
			} else {
				_ = c.proc.Process(ctx, ev)
			}
		}
	}
}

func (c *SnapshotCollector) Stop() error { return c.stream.Close() }

// Shutdown stops the pipeline and closes the stream.
func (c *SnapshotCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
