package usecase

import (
	"context"
	"encoding/json"

	"SigPull/internal/domain/models"
	drepo "SigPull/internal/domain/repository"
	pkgkafka "SigPull/pkg/kafka"
)

// KafkaSnapshotsHandler consumes externally produced snapshot messages and
// feeds them through the same event processor as the WebSocket stream.
type KafkaSnapshotsHandler struct {
	topic   string
	proc    *EventProcessor
	metrics drepo.Metrics
}

func NewKafkaSnapshotsHandler(topic string, proc *EventProcessor, metrics drepo.Metrics) *KafkaSnapshotsHandler {
	return &KafkaSnapshotsHandler{topic: topic, proc: proc, metrics: metrics}
}

func (h *KafkaSnapshotsHandler) Topic() string { return h.topic }

// incoming message schema: {symbol, t, fields}
func (h *KafkaSnapshotsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Symbol string                 `json:"symbol"`
		T      int64                  `json:"t"`
		Fields map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.T > 1e11 { // ms
		m.T = m.T / 1000
	}

	err := h.proc.Process(ctx, &models.SnapshotEvent{
		Symbol:    m.Symbol,
		Timestamp: m.T,
		Fields:    models.MarketSnapshot(m.Fields),
	})
	if err != nil {
		h.metrics.RecordError("consumer_process")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaSnapshotsHandler)(nil)
