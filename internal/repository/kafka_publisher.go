package repository

import (
	"context"

	"SigPull/internal/domain/models"
	"SigPull/internal/domain/repository"
	pkgkafka "SigPull/pkg/kafka"
)

// KafkaHistory publishes scan results to Kafka. Each symbol analysis goes
// out keyed by its symbol so downstream consumers see a stable partition per
// instrument; the batch summary goes to a sibling topic.
type KafkaHistory struct {
	producer     *pkgkafka.Producer
	topic        string
	summaryTopic string
}

// NewKafkaHistory creates a Kafka history sink.
func NewKafkaHistory(producer *pkgkafka.Producer, topic, summaryTopic string) *KafkaHistory {
	if summaryTopic == "" {
		summaryTopic = topic + ".summary"
	}
	return &KafkaHistory{producer: producer, topic: topic, summaryTopic: summaryTopic}
}

func (p *KafkaHistory) Init(ctx context.Context) error { return nil }

func (p *KafkaHistory) Store(ctx context.Context, r *models.ScanResult) error {
	if r == nil {
		return nil
	}
	if len(r.Symbols) > 0 {
		msgs := make([]pkgkafka.Message, len(r.Symbols))
		for i, a := range r.Symbols {
			msgs[i] = pkgkafka.Message{Key: []byte(a.Symbol), Value: a}
		}
		if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
			return err
		}
	}
	return p.producer.Publish(ctx, p.summaryTopic, nil, r.Summary)
}

// Health is a no-op; the producer surfaces broker errors on publish.
func (p *KafkaHistory) Health(ctx context.Context) error { return nil }

func (p *KafkaHistory) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

var _ repository.HistorySink = (*KafkaHistory)(nil)
