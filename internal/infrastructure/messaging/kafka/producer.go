// Package kafka publishes grounding pipeline events for downstream consumers
// (curation dashboards, assembly pipelines).
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/biotext/bioground/internal/config"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
)

// Topics.
const (
	TopicMappingCompleted = "bioground.mapping.completed"
	TopicStatementDropped = "bioground.statement.dropped"
)

// MappingCompletedEvent summarises one batch-mapping run.
type MappingCompletedEvent struct {
	BatchID   string    `json:"batch_id"`
	Total     int       `json:"total"`
	Mapped    int       `json:"mapped"`
	Dropped   int       `json:"dropped"`
	Timestamp time.Time `json:"timestamp"`
}

// StatementDroppedEvent records one statement discarded by the no-grounding
// sentinel, with enough context for curators to review the entry.
type StatementDroppedEvent struct {
	BatchID     string    `json:"batch_id"`
	StatementID string    `json:"statement_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// EventProducer publishes pipeline events.  Implemented by Producer below and
// by NopProducer for deployments without a broker.
type EventProducer interface {
	PublishMappingCompleted(ctx context.Context, ev MappingCompletedEvent) error
	PublishStatementDropped(ctx context.Context, ev StatementDroppedEvent) error
	Close() error
}

// Producer is the kafka-go backed EventProducer.
type Producer struct {
	writer *kafka.Writer
	log    logging.Logger
}

// NewProducer constructs a Producer for cfg.Brokers.  Topics are addressed
// per message, so one writer serves all event types.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) *Producer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	retries := cfg.ProducerRetries
	if retries <= 0 {
		retries = 3
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.Hash{},
			BatchSize:    batchSize,
			MaxAttempts:  retries,
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		log: log.Named("kafka-producer"),
	}
}

func (p *Producer) publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to serialize event")
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeExternalService, "failed to publish event").WithDetail(topic)
	}
	return nil
}

// PublishMappingCompleted implements EventProducer.
func (p *Producer) PublishMappingCompleted(ctx context.Context, ev MappingCompletedEvent) error {
	return p.publish(ctx, TopicMappingCompleted, ev.BatchID, ev)
}

// PublishStatementDropped implements EventProducer.
func (p *Producer) PublishStatementDropped(ctx context.Context, ev StatementDroppedEvent) error {
	return p.publish(ctx, TopicStatementDropped, ev.BatchID, ev)
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error { return p.writer.Close() }

// NopProducer discards all events.
type NopProducer struct{}

func (NopProducer) PublishMappingCompleted(context.Context, MappingCompletedEvent) error { return nil }
func (NopProducer) PublishStatementDropped(context.Context, StatementDroppedEvent) error { return nil }
func (NopProducer) Close() error                                                         { return nil }

//Personal.AI order the ending
