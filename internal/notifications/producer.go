package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"cinebook/internal/shared/config"
	"cinebook/pkg/logger"
)

// EventProducer publishes booking lifecycle events to the event stream.
type EventProducer interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error
	Close() error
}

// kafkaEventProducer publishes through a sarama sync producer.
type kafkaEventProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaEventProducer creates a producer against the configured brokers.
// Callers should use NewEventProducer, which handles the disabled case.
func NewKafkaEventProducer(cfg config.KafkaConfig, log *logger.Logger) (EventProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps per-booking ordering.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaEventProducer{
		producer: producer,
		topic:    cfg.Topic,
		log:      log,
	}, nil
}

// NewEventProducer returns a Kafka producer when brokers are configured and a
// no-op producer otherwise, so callers never branch on the config.
func NewEventProducer(cfg config.KafkaConfig, log *logger.Logger) (EventProducer, error) {
	if len(cfg.Brokers) == 0 {
		return &noopEventProducer{}, nil
	}
	return NewKafkaEventProducer(cfg, log)
}

func (p *kafkaEventProducer) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	payload, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	p.log.InfoWithContext(ctx, "booking event published", map[string]interface{}{
		"type":       event.Type,
		"booking_id": event.BookingID,
		"partition":  partition,
		"offset":     offset,
	})
	return nil
}

func (p *kafkaEventProducer) Close() error {
	return p.producer.Close()
}

// noopEventProducer drops events when the stream is disabled.
type noopEventProducer struct{}

func (noopEventProducer) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	return nil
}

func (noopEventProducer) Close() error { return nil }
