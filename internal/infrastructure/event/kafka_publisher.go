package event

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/clinova/billing-service/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher implements Publisher on top of a Kafka topic. The writer is
// created lazily on first publish; if the broker is unreachable the publish
// simply reports false and the next call retries the same lazy-init path.
// There is no reconnect logic beyond that.
type KafkaPublisher struct {
	cfg    config.KafkaConfig
	source string
	logger *zap.Logger

	mu     sync.Mutex
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the configured topic. The
// source name is stamped into every event envelope.
func NewKafkaPublisher(cfg config.KafkaConfig, source string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		cfg:    cfg,
		source: source,
		logger: logger.Named("publisher"),
	}
}

// Publish serializes the envelope and writes it to the topic, keyed by the
// payload's partition key. A bounded wait (the configured write timeout,
// 10s by default) applies to broker acknowledgment; any failure yields
// false and never an error to the caller.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType, resourceType string, payload any) bool {
	envelope := NewEnvelope(p.source, eventType, resourceType, payload)

	value, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("Failed to serialize event", zap.String("event_type", eventType), zap.Error(err))
		return false
	}

	var key []byte
	if keyer, ok := payload.(PartitionKeyer); ok {
		key = []byte(keyer.PartitionKey())
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.cfg.WriteTimeout)
	defer cancel()

	err = p.getWriter().WriteMessages(writeCtx, kafka.Message{
		Key:   key,
		Value: value,
	})
	if err != nil {
		p.logger.Warn("Failed to publish event",
			zap.String("event_type", eventType),
			zap.String("event_id", envelope.EventID),
			zap.Error(err),
		)
		return false
	}

	p.logger.Info("Event published",
		zap.String("event_type", eventType),
		zap.String("event_id", envelope.EventID),
		zap.ByteString("key", key),
	)
	return true
}

// Close closes the underlying Kafka writer if one was created
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *KafkaPublisher) getWriter() *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writer == nil {
		p.writer = &kafka.Writer{
			Addr:         kafka.TCP(p.cfg.Brokers...),
			Topic:        p.cfg.Topic,
			Balancer:     &kafka.Hash{},
			WriteTimeout: p.cfg.WriteTimeout,
			RequiredAcks: kafka.RequireOne,
		}
	}
	return p.writer
}
