package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/pkg/circuitbreaker"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DefaultTopic receives one message per shipped manifest
const DefaultTopic = "shipment-manifests"

// MessageWriter is the part of *kafka.Writer the publisher needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ManifestPublisher sends manifests to Kafka keyed by manifest ID.
// Writes go through a circuit breaker so an unreachable broker does not slow
// down every checkout.
type ManifestPublisher struct {
	timeout time.Duration
	writer  MessageWriter
	breaker *circuitbreaker.Breaker
	logger  *zap.Logger
}

type manifestMessage struct {
	ManifestID    string                 `json:"manifest_id"`
	Groups        []domain.ManifestGroup `json:"groups"`
	TotalWeight   string                 `json:"total_weight_grams"`
	TotalWeightKg string                 `json:"total_weight_kg"`
	PublishedAt   time.Time              `json:"published_at"`
}

func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

func NewManifestPublisher(writer MessageWriter, breaker *circuitbreaker.Breaker, timeout time.Duration, logger *zap.Logger) *ManifestPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManifestPublisher{
		timeout: timeout,
		writer:  writer,
		breaker: breaker,
		logger:  logger,
	}
}

func (p *ManifestPublisher) Publish(ctx context.Context, manifest *domain.Manifest) error {
	payload, err := json.Marshal(manifestMessage{
		ManifestID:    manifest.ID,
		Groups:        manifest.Groups,
		TotalWeight:   manifest.TotalWeight.String(),
		TotalWeightKg: manifest.TotalKilograms().StringFixed(1),
		PublishedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(manifest.ID),
		Value: payload,
	}

	write := func() error {
		writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.writer.WriteMessages(writeCtx, msg)
	}

	if p.breaker != nil {
		err = p.breaker.Do(write)
	} else {
		err = write()
	}
	if err != nil {
		return fmt.Errorf("failed to publish manifest %s: %w", manifest.ID, err)
	}

	p.logger.Debug("manifest published", zap.String("manifest_id", manifest.ID))
	return nil
}

func (p *ManifestPublisher) Close() error {
	return p.writer.Close()
}
