// Package kafka publishes order-changed events to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/twmb/franz-go/pkg/kgo"
)

const schemaVersion = "1.0"

var _ ports.EventPublisher = (*OrderChangedPublisher)(nil)

// OrderChangedPublisher writes one record per event, keyed by order id so all
// events of an order land on the same partition.
type OrderChangedPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewOrderChangedPublisher connects to the comma-separated brokers list.
func NewOrderChangedPublisher(brokers, topic string, logger *slog.Logger) (*OrderChangedPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProducerLinger(10*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &OrderChangedPublisher{
		client: client,
		topic:  topic,
		logger: logger.With("component", "kafka-publisher"),
	}, nil
}

// Publish blocks until the broker acknowledges the record or ctx is done.
func (p *OrderChangedPublisher) Publish(ctx context.Context, event ports.OrderChangedEvent) error {
	record, err := newRecord(p.topic, event)
	if err != nil {
		return err
	}

	if err = p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s for order %d: %w", event.Type, event.OrderID.Int64(), err)
	}

	p.logger.DebugContext(ctx, "order event produced",
		"event_type", string(event.Type),
		"order_id", event.OrderID.Int64(),
		"partition", record.Partition,
		"offset", record.Offset,
	)
	return nil
}

// Close releases the client connections.
func (p *OrderChangedPublisher) Close() {
	p.client.Close()
}

// message is the JSON value of an order-changed record.
type message struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	OrderID    int64     `json:"orderId"`
	UserID     int64     `json:"userId,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newRecord(topic string, event ports.OrderChangedEvent) (*kgo.Record, error) {
	value, err := json.Marshal(message{
		EventID:    event.ID,
		EventType:  string(event.Type),
		OrderID:    event.OrderID.Int64(),
		UserID:     event.UserID.Int64(),
		Status:     event.Status,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order event: %w", err)
	}

	return &kgo.Record{
		Topic: topic,
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "version", Value: []byte(schemaVersion)},
		},
		Timestamp: event.OccurredAt,
	}, nil
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct {
	logger *slog.Logger
}

// NewNopPublisher creates a publisher that drops every event, logging it at DEBUG.
func NewNopPublisher(logger *slog.Logger) NopPublisher {
	return NopPublisher{logger: logger.With("component", "kafka-publisher")}
}

// Publish drops event.
func (p NopPublisher) Publish(ctx context.Context, event ports.OrderChangedEvent) error {
	p.logger.DebugContext(ctx, "kafka disabled, dropping order event",
		"event_type", string(event.Type),
		"order_id", event.OrderID.Int64(),
	)
	return nil
}
