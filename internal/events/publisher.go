package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"weather-api/internal/models"

	kafkago "github.com/segmentio/kafka-go"
)

type EventType string

const (
	RecordCreated EventType = "weather_record.created"
	RecordUpdated EventType = "weather_record.updated"
	RecordDeleted EventType = "weather_record.deleted"
)

// RecordEvent describes a change to a weather record. Record is nil for deletions.
type RecordEvent struct {
	Type       EventType             `json:"type"`
	RecordID   uint                  `json:"recordId"`
	Record     *models.WeatherRecord `json:"record,omitempty"`
	RequestID  string                `json:"requestId,omitempty"`
	OccurredAt time.Time             `json:"occurredAt"`
}

// Publisher delivers record change events.
type Publisher interface {
	Publish(ctx context.Context, event RecordEvent) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic keyed by record ID.
type KafkaPublisher struct {
	writer *kafkago.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		WriteTimeout: 5 * time.Second,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event RecordEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(event RecordEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.RecordID), 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "occurred_at", Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event RecordEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
