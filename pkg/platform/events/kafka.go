package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"foncier/internal/contract/models"
)

// KafkaSink publishes domain events to a Kafka topic. Records are keyed by
// event name so consumers see per-name ordering.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects to the given brokers. The caller owns the sink's
// lifecycle and must Close it on shutdown.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

// wireEvent is the JSON envelope produced to the topic.
type wireEvent struct {
	Name      string          `json:"name"`
	TxRef     string          `json:"txRef,omitempty"`
	Timestamp string          `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// marshalWireEvent builds the envelope bytes. Timestamps use the same
// canonical layout as persisted records.
func marshalWireEvent(event Event) ([]byte, error) {
	value, err := json.Marshal(wireEvent{
		Name:      event.Name,
		TxRef:     event.TxRef,
		Timestamp: event.Timestamp.UTC().Format(models.TimeLayout),
		Payload:   event.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return value, nil
}

func (s *KafkaSink) Publish(ctx context.Context, event Event) error {
	value, err := marshalWireEvent(event)
	if err != nil {
		return err
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Name),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce event %s: %w", event.Name, err)
	}
	return nil
}

func (s *KafkaSink) Close() {
	s.client.Close()
}
