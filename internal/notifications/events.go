package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// FanoutEvent is the wire shape published for every stored notification.
type FanoutEvent struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	ActorID     uint      `json:"actor_id"`
	RecipientID uint      `json:"recipient_id"`
	SubjectType string    `json:"subject_type"`
	SubjectID   uint      `json:"subject_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewFanoutEvent builds an event with a fresh identifier and timestamp.
func NewFanoutEvent(kind string, actorID, recipientID uint, subjectType string, subjectID uint) FanoutEvent {
	return FanoutEvent{
		ID:          uuid.NewString(),
		Kind:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		CreatedAt:   time.Now().UTC(),
	}
}

// Encode returns the JSON payload for publication.
func (e FanoutEvent) Encode() (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal fanout event: %w", err)
	}
	return string(raw), nil
}

// EventStream writes fan-out events to a Kafka topic for downstream
// consumers. A nil stream discards every publish.
type EventStream struct {
	writer *kafka.Writer
}

// NewEventStream creates a Kafka-backed stream. Returns nil when no
// brokers are configured, which keeps publishing a no-op.
func NewEventStream(brokers []string, topic string) *EventStream {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &EventStream{writer: w}
}

// Publish writes an event keyed by recipient so per-user ordering holds.
func (s *EventStream) Publish(ctx context.Context, event FanoutEvent) error {
	if s == nil || s.writer == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal fanout event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", event.RecipientID)),
		Value: payload,
	}
	return s.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the underlying writer.
func (s *EventStream) Close() error {
	if s == nil || s.writer == nil {
		return nil
	}
	return s.writer.Close()
}
