// Package publisher delivers resolver-emitted events to Kafka.
package publisher

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"example.com/exerciseresolver/internal/events"
)

// Publisher emits resolution events. Implementations must be safe for
// concurrent use; resolution workers publish from multiple goroutines.
type Publisher interface {
	PublishExerciseResolved(ctx context.Context, evt events.ExerciseResolved) error
}

// Noop discards every event. Used when no brokers are configured.
type Noop struct{}

// PublishExerciseResolved does nothing.
func (Noop) PublishExerciseResolved(context.Context, events.ExerciseResolved) error { return nil }

// Kafka publishes resolution events to a single topic.
type Kafka struct {
	writer *kafka.Writer
}

// NewKafka constructs a Kafka publisher for the topic.
func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
	}
}

// PublishExerciseResolved writes one exercise.resolved record, keyed by
// slug so updates for one exercise stay on one partition.
func (p *Kafka) PublishExerciseResolved(ctx context.Context, evt events.ExerciseResolved) error {
	msg, err := resolvedMessage(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close releases the writer.
func (p *Kafka) Close() error {
	return p.writer.Close()
}

func resolvedMessage(evt events.ExerciseResolved) (kafka.Message, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(evt.Slug),
		Value: payload,
		Time:  evt.ResolvedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("exercise.resolved")},
		},
	}, nil
}

var _ Publisher = (*Kafka)(nil)
var _ Publisher = Noop{}
