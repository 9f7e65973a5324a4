package kafkaclient

import (
	"context"
	"log"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines the interface for a Kafka message writer.
// This allows for easy mocking in unit tests.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer publishes messages to a single topic.
type KafkaProducer struct {
	writer KafkaWriter
}

// NewKafkaProducer creates a producer for the given topic.
func NewKafkaProducer(topic, broker string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{writer: writer}
}

// Publish writes one message. The key controls partition assignment, so
// messages sharing a key stay ordered.
func (kp *KafkaProducer) Publish(ctx context.Context, key string, value []byte) error {
	return kp.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// Close shuts the producer down, flushing any buffered messages.
func (kp *KafkaProducer) Close() {
	if err := kp.writer.Close(); err != nil {
		log.Printf("Failed to close Kafka writer: %v", err)
	}
}
