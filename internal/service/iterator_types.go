package service

import (
	"context"

	"github.com/segmentio/kafka-go"

	"debris/models"
)

// MessageIterator defines the contract for consuming messages from a Kafka topic.
// It is used by the service's Iterator to abstract away the details of the
// underlying Kafka consumer.
//
// Implementations are responsible for the lifecycle of the consumer connection.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages. The channel
	// is closed by the implementation when the consumer is stopped or the
	// underlying source is exhausted.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been successfully processed.
	// The provided context should be used for cancellation and deadlines.
	// Implementations can choose to make this a no-op if using auto-commit
	// mechanisms. An error is returned if the commit fails.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc defines a function signature for loading and decoding an object
// of type T from an object store like S3 or MinIO.
//
// It is called by the service's Iterator for each area event that references
// an export. Implementations should be side-effect-free (read-only) and must
// honor the provided context for cancellation and timeouts.
type LoaderFunc[T any] func(ctx context.Context, bucket, key string) (T, error)

// FetchedObject pairs a decoded export with the area event that announced
// it. For failed areas Data is the zero value of T.
type FetchedObject[T any] struct {
	// Data is the decoded export, loaded from the object store.
	Data T
	// Event is the area event that triggered the fetch.
	Event models.AreaEvent
}
