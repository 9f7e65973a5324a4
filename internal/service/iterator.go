// Package service provides an Iterator that consumes area events from a
// message source (e.g., Kafka via pkg/kafkaclient) and loads the referenced
// exports from S3/MinIO using a pluggable LoaderFunc.
package service

import (
	"context"
	"encoding/json"
	"log"

	"debris/models"
)

// Iterator consumes messages from a MessageIterator, interprets each message
// as an AreaEvent, loads the referenced export via LoaderFunc when the event
// carries one, and yields FetchedObject items on a channel. It is generic
// over the loaded item type T.
//
// The Iterator does not manage the lifecycle of the underlying message source;
// callers should start/stop their consumer outside and pass in an implementation
// of MessageIterator.
type Iterator[T any] struct {
	msgIterator MessageIterator
	loader      LoaderFunc[T]
}

// NewIterator constructs an Iterator for the provided message source and
// export loader.
func NewIterator[T any](iterator MessageIterator, loader LoaderFunc[T]) *Iterator[T] {
	return &Iterator[T]{
		msgIterator: iterator,
		loader:      loader,
	}
}

// Objects starts a goroutine that:
//  1. Receives messages from the underlying MessageIterator
//  2. Deserializes each message as an AreaEvent
//  3. Loads the referenced export using the provided LoaderFunc, when the
//     event names a bucket and object key
//  4. Emits a FetchedObject[T] on the returned channel
//  5. Attempts to commit the message offset after successful processing
//
// Failed areas carry no export, so they are emitted with zero Data. Errors
// during JSON deserialization or export loading are logged and the message is
// skipped; processing continues for subsequent messages. The output channel
// is closed when the underlying Messages() channel is closed.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *FetchedObject[T] {
	out := make(chan *FetchedObject[T])
	go func() {
		defer close(out)

		for msg := range it.msgIterator.Messages() {
			var event models.AreaEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("Error unmarshalling JSON: %v", err)
				continue
			}

			var data T
			if event.Bucket != "" && event.ObjectKey != "" {
				loaded, err := it.loader(ctx, event.Bucket, event.ObjectKey)
				if err != nil {
					log.Printf("Error loading export: %v", err)
					continue
				}
				data = loaded
			}

			out <- &FetchedObject[T]{Data: data, Event: event}

			if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
				log.Printf("Failed to commit offset: %v", err)
			}
		}
	}()
	return out
}
