package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"debris/internal/catalog"
	"debris/internal/keys"
	"debris/internal/storage"
	"debris/models"
	"debris/pkg/kafkaclient"
)

// Notifier broadcasts one finished area. Notifier failures are warnings:
// the scan itself is already on disk.
type Notifier interface {
	Notify(ctx context.Context, event models.AreaEvent) error
}

type eventSink interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Publisher emits area events to a Kafka topic, keyed by area so events for
// one area stay ordered.
type Publisher struct {
	sink eventSink
}

func NewPublisher(producer *kafkaclient.KafkaProducer) *Publisher {
	return &Publisher{sink: producer}
}

func (p *Publisher) Notify(ctx context.Context, event models.AreaEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	return p.sink.Publish(ctx, catalog.Area{Name: event.Area}.Slug(), value)
}

type exportStore interface {
	StoreExportsFromChannel(ctx context.Context, bucketName string, files <-chan storage.ExportFile) int64
}

// Uploader copies a finished area's outputs into the results bucket.
type Uploader struct {
	store  exportStore
	bucket string
}

func NewUploader(store *storage.S3Service, bucket string) *Uploader {
	return &Uploader{store: store, bucket: bucket}
}

func (u *Uploader) Notify(ctx context.Context, event models.AreaEvent) error {
	if len(event.Outputs) == 0 {
		return nil
	}

	slug := catalog.Area{Name: event.Area}.Slug()
	files := make(chan storage.ExportFile)
	go func() {
		defer close(files)
		for _, path := range event.Outputs {
			files <- storage.ExportFile{
				Key:  keys.ExportObject(event.RunID, slug, filepath.Base(path)),
				Path: path,
			}
		}
	}()

	stored := u.store.StoreExportsFromChannel(ctx, u.bucket, files)
	if stored < int64(len(event.Outputs)) {
		return fmt.Errorf("stored %d of %d outputs for %s", stored, len(event.Outputs), event.Area)
	}
	return nil
}
