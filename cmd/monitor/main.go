package main

import (
	"context"
	"fmt"
	"log"

	"debris/internal/env"
	"debris/internal/service"
	"debris/internal/storage"
	"debris/models"
	"debris/pkg/geojson"
	"debris/pkg/graceful"
	"debris/pkg/kafkaclient"
)

func main() {
	env.LoadEnv()

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	kafkaBroker := env.MustGetEnv("KAFKA_BROKER")
	kafkaTopic := env.MustGetEnv("KAFKA_TOPIC")
	kafkaGroupID := env.MustGetEnv("KAFKA_GROUP_ID")

	log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s", kafkaBroker, kafkaTopic, kafkaGroupID)

	consumer, err := kafkaclient.NewKafkaConsumer(kafkaTopic, kafkaGroupID, kafkaBroker)
	if err != nil {
		log.Fatalf("Failed to create kafka consumer %v", err)
	}

	s3Service, err := storage.NewS3Service()
	if err != nil {
		log.Fatal(err)
	}

	consumer.StartConsuming(ctx)
	iterator := service.NewIterator(consumer.NewIterator(), func(ctx context.Context, bucket, key string) (*geojson.FeatureCollection, error) {
		return s3Service.FetchCollection(ctx, bucket, key)
	})
	for obj := range iterator.Objects(ctx) {
		event := obj.Event
		switch {
		case event.State == models.StateFailed:
			log.Printf("Area %s failed in run %s: %s", event.Area, event.RunID, event.Error)
		case obj.Data != nil:
			fmt.Printf("%s: %d debris piles exported to %s/%s\n", event.Area, len(obj.Data.Features), event.Bucket, event.ObjectKey)
		default:
			fmt.Printf("%s: %s with %d detections\n", event.Area, event.State, event.Detections)
		}
	}

	consumer.Stop()
	log.Println("Main method finished, application exiting.")
}
