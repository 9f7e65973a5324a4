package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"debris/internal/config"
	"debris/internal/detect"
	"debris/internal/env"
	"debris/internal/export"
	"debris/internal/imagery"
	"debris/internal/runner"
	"debris/internal/storage"
	"debris/pkg/graceful"
	"debris/pkg/kafkaclient"
)

func main() {
	env.LoadEnv()

	cfg, err := config.Load(os.Getenv("MANIFEST"))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	start := time.Now()
	fmt.Printf("Scanning for storm debris in %s imagery at zoom %d...\n", cfg.TileSource, cfg.Zoom)

	client := detect.NewClient(cfg.SegmenterURL)
	deps := runner.Deps{
		Downloader:  imagery.NewDownloader(imagery.Resolve(cfg.TileSource)),
		Detector:    detect.NewService(client),
		Exporter:    export.NewExporter(cfg.OutputDir),
		HealthCheck: client.CheckHealth,
	}

	var producer *kafkaclient.KafkaProducer
	if broker, ok := os.LookupEnv("KAFKA_BROKER"); ok {
		producer = kafkaclient.NewKafkaProducer(env.MustGetEnv("KAFKA_TOPIC"), broker)
		deps.Notifiers = append(deps.Notifiers, runner.NewPublisher(producer))
	}

	if bucket, ok := os.LookupEnv("RESULTS_BUCKET"); ok {
		s3Service, err := storage.NewS3Service()
		if err != nil {
			log.Fatal(err)
		}
		if _, err := s3Service.CreateBucket(ctx, bucket, ""); err != nil {
			log.Fatal(err)
		}
		deps.ResultsBucket = bucket
		deps.Notifiers = append(deps.Notifiers, runner.NewUploader(s3Service, bucket))
	}

	summary, err := runner.NewScanner(cfg, deps).Run(ctx)
	if producer != nil {
		producer.Close()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}

	fmt.Println()
	for _, e := range summary.Events {
		line := fmt.Sprintf("%-20s %-12s %d detections", e.Area, e.State, e.Detections)
		if e.Error != "" {
			line += " (" + e.Error + ")"
		}
		fmt.Println(line)
	}

	fmt.Printf("\nFinished run %s: %d areas done, %d failed, %d skipped, took %s\n",
		summary.RunID, summary.Done, summary.Failed, summary.Skipped, time.Since(start))
	if err != nil || summary.Failed > 0 {
		os.Exit(1)
	}
}
