package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"debris/internal/env"
	"debris/internal/storage"
	"debris/pkg/graceful"
)

// Fetches analysis-ready Maxar scenes for a hurricane event from the public
// open-data bucket, for running the detector against archival imagery.
func main() {
	env.LoadEnv()

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	event := env.GetEnv("IMAGERY_EVENT", "milton")
	max := env.GetInt("IMAGERY_MAX", 10)
	dir := filepath.Join(env.GetEnv("OUTPUT_DIR", "./debris_output"), "maxar", event)

	s3Service, err := storage.NewOpenDataService(storage.OpenDataEndpoint)
	if err != nil {
		log.Fatal(err)
	}

	prefix := storage.EventPrefix(event) + env.GetEnv("IMAGERY_PREFIX", "")
	start := time.Now()
	fmt.Printf("Listing up to %d scenes under %s...\n", max, prefix)

	objects, err := s3Service.ListImagery(ctx, storage.OpenDataBucket, prefix, max)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Found %d scenes\n", len(objects))

	var fetched int
	for _, key := range objects {
		if ctx.Err() != nil {
			break
		}
		dest := filepath.Join(dir, filepath.Base(key))
		if err := s3Service.FetchImagery(ctx, storage.OpenDataBucket, key, dest); err != nil {
			log.Printf("Fetching %s: %v", key, err)
			continue
		}
		fetched++
		fmt.Println(dest)
	}

	fmt.Printf("\nFetched %d of %d scenes, took %s\n", fetched, len(objects), time.Since(start))
}
