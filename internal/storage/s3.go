package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"debris/pkg/geojson"
)

// Maxar Open Data archive on AWS. Public bucket, no credentials needed.
const (
	OpenDataEndpoint = "s3.amazonaws.com"
	OpenDataBucket   = "maxar-opendata"
)

// Event archive prefixes within the open-data bucket.
var eventPrefixes = map[string]string{
	"milton": "events/HurricaneMilton-Oct24/",
	"helene": "events/Hurricane-Helene-Sept2024/",
}

// EventPrefix returns the archive prefix for a hurricane event. Unknown
// events fall back to Milton, the most recent one.
func EventPrefix(event string) string {
	if p, ok := eventPrefixes[strings.ToLower(event)]; ok {
		return p
	}
	log.Printf("Unknown event %q, falling back to milton", event)
	return eventPrefixes["milton"]
}

// S3Service is a client for S3-compatible storage. It serves both anonymous
// reads from the public imagery archive and authenticated uploads of run
// results.
type S3Service struct {
	client *minio.Client
}

// NewS3Service connects to the results store using credentials from
// environment variables.
func NewS3Service() (*S3Service, error) {
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if minioEndpoint == "" || minioAccessKey == "" || minioSecretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	minioClient, err := minio.New(minioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioAccessKey, minioSecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", minioEndpoint)
	return &S3Service{client: minioClient}, nil
}

// NewOpenDataService connects to a public bucket anonymously. Empty static
// credentials make every request unsigned.
func NewOpenDataService(endpoint string) (*S3Service, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("", "", ""),
		Secure: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create open-data client: %v", err)
	}
	return &S3Service{client: client}, nil
}

func (s *S3Service) CreateBucket(ctx context.Context, bucketName string, location string) (bool, error) {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, fmt.Errorf("error checking bucket existence: %v", err)
	}
	if !exists {
		err = s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// ListImagery lists GeoTIFF objects under a prefix, up to max keys. A max
// of zero or less means no limit.
func (s *S3Service) ListImagery(ctx context.Context, bucketName, prefix string, max int) ([]string, error) {
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}

	var keys []string
	for object := range s.client.ListObjects(ctx, bucketName, opts) {
		if object.Err != nil {
			return nil, fmt.Errorf("listing %s/%s: %w", bucketName, prefix, object.Err)
		}
		if !strings.HasSuffix(strings.ToLower(object.Key), ".tif") {
			continue
		}
		keys = append(keys, object.Key)
		if max > 0 && len(keys) >= max {
			break
		}
	}
	return keys, nil
}

// FetchImagery downloads a single object to a local file.
func (s *S3Service) FetchImagery(ctx context.Context, bucketName, objectKey, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	if err := s.client.FGetObject(ctx, bucketName, objectKey, dest, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", objectKey, err)
	}
	log.Printf("Fetched %s to %s", objectKey, dest)
	return nil
}

// FetchCollection retrieves an exported GeoJSON object and decodes it.
func (s *S3Service) FetchCollection(ctx context.Context, bucketName, objectKey string) (*geojson.FeatureCollection, error) {
	object, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %v", err)
	}
	defer object.Close()

	// Use json.NewDecoder to stream the GeoJSON directly from the reader.
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(object).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode GeoJSON from stream: %v", err)
	}

	log.Printf("Successfully retrieved collection '%s' from bucket '%s' with %d features", objectKey, bucketName, len(fc.Features))
	return &fc, nil
}

// ExportFile pairs a local run output with its object key.
type ExportFile struct {
	Key  string
	Path string
}

// StoreExportsFromChannel reads run outputs from a channel and uploads each
// one to the given bucket. Failed uploads are logged, not fatal. Returns the
// number of objects stored.
func (s *S3Service) StoreExportsFromChannel(ctx context.Context, bucketName string, files <-chan ExportFile) int64 {
	var (
		wg     sync.WaitGroup
		stored atomic.Int64
	)

	for file := range files {
		wg.Add(1)
		go func(f ExportFile) {
			defer wg.Done()
			if err := s.StoreExport(ctx, bucketName, f.Key, f.Path); err != nil {
				log.Printf("Error storing export '%s': %v", f.Key, err)
				return
			}
			stored.Add(1)
		}(file)
	}

	wg.Wait()
	log.Printf("Finished storing exports in bucket '%s'. Count %d", bucketName, stored.Load())
	return stored.Load()
}

// StoreExport uploads one file. It will not overwrite an object that
// already exists under the same key.
func (s *S3Service) StoreExport(ctx context.Context, bucketName, objectKey, path string) error {
	_, err := s.client.StatObject(ctx, bucketName, objectKey, minio.StatObjectOptions{})
	if err == nil {
		log.Printf("Export '%s' already exists in bucket '%s'. Ignoring write operation.", objectKey, bucketName)
		return nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("failed to check for existing object: %v", err)
	}

	_, err = s.client.FPutObject(ctx, bucketName, objectKey, path,
		minio.PutObjectOptions{ContentType: contentTypeFor(path)})
	if err != nil {
		return fmt.Errorf("failed to store object in S3: %v", err)
	}

	log.Printf("Successfully stored '%s' in bucket '%s'", objectKey, bucketName)
	return nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson":
		return "application/geo+json"
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	case ".prj":
		return "text/plain"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
