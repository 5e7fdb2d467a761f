package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/mbsnyc/mbsnyc-api/pkg/metrics"
	"github.com/mbsnyc/mbsnyc-api/pkg/retry"
	"go.uber.org/zap"
)

// KeyPrefix is the object key prefix for archived submissions
const KeyPrefix = "contact-submissions"

// ObjectPutter is the subset of the S3 API the archive needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Record is one archived object
type Record struct {
	ID        string
	CreatedAt time.Time
	Payload   any
}

// StorageClient writes submission snapshots to an S3-compatible bucket
type StorageClient struct {
	s3Client    ObjectPutter
	bucketName  string
	retryConfig retry.Config
}

// NewStorageClient creates an archive client for any S3-compatible endpoint.
// An empty endpoint means AWS S3 itself.
func NewStorageClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) (*StorageClient, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("archive bucket name is required")
	}
	if region == "" {
		region = "us-east-1"
	}

	opts := s3.Options{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	logger.Info("Archive storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return NewStorageClientWithPutter(s3.New(opts), bucketName), nil
}

// NewStorageClientWithPutter builds a client around an existing S3 API implementation
func NewStorageClientWithPutter(putter ObjectPutter, bucketName string) *StorageClient {
	return &StorageClient{
		s3Client:    putter,
		bucketName:  bucketName,
		retryConfig: retry.StorageConfig(),
	}
}

// WithRetryConfig overrides the retry policy
func (s *StorageClient) WithRetryConfig(cfg retry.Config) *StorageClient {
	s.retryConfig = cfg
	return s
}

// ObjectKey returns contact-submissions/YYYY/MM/DD/<id>.json using the UTC date
func ObjectKey(id string, createdAt time.Time) string {
	return fmt.Sprintf("%s/%s/%s.json", KeyPrefix, createdAt.UTC().Format("2006/01/02"), id)
}

// Archive stores rec.Payload as JSON and returns the object key
func (s *StorageClient) Archive(ctx context.Context, rec Record) (string, error) {
	start := time.Now()
	operation := "putObject"
	key := ObjectKey(rec.ID, rec.CreatedAt)

	body, err := json.Marshal(rec.Payload)
	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(metrics.MeasureDuration(start))
		return "", fmt.Errorf("failed to encode archive record: %w", err)
	}

	err = retry.Do(ctx, s.retryConfig, "archive.put_object", func() error {
		_, putErr := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucketName),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		return putErr
	})

	duration := metrics.MeasureDuration(start)
	status := metrics.StatusLabel(err)
	metrics.StorageRequestDuration.WithLabelValues(operation, status).Observe(duration)

	if err != nil {
		logger.LogAPICall("archive_storage", operation, status, duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to archive submission %s: %w", rec.ID, err)
	}

	logger.LogAPICall("archive_storage", operation, status, duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(body)),
	)
	return key, nil
}
