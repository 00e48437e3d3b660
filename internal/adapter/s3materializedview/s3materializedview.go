package s3materializedview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/repository/memrepo"
)

// API is the subset of the S3 client used by the view
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3MaterializedView publishes check records as a single JSON document in S3
type S3MaterializedView struct {
	s3Client     API
	bucketName   string
	key          string
	contentType  string
	cacheControl string
}

// New creates a new S3MaterializedView adapter
func New(s3Client API, bucketName, key string) *S3MaterializedView {
	return &S3MaterializedView{
		s3Client:     s3Client,
		bucketName:   bucketName,
		key:          key,
		contentType:  "application/json",
		cacheControl: "max-age=60",
	}
}

// Load reads the published document into a new MemoryRepository
func (s *S3MaterializedView) Load(ctx context.Context) (*memrepo.MemoryRepository, error) {
	result, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	repo, err := memrepo.NewMemoryRepositoryFromJsonString(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create repository from JSON: %w", err)
	}

	return repo, nil
}

// Save uploads records, newest first, in the same JSON shape the memory repository writes
func (s *S3MaterializedView) Save(ctx context.Context, records []*model.CheckRecord) error {
	sorted := make([]*model.CheckRecord, len(records))
	copy(sorted, records)
	model.SortRecords(sorted, string(model.SortByTime))

	jsonData, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucketName),
		Key:          aws.String(s.key),
		Body:         bytes.NewReader(jsonData),
		ContentType:  aws.String(s.contentType),
		CacheControl: aws.String(s.cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	slog.Info("Successfully updated S3 data file",
		slog.String("bucket", s.bucketName),
		slog.String("key", s.key),
		slog.Int("record_count", len(records)))
	return nil
}
