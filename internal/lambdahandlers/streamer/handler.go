package streamer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"

	"github.com/mrled/palcheck/internal/adapter/s3materializedview"
	"github.com/mrled/palcheck/internal/awsclient"
	"github.com/mrled/palcheck/internal/logger"
	"github.com/mrled/palcheck/internal/service/applystream"
)

// DefaultDataKey is the S3 key written when S3_DATA_KEY is unset
const DefaultDataKey = "checks.json"

// Handler holds the dependencies for the streamer Lambda handler
type Handler struct {
	streamerService *applystream.Service
	log             *slog.Logger
}

// New creates a handler around an existing service
func New(service *applystream.Service, log *slog.Logger) *Handler {
	return &Handler{streamerService: service, log: log}
}

// NewHandler creates a new streamer handler with dependencies built from the environment
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "streamer")
	logger.SetDefault(log)

	s3Endpoint := os.Getenv("S3_ENDPOINT")
	if s3Endpoint == "" && os.Getenv("AWS_REGION") == "" {
		return nil, fmt.Errorf("AWS_REGION environment variable is required when S3_ENDPOINT is not set")
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET environment variable is required")
	}

	key := os.Getenv("S3_DATA_KEY")
	if key == "" {
		key = DefaultDataKey
	}
	log.Info("Using S3 view", slog.String("bucket", bucket), slog.String("key", key))

	cfg, err := awsclient.LoadConfig(context.Background())
	if err != nil {
		log.Error("Failed to load AWS config", slog.String("error", err.Error()))
		return nil, err
	}

	view := s3materializedview.New(awsclient.NewS3(cfg, s3Endpoint), bucket, key)
	return New(applystream.New(view), log), nil
}

// Handle processes DynamoDB stream events
func (h *Handler) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	err := h.streamerService.ProcessStreamBatch(ctx, event.Records)
	if err != nil {
		h.log.Error("Stream processing failed",
			slog.String("error", err.Error()),
			slog.Bool("notify", true))
	}
	return err
}
