package applystream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/mrled/palcheck/internal/adapter/dynamostream"
	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/repository/memrepo"
)

// View is the published document the stream is applied to
type View interface {
	Load(ctx context.Context) (*memrepo.MemoryRepository, error)
	Save(ctx context.Context, records []*model.CheckRecord) error
}

// Service applies DynamoDB stream batches to the published view
type Service struct {
	view View
}

// New creates a new applystream service
func New(view View) *Service {
	return &Service{view: view}
}

// ProcessStreamBatch loads the view, applies every change in the batch, and saves it back.
//
// The read-modify-write is only safe with a single concurrent invocation
// (reservedConcurrentExecutions=1 on the Lambda function).
func (s *Service) ProcessStreamBatch(ctx context.Context, records []events.DynamoDBEventRecord) error {
	slog.Info("Processing batch from DynamoDB stream", slog.Int("record_count", len(records)))

	repo := s.loadRepository(ctx)

	processed := 0
	for _, record := range records {
		if err := s.processRecord(ctx, repo, record); err != nil {
			slog.Error("Error processing record",
				slog.String("event_id", record.EventID),
				slog.String("error", err.Error()))
			continue
		}
		processed++
	}

	all, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	if err := s.view.Save(ctx, all); err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}

	slog.Info("Successfully processed stream batch",
		slog.Int("processed", processed),
		slog.Int("total", len(records)),
		slog.Int("view_record_count", len(all)))
	return nil
}

// loadRepository starts from an empty repository when the view is missing or unreadable
func (s *Service) loadRepository(ctx context.Context) *memrepo.MemoryRepository {
	repo, err := s.view.Load(ctx)
	if err != nil {
		slog.Warn("Error loading view, starting with empty repository", slog.String("error", err.Error()))
		return memrepo.NewMemoryRepository()
	}
	return repo
}

func (s *Service) processRecord(ctx context.Context, repo *memrepo.MemoryRepository, record events.DynamoDBEventRecord) error {
	slog.Debug("Processing record",
		slog.String("event_id", record.EventID),
		slog.String("event_name", record.EventName))

	switch record.EventName {
	case "INSERT", "MODIFY":
		check, err := dynamostream.ConvertToCheckRecord(record.Change.NewImage)
		if err != nil {
			return fmt.Errorf("failed to convert stream record: %w", err)
		}
		// The table's revision wins over the view's counter
		if err := repo.Put(ctx, check); err != nil {
			return fmt.Errorf("failed to store record: %w", err)
		}
		return nil

	case "REMOVE":
		id := dynamostream.ExtractStringAttribute(record.Change.Keys, "pk")
		if id == "" {
			return fmt.Errorf("missing required key: pk")
		}
		err := repo.Delete(ctx, id)
		if errors.Is(err, model.ErrNotFound) {
			slog.Debug("Record not found for deletion", slog.String("id", id))
			return nil
		}
		return err

	default:
		return fmt.Errorf("unknown event type: %s", record.EventName)
	}
}
