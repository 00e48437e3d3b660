package check

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mrled/palcheck/internal/input"
	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/palindrome"
)

// CheckUseCase bounds an input, checks it and optionally records the result
type CheckUseCase struct {
	repo  model.CheckRepository
	limit input.Limit
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// Option customizes a CheckUseCase
type Option func(*CheckUseCase)

// WithRepository records every check in repo
func WithRepository(repo model.CheckRepository) Option {
	return func(uc *CheckUseCase) { uc.repo = repo }
}

// WithLogger sets the logger used for check events
func WithLogger(log *slog.Logger) Option {
	return func(uc *CheckUseCase) { uc.log = log }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(uc *CheckUseCase) { uc.now = now }
}

// WithIDGenerator replaces the random UUID generator
func WithIDGenerator(newID func() string) Option {
	return func(uc *CheckUseCase) { uc.newID = newID }
}

// NewCheckUseCase creates a new check use case. The limit's Unit is the
// default unit for checks that do not name one.
func NewCheckUseCase(limit input.Limit, opts ...Option) *CheckUseCase {
	uc := &CheckUseCase{
		limit: limit,
		log:   slog.Default(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CheckResult contains the outcome of one check
type CheckResult struct {
	Record    *model.CheckRecord
	Truncated bool
	Stored    bool
}

// Check applies the input limit to raw, checks it in unit (the use case's
// default unit when empty) and stores the record if a repository is set.
// When storing fails the result is still returned together with the error.
func (uc *CheckUseCase) Check(ctx context.Context, raw string, unit palindrome.Unit, source string) (*CheckResult, error) {
	if unit == "" {
		unit = uc.limit.Unit
	}
	limit := uc.limit
	limit.Unit = unit

	candidate, err := limit.Apply(raw)
	if err != nil {
		return nil, err
	}

	record := &model.CheckRecord{
		ID:           uc.newID(),
		Input:        candidate,
		Unit:         unit,
		IsPalindrome: palindrome.Check(candidate, unit),
		Source:       source,
		CheckTime:    uc.now().UTC(),
	}
	result := &CheckResult{
		Record:    record,
		Truncated: len(candidate) != len(raw),
	}

	uc.log.Debug("Checked input",
		slog.String("id", record.ID),
		slog.Int("length", record.Length()),
		slog.String("unit", string(unit)),
		slog.Bool("palindrome", record.IsPalindrome),
		slog.Bool("truncated", result.Truncated),
		slog.String("source", source))

	if uc.repo == nil {
		return result, nil
	}

	if err := uc.repo.Store(ctx, record); err != nil {
		uc.log.Error("Failed to record check", slog.String("id", record.ID), slog.String("error", err.Error()))
		return result, fmt.Errorf("failed to record check: %w", err)
	}
	result.Stored = true

	return result, nil
}

// History lists recorded checks, filtered and sorted. Unknown filter or sort
// values fail with model.ErrInvalidQuery.
func (uc *CheckUseCase) History(ctx context.Context, filter model.RecordFilter, sortBy string) ([]*model.CheckRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	by, err := model.ParseSortBy(sortBy)
	if err != nil {
		return nil, err
	}
	if uc.repo == nil {
		return nil, nil
	}

	records, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}

	records = model.FilterRecords(records, filter)
	model.SortRecords(records, string(by))
	return records, nil
}
