package memrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mrled/palcheck/internal/model"
)

// MemoryRepository is an in-memory implementation of CheckRepository optionally backed by a JSON file
type MemoryRepository struct {
	mu       sync.RWMutex
	data     map[string]*model.CheckRecord
	filePath string
}

// NewMemoryRepository creates a new in-memory repository without persistence.
// Data is stored only in memory and will be lost when the process terminates.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*model.CheckRecord),
	}
}

// NewMemoryRepositoryWithPersistence creates a new in-memory repository backed by a JSON file.
// Existing data is loaded on initialization and every Store and Delete rewrites the file.
func NewMemoryRepositoryWithPersistence(filePath string) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		data:     make(map[string]*model.CheckRecord),
		filePath: filePath,
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	if err := repo.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return repo, nil
}

// NewMemoryRepositoryFromJsonString creates a repository initialized from a JSON array of
// CheckRecord objects. It is not backed by a file.
func NewMemoryRepositoryFromJsonString(jsonString string) (*MemoryRepository, error) {
	repo := NewMemoryRepository()
	if err := repo.loadFromReader(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MemoryRepository) loadFromReader(reader io.Reader) error {
	var records []*model.CheckRecord
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return err
	}

	r.data = make(map[string]*model.CheckRecord, len(records))
	for _, rec := range records {
		if _, exists := r.data[rec.ID]; exists {
			slog.Warn("Duplicate check record, keeping last occurrence", slog.String("id", rec.ID))
		}
		r.data[rec.ID] = rec
	}

	return nil
}

func (r *MemoryRepository) load() error {
	file, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() == 0 {
		return nil
	}

	return r.loadFromReader(file)
}

// save writes the records to the JSON file, oldest first.
// If filePath is empty, this is a no-op.
func (r *MemoryRepository) save() error {
	if r.filePath == "" {
		return nil
	}

	records := r.snapshot()
	model.SortRecords(records, "")
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	file, err := os.Create(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.filePath, err)
	}
	return nil
}

func (r *MemoryRepository) snapshot() []*model.CheckRecord {
	records := make([]*model.CheckRecord, 0, len(r.data))
	for _, rec := range r.data {
		records = append(records, rec)
	}
	return records
}

// Store saves a record, returning ErrAlreadyExists if the ID is taken
func (r *MemoryRepository) Store(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return errors.New("check record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[record.ID]; exists {
		return model.ErrAlreadyExists
	}

	if record.Rev == 0 {
		record.Rev = 1
	}
	r.data[record.ID] = record
	return r.save()
}

// UnconditionalStore saves a record, replacing any existing record with the
// same ID and incrementing its revision.
func (r *MemoryRepository) UnconditionalStore(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return errors.New("check record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record.Rev = 1
	if existing, exists := r.data[record.ID]; exists {
		record.Rev = existing.Rev + 1
	}
	r.data[record.ID] = record
	return r.save()
}

// Put saves a record, replacing any existing record with the same ID. A
// non-zero Rev is kept as given; a zero Rev becomes the next revision.
func (r *MemoryRepository) Put(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return errors.New("check record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if record.Rev == 0 {
		record.Rev = 1
		if existing, exists := r.data[record.ID]; exists {
			record.Rev = existing.Rev + 1
		}
	}
	r.data[record.ID] = record
	return r.save()
}

// Get retrieves a record by ID
func (r *MemoryRepository) Get(ctx context.Context, id string) (*model.CheckRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.data[id]
	if !exists {
		return nil, model.ErrNotFound
	}

	return record, nil
}

// List retrieves all records
func (r *MemoryRepository) List(ctx context.Context) ([]*model.CheckRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(), nil
}

// Delete removes a record by ID
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return model.ErrNotFound
	}

	delete(r.data, id)
	return r.save()
}
