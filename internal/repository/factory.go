// Package repository selects a CheckRepository implementation from configuration
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrled/palcheck/internal/awsclient"
	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/repository/dynamorepo"
	"github.com/mrled/palcheck/internal/repository/memrepo"
)

// RepositoryConfig holds configuration for creating a repository
type RepositoryConfig struct {
	// FilePath for JSON file persistence
	FilePath string

	// DynamoTable is the DynamoDB table name for persistence; it takes precedence over FilePath
	DynamoTable string

	// DynamoEndpoint is an optional custom DynamoDB endpoint URL
	DynamoEndpoint string
}

// IsPersistent reports whether the configuration names any persistent store
func (c RepositoryConfig) IsPersistent() bool {
	return c.FilePath != "" || c.DynamoTable != ""
}

// NewRepository creates a CheckRepository based on the provided configuration.
// Without a table or file it returns a non-persistent memory repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (model.CheckRepository, error) {
	if cfg.DynamoTable != "" {
		awsCfg, err := awsclient.LoadConfig(ctx)
		if err != nil {
			return nil, err
		}

		client := awsclient.NewDynamoDB(awsCfg, cfg.DynamoEndpoint)
		slog.Info("Using DynamoDB persistence",
			slog.String("table", cfg.DynamoTable),
			slog.String("endpoint", cfg.DynamoEndpoint))
		return dynamorepo.NewDynamoRepository(client, cfg.DynamoTable), nil
	}

	if cfg.FilePath != "" {
		repo, err := memrepo.NewMemoryRepositoryWithPersistence(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create repository: %w", err)
		}
		slog.Info("Using JSON persistence", slog.String("file", cfg.FilePath))
		return repo, nil
	}

	slog.Debug("Using in-memory repository without persistence")
	return memrepo.NewMemoryRepository(), nil
}
