package backend

import (
	"context"
	"fmt"
	"log/slog"

	"dashboard/internal/seed"
	"dashboard/internal/storage"
	"dashboard/internal/store/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemoryBackend(config)
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return f.finishSQL(ctx, config, repo)
	case PostgresBackend:
		repo, err := storage.NewPostgresRepository(ctx, config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres repository: %w", err)
		}
		f.logger.Info("Initialized Postgres backend")
		return f.finishSQL(ctx, config, repo)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

type sqlStore interface {
	Backend
	Seeder
}

func (f *DefaultFactory) finishSQL(ctx context.Context, config Config, repo sqlStore) (*BackendResult, error) {
	if config.SeedOnStart {
		if err := SeedBackend(ctx, repo, config.SeedFile); err != nil {
			repo.Close()
			return nil, err
		}
		f.logger.Info("Seeded backend", "seed_file", seedName(config.SeedFile))
	}
	return &BackendResult{Backend: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	store, err := memory.NewFromFile(config.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory backend: %w", err)
	}

	f.logger.Info("Initialized memory backend", "seed_file", seedName(config.SeedFile))

	return &BackendResult{Backend: store, Cleanup: store.Close}, nil
}

// SeedBackend loads path (or the built-in sample) into s.
func SeedBackend(ctx context.Context, s Seeder, path string) error {
	d, err := seed.Load(path)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	if err := s.Seed(ctx, d); err != nil {
		return fmt.Errorf("seed backend: %w", err)
	}
	return nil
}

func seedName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
