package backend

import (
	"context"

	"dashboard/internal/ports"
	"dashboard/internal/seed"
)

// Backend represents a unified backend interface that provides all necessary operations
type Backend = ports.Store

// Seeder is implemented by backends that can load a fixture.
type Seeder interface {
	Seed(ctx context.Context, d seed.Data) error
}

// Pinger is implemented by backends with a remote dependency worth probing.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	SQLiteDBPath string
	PostgresDSN  string

	// SeedFile is the fixture for the memory backend, and for SQL backends
	// when SeedOnStart is set. Empty selects the built-in sample.
	SeedFile    string
	SeedOnStart bool
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	PostgresBackend BackendType = "postgres"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	default:
		return false
	}
}
