package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/storyloom/engine/pkg/generation"
)

// Storage persists phase-1 generation outputs so downstream phases and
// the console can retrieve them. The blueprint core itself never touches
// storage; persistence is strictly a host concern.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error
	WaitForConnection(ctx context.Context) error

	// Generation operations
	SaveGeneration(ctx context.Context, id uuid.UUID, out *generation.Phase1Output) error
	LoadGeneration(ctx context.Context, id uuid.UUID) (*generation.Phase1Output, error)
	DeleteGeneration(ctx context.Context, id uuid.UUID) error
	ListGenerations(ctx context.Context) ([]uuid.UUID, error)
}
