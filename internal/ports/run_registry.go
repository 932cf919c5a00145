package ports

import (
	"context"

	"github.com/bft-labs/envtap/internal/domain"
)

// RunRegistry keeps a catalog of experiment runs.
type RunRegistry interface {
	// Register records a newly constructed run.
	Register(ctx context.Context, run domain.Run) error

	// List returns all known runs, newest first.
	List(ctx context.Context) ([]domain.Run, error)
}
