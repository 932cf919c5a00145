package manifest

import (
	"context"

	"github.com/bft-labs/envtap/internal/domain"
)

// Repository persists the manifest of one run.
type Repository interface {
	// Load retrieves the saved run.
	// Returns ok=false and nil error if no manifest exists.
	Load(ctx context.Context) (domain.Run, bool, error)

	// Save persists the run atomically.
	Save(ctx context.Context, run domain.Run) error
}
