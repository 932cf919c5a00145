package ports

import (
	"context"

	"github.com/bft-labs/envtap/internal/domain"
)

// Env is the raw stepping environment wrapped by the adapter.
type Env interface {
	// Reset starts a new episode and returns the first observation.
	// opts carries environment specific reset options and may be nil.
	Reset(ctx context.Context, opts map[string]any) (domain.RawObservation, error)

	// Step applies action and returns the next observation, the reward,
	// whether the episode ended, and diagnostic info.
	Step(ctx context.Context, action int) (domain.RawObservation, float64, bool, domain.Info, error)

	// Close releases the environment.
	Close() error

	// ActionCount returns the cardinality of the discrete action space.
	ActionCount() int
}
