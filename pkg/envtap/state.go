package envtap

import (
	"fmt"

	"github.com/bft-labs/envtap/pkg/log"
)

// State is the lifecycle state of an Adapter.
type State int

const (
	// StateUnstarted is the state after New and before the first Reset.
	StateUnstarted State = iota

	// StateActive is the state after at least one Reset.
	StateActive

	// StateClosed is terminal.
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "Unstarted"
	case StateActive:
		return "Active"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// canTransition reports whether moving from s to next is allowed.
func (s State) canTransition(next State) bool {
	switch s {
	case StateUnstarted:
		return next == StateActive || next == StateClosed
	case StateActive:
		return next == StateActive || next == StateClosed
	default:
		return false
	}
}

// transitionTo moves the adapter to next or fails with ErrInvalidState.
func (a *Adapter) transitionTo(next State, reason string) error {
	prev := a.state
	if !prev.canTransition(next) {
		return fmt.Errorf("%w: %s while %s", ErrInvalidState, reason, prev)
	}
	a.state = next
	if prev != next {
		a.logger.Debug("adapter state changed",
			log.String("from", prev.String()),
			log.String("to", next.String()),
			log.String("reason", reason),
		)
	}
	return nil
}
