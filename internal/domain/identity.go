package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the creation-date path segment format.
const DateLayout = "2006.01.02"

// Identity names one experiment run. It is generated once per adapter and
// never changes afterwards.
type Identity struct {
	// Token is a time-ordered unique identifier (UUIDv7)
	Token uuid.UUID

	// Game is the human-readable environment name
	Game string

	// CreatedAt is when the identity was generated
	CreatedAt time.Time
}

// NewIdentity generates a fresh identity for game at now. The token's
// embedded timestamp is taken from now, not the wall clock. game becomes a
// path segment, so separators and ".." are rejected.
func NewIdentity(game string, now time.Time) (Identity, error) {
	if strings.ContainsAny(game, `/\`) || strings.Contains(game, "..") {
		return Identity{}, fmt.Errorf("%w: game %q is not a valid path segment", ErrInvalidConfig, game)
	}

	token, err := uuid.NewV7()
	if err != nil {
		return Identity{}, fmt.Errorf("generate experiment token: %w", err)
	}
	ms := uint64(now.UnixMilli())
	for i := 0; i < 6; i++ {
		token[i] = byte(ms >> (40 - 8*i))
	}
	return Identity{Token: token, Game: game, CreatedAt: now}, nil
}

// Date returns the creation date as used in sink paths.
func (id Identity) Date() string {
	return id.CreatedAt.Format(DateLayout)
}

// String returns "<token>_<game>", the prefix of every sink filename.
func (id Identity) String() string {
	return id.Token.String() + "_" + id.Game
}

// Mode selects which sink of a run a record belongs to.
type Mode int

const (
	ModeTrain Mode = iota
	ModeEval
)

// String returns the filename label for the mode.
func (m Mode) String() string {
	switch m {
	case ModeTrain:
		return "train"
	case ModeEval:
		return "test"
	default:
		return "unknown"
	}
}
