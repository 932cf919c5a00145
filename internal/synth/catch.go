// Package synth provides a deterministic raw environment for driving the
// adapter without an emulator.
package synth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/bft-labs/envtap/internal/domain"
)

// Catch actions. Any action index above ActionRight is a no-op, which lets
// the environment advertise a larger action space.
const (
	ActionStay = iota
	ActionLeft
	ActionRight
)

const (
	minActions = 3
	pixelOn    = float32(255)
)

// Config describes a Catch environment.
type Config struct {
	Height   int
	Width    int
	Channels int
	Actions  int
	Lives    int
	Seed     uint64
}

// DefaultConfig returns a small single-channel board.
func DefaultConfig() Config {
	return Config{
		Height:   16,
		Width:    12,
		Channels: 1,
		Actions:  minActions,
		Lives:    3,
		Seed:     1,
	}
}

// Validate checks the board dimensions and action count.
func (c Config) Validate() error {
	if c.Height < 2 || c.Width < 1 {
		return fmt.Errorf("%w: board %dx%d too small", domain.ErrInvalidConfig, c.Height, c.Width)
	}
	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be positive", domain.ErrInvalidConfig)
	}
	if c.Actions < minActions {
		return fmt.Errorf("%w: catch needs at least %d actions", domain.ErrInvalidConfig, minActions)
	}
	if c.Lives < 1 {
		return fmt.Errorf("%w: lives must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// Catch is a falling-ball game. A ball drops one row per step from a random
// column and the paddle on the bottom row must be under it when it lands.
// A catch scores +1, a miss scores -1 and costs a life. The episode ends when
// no lives remain. Observations are float32 frames with values 0 or 255.
type Catch struct {
	cfg Config
	rng *rand.Rand

	started bool
	closed  bool

	ballRow, ballCol int
	paddle           int
	lives            int
	caught           int
}

// New creates a Catch environment.
func New(cfg Config) (*Catch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Catch{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}, nil
}

// ActionCount returns the size of the action space.
func (c *Catch) ActionCount() int { return c.cfg.Actions }

// Reset starts a new episode. A "seed" option re-seeds the generator.
func (c *Catch) Reset(ctx context.Context, opts map[string]any) (domain.RawObservation, error) {
	if err := c.check(ctx); err != nil {
		return domain.RawObservation{}, err
	}
	if v, ok := opts["seed"]; ok {
		seed, err := toSeed(v)
		if err != nil {
			return domain.RawObservation{}, err
		}
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	c.started = true
	c.lives = c.cfg.Lives
	c.caught = 0
	c.paddle = c.cfg.Width / 2
	c.dropBall()
	return c.render(), nil
}

// Step moves the paddle and advances the ball by one row. Stepping before
// the first Reset starts an episode implicitly.
func (c *Catch) Step(ctx context.Context, action int) (domain.RawObservation, float64, bool, domain.Info, error) {
	if err := c.check(ctx); err != nil {
		return domain.RawObservation{}, 0, false, nil, err
	}
	if action < 0 || action >= c.cfg.Actions {
		return domain.RawObservation{}, 0, false, nil, fmt.Errorf("action %d out of range [0,%d)", action, c.cfg.Actions)
	}
	if !c.started {
		if _, err := c.Reset(ctx, nil); err != nil {
			return domain.RawObservation{}, 0, false, nil, err
		}
	}

	switch action {
	case ActionLeft:
		if c.paddle > 0 {
			c.paddle--
		}
	case ActionRight:
		if c.paddle < c.cfg.Width-1 {
			c.paddle++
		}
	}

	c.ballRow++
	reward := 0.0
	if c.ballRow == c.cfg.Height-1 {
		if c.ballCol == c.paddle {
			reward = 1
			c.caught++
		} else {
			reward = -1
			c.lives--
		}
		c.dropBall()
	}

	done := c.lives <= 0
	if done {
		c.started = false
	}
	info := domain.Info{
		"lives":  c.lives,
		"caught": c.caught,
	}
	return c.render(), reward, done, info, nil
}

// Close releases the environment. Further calls fail.
func (c *Catch) Close() error {
	c.closed = true
	return nil
}

func (c *Catch) check(ctx context.Context) error {
	if c.closed {
		return errors.New("catch: environment closed")
	}
	return ctx.Err()
}

func (c *Catch) dropBall() {
	c.ballRow = 0
	c.ballCol = c.rng.IntN(c.cfg.Width)
}

func (c *Catch) render() domain.RawObservation {
	h, w, ch := c.cfg.Height, c.cfg.Width, c.cfg.Channels
	data := make([]float32, h*w*ch)
	set := func(row, col int) {
		base := (row*w + col) * ch
		for k := 0; k < ch; k++ {
			data[base+k] = pixelOn
		}
	}
	set(c.ballRow, c.ballCol)
	set(h-1, c.paddle)
	return domain.RawObservation{Shape: []int{h, w, ch}, Data: data}
}

func toSeed(v any) (uint64, error) {
	switch s := v.(type) {
	case int:
		return uint64(s), nil
	case int64:
		return uint64(s), nil
	case uint64:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: seed option has type %T", domain.ErrInvalidConfig, v)
	}
}
