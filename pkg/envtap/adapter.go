package envtap

import (
	"context"
	"fmt"

	"github.com/bft-labs/envtap/internal/domain"
	"github.com/bft-labs/envtap/pkg/codec"
	"github.com/bft-labs/envtap/pkg/log"
	"github.com/bft-labs/envtap/pkg/manifest"
	"github.com/bft-labs/envtap/pkg/steplog"
)

// Adapter wraps a raw Env. Use New() to create one.
type Adapter struct {
	env      Env
	cfg      Config
	identity Identity
	codec    *codec.Codec
	sink     StepSink
	logger   log.Logger
	run      Run

	// sinks lists the enabled sinks in append order (train, then eval)
	sinks []SinkID

	state State
	steps uint64
	last  *StepRecord
}

// runDirer is implemented by sinks that keep all files of a run in one directory.
type runDirer interface {
	RunDir(id domain.Identity) string
}

// New wraps env. It generates the experiment identity and, when logging is
// enabled, initializes the sinks, writes the run manifest and registers the
// run. The adapter is returned in StateUnstarted.
func New(ctx context.Context, env Env, cfg Config, opts ...Option) (*Adapter, error) {
	if env == nil {
		return nil, fmt.Errorf("%w: nil environment", ErrInvalidConfig)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	identity, err := domain.NewIdentity(cfg.Game, o.now())
	if err != nil {
		return nil, err
	}

	logger := o.logger.With(
		log.String("run", identity.Token.String()),
		log.String("game", identity.Game),
	)

	sink := o.sink
	if sink == nil {
		sink = steplog.NewFileSink(cfg.Root, cfg.Project, logger)
	}

	a := &Adapter{
		env:      env,
		cfg:      cfg,
		identity: identity,
		codec:    o.codec,
		sink:     sink,
		logger:   logger,
		state:    StateUnstarted,
	}

	if cfg.Train {
		a.sinks = append(a.sinks, SinkID{Identity: identity, Mode: ModeTrain})
	}
	if cfg.Eval {
		a.sinks = append(a.sinks, SinkID{Identity: identity, Mode: ModeEval, Suite: cfg.EvalSuite})
	}

	a.run = Run{
		Identity:        identity,
		Discount:        cfg.Discount,
		FrameSkip:       a.frameSkip(),
		ConvertToString: cfg.ConvertToString,
		Sinks:           make(map[Mode]string, len(a.sinks)),
	}
	if cfg.Eval {
		a.run.EvalSuite = cfg.EvalSuite
	}

	for _, id := range a.sinks {
		if err := sink.Initialize(id, domain.Header); err != nil {
			return nil, err
		}
		a.run.Sinks[id.Mode] = sink.Location(id)
	}

	if cfg.Logging() && o.manifest {
		if rd, ok := sink.(runDirer); ok {
			repo := manifest.NewFileRepository(rd.RunDir(identity))
			if err := repo.Save(ctx, a.run); err != nil {
				return nil, fmt.Errorf("%w: write manifest: %v", ErrIO, err)
			}
		}
	}

	if o.registry != nil {
		if err := o.registry.Register(ctx, a.run); err != nil {
			return nil, fmt.Errorf("register run: %w", err)
		}
	}

	logger.Info("adapter constructed",
		log.Bool("train", cfg.Train),
		log.Bool("eval", cfg.Eval),
		log.Bool("cvt_string", cfg.ConvertToString),
		log.Float64("discount", cfg.Discount),
		log.Int("actions", env.ActionCount()),
	)
	return a, nil
}

// LegalActions returns [0, 1, ..., n-1] for the raw action-space size n.
func (a *Adapter) LegalActions() []int {
	n := a.env.ActionCount()
	actions := make([]int, n)
	for i := range actions {
		actions[i] = i
	}
	return actions
}

// Reset resets the raw environment and returns the processed first
// observation. It neither resets the step counter nor writes to any sink.
func (a *Adapter) Reset(ctx context.Context, opts map[string]any) (Observation, error) {
	if a.state == StateClosed {
		return Observation{}, fmt.Errorf("%w: reset after close", ErrInvalidState)
	}

	raw, err := a.env.Reset(ctx, opts)
	if err != nil {
		return Observation{}, fmt.Errorf("env reset: %w", err)
	}
	if err := a.transitionTo(StateActive, "reset"); err != nil {
		return Observation{}, err
	}
	return a.observe(raw)
}

// Step advances the raw environment by one action. The step counter is
// incremented first and stays incremented if any later stage fails. When
// training or evaluation logging is enabled, the transition is appended to
// the sinks before Step returns.
func (a *Adapter) Step(ctx context.Context, action int) (Observation, float64, bool, Info, error) {
	if a.state == StateClosed {
		return Observation{}, 0, false, nil, fmt.Errorf("%w: step after close", ErrInvalidState)
	}

	a.steps++
	step := a.steps

	raw, reward, done, info, err := a.env.Step(ctx, action)
	if err != nil {
		return Observation{}, 0, false, nil, fmt.Errorf("env step %d: %w", step, err)
	}

	obs, err := a.observe(raw)
	if err != nil {
		return Observation{}, 0, false, nil, fmt.Errorf("step %d: %w", step, err)
	}

	if !a.cfg.DisableFrameCount {
		if info == nil {
			info = Info{}
		}
		info[domain.InfoRealFrameCount] = step * uint64(a.frameSkip())
	}

	rec := domain.NewStepRecord(step, reward, done, info)
	a.last = &rec
	for _, id := range a.sinks {
		if err := a.sink.Append(id, rec); err != nil {
			a.logger.Error("append step failed",
				log.Uint64("step", step),
				log.Stringer("mode", id.Mode),
				log.Err(err),
			)
			return Observation{}, 0, false, nil, err
		}
	}

	a.logger.Debug("step",
		log.Uint64("step", step),
		log.Int("action", action),
		log.Float64("reward", reward),
		log.Bool("done", done),
	)
	return obs, reward, done, info, nil
}

// Close closes the raw environment. A second Close fails with ErrInvalidState.
func (a *Adapter) Close() error {
	if err := a.transitionTo(StateClosed, "close"); err != nil {
		return err
	}
	a.logger.Info("adapter closed", log.Uint64("steps", a.steps))
	if err := a.env.Close(); err != nil {
		return fmt.Errorf("env close: %w", err)
	}
	return nil
}

// observe coerces raw to a Frame and encodes it when string conversion is on.
func (a *Adapter) observe(raw RawObservation) (Observation, error) {
	frame, err := codec.Coerce(raw)
	if err != nil {
		return Observation{}, err
	}
	if !a.cfg.ConvertToString {
		return Observation{Frame: frame}, nil
	}
	enc, err := a.codec.Encode(frame)
	if err != nil {
		return Observation{}, err
	}
	return Observation{Encoded: enc}, nil
}

func (a *Adapter) frameSkip() int {
	if a.cfg.FrameSkip > 0 {
		return a.cfg.FrameSkip
	}
	return DefaultFrameSkip
}

// Discount returns the discount factor captured at construction.
func (a *Adapter) Discount() float64 { return a.cfg.Discount }

// Identity returns the experiment identity of the run.
func (a *Adapter) Identity() Identity { return a.identity }

// Steps returns the number of Step calls made so far.
func (a *Adapter) Steps() uint64 { return a.steps }

// State returns the lifecycle state.
func (a *Adapter) State() State { return a.state }

// Run returns the run description, including sink locations.
func (a *Adapter) Run() Run { return a.run }

// SinkLocation returns where the sink for mode lives, if that sink is enabled.
func (a *Adapter) SinkLocation(mode Mode) (string, bool) {
	loc, ok := a.run.Sinks[mode]
	return loc, ok
}

// LastRecord returns the most recent transition produced by Step.
func (a *Adapter) LastRecord() (StepRecord, bool) {
	if a.last == nil {
		return StepRecord{}, false
	}
	return *a.last, true
}
