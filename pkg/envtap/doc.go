// Package envtap wraps a raw stepping environment with observation encoding
// and durable per-step logging.
//
// An [Adapter] exposes the same surface as the environment it wraps
// (LegalActions, Reset, Step, Close), so a learning loop can use it in place
// of the raw environment. Every observation is coerced to unsigned 8-bit
// samples and, when string conversion is enabled, encoded with pkg/codec.
// When training logging is enabled, every transition is appended to the run's
// training sink; evaluation runs get their own sink.
//
// # Basic Usage
//
//	cfg := envtap.DefaultConfig()
//	cfg.Game = "pong"
//	cfg.Train = true
//	cfg.Root = "/data/experiments"
//
//	a, err := envtap.New(ctx, rawEnv, cfg, envtap.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	obs, err := a.Reset(ctx, nil)
//	...
//	obs, reward, done, info, err := a.Step(ctx, action)
//
// # Lifecycle
//
// An adapter starts Unstarted, becomes Active on the first successful Reset
// and is Closed by Close. Reset and Step on a closed adapter fail with
// [ErrInvalidState].
//
// # Step counting
//
// The step counter starts at zero, is incremented at the start of every Step
// call and is never reset, not by Reset and not by episode ends. It advances
// even when the raw step or the log append fails, so after a failed append
// the counter can be ahead of the sink.
//
// # Concurrency
//
// An Adapter is not safe for concurrent use.
package envtap
