// Package envtap instruments a stepping environment: it coerces and packs
// observations into frames and appends every transition to CSV episode logs.
//
// Example usage:
//
//	cfg := envtap.DefaultConfig()
//	cfg.Game = "pong"
//	cfg.Train = true
//	a, err := envtap.New(ctx, env, cfg, envtap.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//	obs, err := a.Reset(ctx, nil)
//	obs, reward, done, info, err := a.Step(ctx, action)
package envtap

import (
	"context"

	core "github.com/bft-labs/envtap/pkg/envtap"
)

// Adapter wraps a raw environment. Use New() to create one.
type Adapter = core.Adapter

// Config holds per-run settings. Use DefaultConfig() for sensible defaults.
type Config = core.Config

// Option configures an Adapter.
type Option = core.Option

// Env is the raw environment capability wrapped by an Adapter.
type Env = core.Env

// Observation is what Reset and Step return.
type Observation = core.Observation

// Info is the per-step diagnostic mapping.
type Info = core.Info

// New wraps env and prepares its sinks.
func New(ctx context.Context, env Env, cfg Config, opts ...Option) (*Adapter, error) {
	return core.New(ctx, env, cfg, opts...)
}

// DefaultConfig returns a Config with default values. Logging is off.
func DefaultConfig() Config {
	return core.DefaultConfig()
}

// Functional options.
var (
	WithLogger      = core.WithLogger
	WithSink        = core.WithSink
	WithRegistry    = core.WithRegistry
	WithCodec       = core.WithCodec
	WithClock       = core.WithClock
	WithoutManifest = core.WithoutManifest
)

// Errors returned by the adapter. Check with errors.Is.
var (
	ErrEncoding      = core.ErrEncoding
	ErrIO            = core.ErrIO
	ErrInvalidState  = core.ErrInvalidState
	ErrInvalidConfig = core.ErrInvalidConfig
)
