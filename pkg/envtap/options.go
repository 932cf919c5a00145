package envtap

import (
	"time"

	"github.com/bft-labs/envtap/pkg/codec"
	"github.com/bft-labs/envtap/pkg/log"
)

// Option configures optional behavior of an Adapter.
type Option func(*options)

type options struct {
	logger   log.Logger
	sink     StepSink
	registry RunRegistry
	codec    *codec.Codec
	now      func() time.Time
	manifest bool
}

func defaultOptions() options {
	return options{
		logger:   log.NewNoopLogger(),
		codec:    codec.New(),
		now:      time.Now,
		manifest: true,
	}
}

// WithLogger sets a logger for structured logging.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSink replaces the default CSV file sink.
func WithSink(sink StepSink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithRegistry records the run in registry at construction.
func WithRegistry(registry RunRegistry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithCodec sets the codec used when ConvertToString is enabled.
func WithCodec(c *codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithClock sets the time source used for the experiment identity.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithoutManifest skips writing run.json next to the sinks.
func WithoutManifest() Option {
	return func(o *options) {
		o.manifest = false
	}
}
