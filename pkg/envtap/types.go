package envtap

import (
	"github.com/bft-labs/envtap/internal/domain"
	"github.com/bft-labs/envtap/internal/ports"
)

// Re-export domain and port types so callers outside this module can name them.
type (
	// Env is the raw environment capability wrapped by an Adapter.
	Env = ports.Env

	// StepSink stores step records.
	StepSink = ports.StepSink

	// RunRegistry catalogs experiment runs.
	RunRegistry = ports.RunRegistry

	// Frame is one observation of unsigned 8-bit samples.
	Frame = domain.Frame

	// RawObservation is an observation as produced by the raw environment.
	RawObservation = domain.RawObservation

	// EncodedFrame is the transport form of a Frame.
	EncodedFrame = domain.EncodedFrame

	// Observation is what Reset and Step return.
	Observation = domain.Observation

	// Info is the per-step diagnostic mapping.
	Info = domain.Info

	// StepRecord is one logged transition.
	StepRecord = domain.StepRecord

	// Identity names one experiment run.
	Identity = domain.Identity

	// Run describes a constructed adapter.
	Run = domain.Run

	// SinkID addresses one log sink.
	SinkID = domain.SinkID

	// Mode selects the training or evaluation sink.
	Mode = domain.Mode
)

const (
	ModeTrain = domain.ModeTrain
	ModeEval  = domain.ModeEval
)

// Errors returned by the adapter. Check with errors.Is.
var (
	ErrEncoding      = domain.ErrEncoding
	ErrIO            = domain.ErrIO
	ErrInvalidState  = domain.ErrInvalidState
	ErrInvalidConfig = domain.ErrInvalidConfig
)
