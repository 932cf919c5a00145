package domain

// SinkID addresses one log sink: an experiment identity plus a mode. Suite
// names the evaluation suite and is ignored for training sinks.
type SinkID struct {
	Identity Identity
	Mode     Mode
	Suite    string
}

// Run describes one constructed adapter for manifests and the run registry.
type Run struct {
	// Identity is the run identity
	Identity Identity

	// Discount is the discount factor handed to downstream consumers
	Discount float64

	// FrameSkip is the number of raw ticks per logical step
	FrameSkip int

	// ConvertToString records whether observations were encoded
	ConvertToString bool

	// EvalSuite names the evaluation suite when an eval sink exists
	EvalSuite string

	// Sinks maps each enabled mode to its sink location
	Sinks map[Mode]string
}

// Logging reports whether the run writes any sink.
func (r Run) Logging() bool {
	return len(r.Sinks) > 0
}
