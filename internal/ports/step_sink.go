package ports

import "github.com/bft-labs/envtap/internal/domain"

// StepSink stores step records for one or more sinks.
// Implementations must never rewrite rows written by Append.
type StepSink interface {
	// Initialize creates the backing storage for id and writes the header row.
	// Calling it again for the same id discards prior content.
	Initialize(id domain.SinkID, header []string) error

	// Append writes exactly one row for rec and makes it durable before
	// returning. The sink must already exist.
	Append(id domain.SinkID, rec domain.StepRecord) error

	// Location returns where the sink for id lives (a file path for file sinks).
	Location(id domain.SinkID) string
}
