package manifest

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/envtap/internal/domain"
)

// Manifest is the JSON form of a domain.Run.
type Manifest struct {
	Version         int       `json:"version"`
	Token           string    `json:"token"`
	Game            string    `json:"game"`
	CreatedAt       time.Time `json:"created_at"`
	Discount        float64   `json:"discount"`
	FrameSkip       int       `json:"frame_skip"`
	ConvertToString bool      `json:"cvt_string"`
	EvalSuite       string    `json:"eval_suite,omitempty"`
	TrainSink       string    `json:"train_sink,omitempty"`
	EvalSink        string    `json:"eval_sink,omitempty"`
}

// FromRun converts a run to its manifest form.
func FromRun(r domain.Run) Manifest {
	return Manifest{
		Version:         SchemaVersion,
		Token:           r.Identity.Token.String(),
		Game:            r.Identity.Game,
		CreatedAt:       r.Identity.CreatedAt,
		Discount:        r.Discount,
		FrameSkip:       r.FrameSkip,
		ConvertToString: r.ConvertToString,
		EvalSuite:       r.EvalSuite,
		TrainSink:       r.Sinks[domain.ModeTrain],
		EvalSink:        r.Sinks[domain.ModeEval],
	}
}

// ToRun converts the manifest back to a domain.Run.
func (m Manifest) ToRun() (domain.Run, error) {
	if m.Version > SchemaVersion {
		return domain.Run{}, fmt.Errorf("manifest version %d is newer than supported %d", m.Version, SchemaVersion)
	}
	token, err := uuid.Parse(m.Token)
	if err != nil {
		return domain.Run{}, fmt.Errorf("manifest token: %w", err)
	}
	sinks := make(map[domain.Mode]string)
	if m.TrainSink != "" {
		sinks[domain.ModeTrain] = m.TrainSink
	}
	if m.EvalSink != "" {
		sinks[domain.ModeEval] = m.EvalSink
	}
	return domain.Run{
		Identity:        domain.Identity{Token: token, Game: m.Game, CreatedAt: m.CreatedAt},
		Discount:        m.Discount,
		FrameSkip:       m.FrameSkip,
		ConvertToString: m.ConvertToString,
		EvalSuite:       m.EvalSuite,
		Sinks:           sinks,
	}, nil
}
