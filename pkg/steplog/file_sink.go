package steplog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/envtap/internal/domain"
	"github.com/bft-labs/envtap/pkg/log"
)

// DefaultProject is the project label used when none is configured.
const DefaultProject = "envtap"

// DefaultSuite is the evaluation suite name used when none is configured.
const DefaultSuite = "generic"

// FileSink implements ports.StepSink with one CSV file per sink.
type FileSink struct {
	root    string
	project string
	logger  log.Logger
}

// NewFileSink creates a FileSink rooted at root. A nil logger discards output.
func NewFileSink(root, project string, logger log.Logger) *FileSink {
	if project == "" {
		project = DefaultProject
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &FileSink{root: root, project: project, logger: logger}
}

// RunDir returns the directory holding every sink of the run.
func (s *FileSink) RunDir(id domain.Identity) string {
	return RunDir(s.root, s.project, id)
}

// Location returns the file path of the sink.
func (s *FileSink) Location(id domain.SinkID) string {
	return SinkPath(s.root, s.project, id)
}

// RunDir returns <root>/<project>/<game>/<date>/<token>.
func RunDir(root, project string, id domain.Identity) string {
	return filepath.Join(root, project, id.Game, id.Date(), id.Token.String())
}

// SinkPath returns the file path of a sink.
func SinkPath(root, project string, id domain.SinkID) string {
	dir := RunDir(root, project, id.Identity)
	if id.Mode == domain.ModeEval {
		suite := id.Suite
		if suite == "" {
			suite = DefaultSuite
		}
		dir = filepath.Join(dir, "test-"+suite)
	}
	name := fmt.Sprintf("%s_%s_reward_history.csv", id.Identity, id.Mode)
	return filepath.Join(dir, name)
}

// Initialize creates the sink directory and file and writes the header row.
// An existing file is truncated.
func (s *FileSink) Initialize(id domain.SinkID, header []string) error {
	path := s.Location(id)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create sink dir: %v", domain.ErrIO, err)
	}

	if fi, err := os.Stat(path); err == nil && fi.Size() > 0 {
		s.logger.Warn("reinitializing existing sink; prior rows are discarded",
			log.String("path", path),
			log.Int64("bytes", fi.Size()),
		)
	}

	line, err := encodeRow(header)
	if err != nil {
		return fmt.Errorf("%w: encode header: %v", domain.ErrIO, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create sink: %v", domain.ErrIO, err)
	}
	if err := writeSync(f, line); err != nil {
		return fmt.Errorf("%w: write header: %v", domain.ErrIO, err)
	}

	s.logger.Info("sink initialized",
		log.String("path", path),
		log.Stringer("mode", id.Mode),
	)
	return nil
}

// Append writes one row for rec. The sink file must already exist.
func (s *FileSink) Append(id domain.SinkID, rec domain.StepRecord) error {
	row, err := rec.Row()
	if err != nil {
		return err
	}
	line, err := encodeRow(row)
	if err != nil {
		return fmt.Errorf("%w: encode row: %v", domain.ErrIO, err)
	}

	path := s.Location(id)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("%w: open sink: %v", domain.ErrIO, err)
	}
	if err := writeSync(f, line); err != nil {
		return fmt.Errorf("%w: append step %d: %v", domain.ErrIO, rec.Step, err)
	}
	return nil
}

// encodeRow renders one CSV line, including the trailing newline.
func encodeRow(fields []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSync writes line in a single call, syncs and closes f.
func writeSync(f *os.File, line []byte) error {
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
