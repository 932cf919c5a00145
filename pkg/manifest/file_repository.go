package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bft-labs/envtap/internal/domain"
)

const manifestFileName = "run.json"

// FileRepository implements Repository using a JSON file.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a new FileRepository for the given run directory.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Load retrieves the saved run from disk.
// Returns ok=false and nil error if no manifest file exists.
func (r *FileRepository) Load(ctx context.Context) (domain.Run, bool, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Run{}, false, nil
		}
		return domain.Run{}, false, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Run{}, false, err
	}

	run, err := m.ToRun()
	if err != nil {
		return domain.Run{}, false, err
	}
	return run, true, nil
}

// Save persists the run atomically.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (r *FileRepository) Save(ctx context.Context, run domain.Run) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(FromRun(run), "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// Path returns the full path to the manifest file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, manifestFileName)
}
