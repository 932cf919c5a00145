// Package sqlite implements ports.RunRegistry on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/bft-labs/envtap/internal/domain"
)

// Registry records experiment runs in a SQLite database.
type Registry struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewRegistry creates a registry backed by the database file at path.
// Call Init before use.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Init opens the database and creates the schema if needed.
func (r *Registry) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path == "" {
		return errors.New("sqlite registry path is required")
	}
	if r.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", r.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	r.db = db
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			token       TEXT PRIMARY KEY,
			game        TEXT NOT NULL,
			created_at  INTEGER NOT NULL,
			discount    REAL NOT NULL,
			frame_skip  INTEGER NOT NULL,
			cvt_string  INTEGER NOT NULL,
			eval_suite  TEXT NOT NULL DEFAULT '',
			train_sink  TEXT NOT NULL DEFAULT '',
			eval_sink   TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

// Register inserts run. Registering the same token twice is an error.
func (r *Registry) Register(ctx context.Context, run domain.Run) error {
	db, err := r.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (token, game, created_at, discount, frame_skip, cvt_string, eval_suite, train_sink, eval_sink)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.Identity.Token.String(),
		run.Identity.Game,
		run.Identity.CreatedAt.UnixNano(),
		run.Discount,
		run.FrameSkip,
		run.ConvertToString,
		run.EvalSuite,
		run.Sinks[domain.ModeTrain],
		run.Sinks[domain.ModeEval],
	)
	if err != nil {
		return fmt.Errorf("register run %s: %w", run.Identity.Token, err)
	}
	return nil
}

// List returns all runs, newest first.
func (r *Registry) List(ctx context.Context) ([]domain.Run, error) {
	db, err := r.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT token, game, created_at, discount, frame_skip, cvt_string, eval_suite, train_sink, eval_sink
		FROM runs
		ORDER BY created_at DESC, token DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		var (
			token, game, suite, trainSink, evalSink string
			created                                 int64
			discount                                float64
			frameSkip                               int
			cvt                                     bool
		)
		if err := rows.Scan(&token, &game, &created, &discount, &frameSkip, &cvt, &suite, &trainSink, &evalSink); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(token)
		if err != nil {
			return nil, fmt.Errorf("run token %q: %w", token, err)
		}
		sinks := make(map[domain.Mode]string)
		if trainSink != "" {
			sinks[domain.ModeTrain] = trainSink
		}
		if evalSink != "" {
			sinks[domain.ModeEval] = evalSink
		}
		runs = append(runs, domain.Run{
			Identity:        domain.Identity{Token: id, Game: game, CreatedAt: time.Unix(0, created).UTC()},
			Discount:        discount,
			FrameSkip:       frameSkip,
			ConvertToString: cvt,
			EvalSuite:       suite,
			Sinks:           sinks,
		})
	}
	return runs, rows.Err()
}

// Close closes the database.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Registry) getDB() (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil, errors.New("sqlite registry is not initialized")
	}
	return r.db, nil
}
