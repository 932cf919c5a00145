// Package log builds the zerolog logger used by the envtap command.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options control where CLI log output goes.
type Options struct {
	// Level is a zerolog level name such as "debug" or "warn". Empty means info.
	Level string
	// File, when set, receives JSON log lines rotated by size.
	File string
	// MaxSizeMB is the rotation threshold for File.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int

	// Console is the human-readable destination. Defaults to os.Stderr.
	Console io.Writer
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", name, err)
	}
	return lvl, nil
}

// New returns a console logger, teeing into a rotating file when
// opts.File is set. The returned closer flushes and closes the file.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	var out io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 50
		}
		rot := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: opts.MaxBackups,
		}
		out = zerolog.MultiLevelWriter(out, rot)
		closer = rot
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
