package steplog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/envtap/internal/domain"
)

// Follow calls fn for every row already in the sink at path and then for each
// row appended afterwards, until ctx is done, fn returns an error, or the file
// is removed. A truncated file (a re-initialized sink) is read again from the
// top.
func Follow(ctx context.Context, path string, fn func(Row) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open sink: %v", domain.ErrIO, err)
	}
	defer f.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	t := &tailer{f: f, fn: fn}
	if err := t.drain(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				return fmt.Errorf("%w: sink %s was removed", domain.ErrIO, path)
			}
			if event.Op&fsnotify.Write == 0 {
				continue
			}
			if err := t.drain(); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

// tailer turns appended bytes into rows, holding back any incomplete line.
type tailer struct {
	f          *os.File
	fn         func(Row) error
	offset     int64
	pending    []byte
	headerSeen bool
}

func (t *tailer) drain() error {
	fi, err := t.f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat sink: %v", domain.ErrIO, err)
	}
	if fi.Size() < t.offset {
		if _, err := t.f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("%w: rewind sink: %v", domain.ErrIO, err)
		}
		t.offset = 0
		t.pending = t.pending[:0]
		t.headerSeen = false
	}

	chunk, err := io.ReadAll(t.f)
	if err != nil {
		return fmt.Errorf("%w: read sink: %v", domain.ErrIO, err)
	}
	t.offset += int64(len(chunk))
	t.pending = append(t.pending, chunk...)

	for {
		i := bytes.IndexByte(t.pending, '\n')
		if i < 0 {
			return nil
		}
		line := string(bytes.TrimRight(t.pending[:i], "\r"))
		t.pending = t.pending[i+1:]

		if !t.headerSeen {
			t.headerSeen = true
			continue
		}
		row, err := parseLine(line)
		if err != nil {
			return err
		}
		if err := t.fn(row); err != nil {
			return err
		}
	}
}
