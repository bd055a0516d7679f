package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/openbp/openbp/pkg/reading"
)

// Watch reloads the readings file at path whenever it changes and calls
// onChange with the result. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file itself, so saves that
// write a temporary file and rename it over path keep being picked up.
// A reload that fails to parse is logged and skipped; onChange is not called
// and the watch stays active.
func Watch(ctx context.Context, path string, onChange func([]reading.Reading)) error {
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("readings file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("store: watching readings file", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// A rename over path surfaces as Create on the new entry.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			reload(path, onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("store: watcher error", "err", err)
		}
	}
}

// reload loads path and hands the readings to onChange. Zero-length files are
// the truncate half of an in-place write; the following Write event carries
// the content.
func reload(path string, onChange func([]reading.Reading)) {
	if fi, err := os.Stat(path); err == nil && fi.Size() == 0 {
		slog.Debug("store: readings file empty, waiting for content", "path", path)
		return
	}

	rs, err := LoadFile(path)
	if err != nil {
		slog.Error("store: reload failed, keeping previous readings",
			"path", path, "err", err)
		return
	}

	slog.Info("store: readings reloaded", "path", path, "count", len(rs))
	onChange(rs)
}
