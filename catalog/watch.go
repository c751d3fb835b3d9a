package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/coregx/coretmpl"
)

// Load reads the catalog at path and builds it with config.
func Load(path string, config coretmpl.Config) (*coretmpl.Set, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := doc.Build(config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Watch rebuilds the catalog at path whenever the file changes and passes
// each new Set to onChange. It blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file, so editors that
// replace the file on save are followed. A reload that fails to parse,
// validate or compile is logged and skipped; onChange is not called and the
// caller keeps its previous Set. logger may be nil.
func Watch(ctx context.Context, path string, config coretmpl.Config, logger *slog.Logger, onChange func(*coretmpl.Set)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	path = filepath.Clean(path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	logger.Debug("watching catalog", slog.String("path", path))

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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			set, err := Load(path, config)
			if err != nil {
				logger.Warn("catalog reload failed, keeping previous templates",
					slog.String("path", path),
					slog.String("error", err.Error()),
				)
				continue
			}
			logger.Info("catalog reloaded",
				slog.String("path", path),
				slog.Int("templates", set.Len()),
				slog.Bool("prefiltered", set.Prefiltered()),
			)
			onChange(set)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", slog.String("error", err.Error()))
		}
	}
}
