package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// debounce collapses the burst of events editors emit for a single save
const debounce = 150 * time.Millisecond

// Watch reloads the config file whenever it changes and sends the result on
// the returned channel. The directory is watched rather than the file so
// that editors which replace the file on save are still seen. The channel
// is closed when ctx is done. Failures are logged and the last good config
// stays in effect.
func Watch(ctx context.Context, path string, logger hclog.Logger) (<-chan *Config, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("config")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	out := make(chan *Config, 1)
	target := filepath.Clean(path)

	go func() {
		defer close(out)
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					pending = time.After(debounce)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)

			case <-pending:
				pending = nil
				cfg, err := Load(path)
				if err != nil {
					// Possibly half-written; the next write event retries
					logger.Warn("config reload failed", "path", path, "error", err)
					continue
				}
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
