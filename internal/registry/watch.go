package registry

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/engcheck/internal/logger"
)

// Watch reloads c whenever its source file is written, created or renamed
// into place, and reports each reload outcome to onReload (nil on success).
// The parent directory is watched rather than the file itself so editors
// that replace the file on save are still observed. Watch blocks until ctx
// is done.
func Watch(ctx context.Context, c *Catalog, onReload func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("registry: create watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(c.Path())
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("registry: watch %s: %w", target, err)
	}

	log := logger.ForComponent("registry")
	log.Debug("watching registry", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			err := c.Reload()
			if err != nil {
				log.Warn("registry reload failed, keeping previous contents", "path", target, "error", err)
			} else {
				log.Info("registry reloaded", "path", target)
			}
			if onReload != nil {
				onReload(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("registry watcher error", "error", err)
		}
	}
}
