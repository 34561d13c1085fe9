package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/engcheck/internal/logger"
	"github.com/dshills/engcheck/internal/registry"
)

// settleDelay coalesces the burst of events an editor save produces.
const settleDelay = 200 * time.Millisecond

// runWatch runs the check once, then again whenever the registry or one of
// the documents changes, until ctx is cancelled. Check failures are reported
// and do not stop the loop. Documents are resolved once at startup.
func runWatch(ctx context.Context, a *app, args []string, flags checkFlags) error {
	paths, err := expandDocuments(args)
	if err != nil {
		return codeError(exitExtraction, "%s", err)
	}

	check := func() {
		if err := runCheck(ctx, a, paths, flags); err != nil && ctx.Err() == nil {
			fmt.Fprintln(a.stderr, "Error:", err)
		}
	}
	check()

	trigger := make(chan struct{}, 1)
	notify := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return registry.Watch(ctx, a.catalog, func(err error) {
			if err == nil {
				notify()
			}
		})
	})
	g.Go(func() error {
		return watchDocuments(ctx, paths, notify)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-trigger:
			}
			// Let the rest of the burst arrive before re-checking.
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(settleDelay):
			}
			select {
			case <-trigger:
			default:
			}
			check()
		}
	})

	fmt.Fprintln(a.stderr, "Watching for changes; press Ctrl-C to stop.")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchDocuments calls notify whenever one of paths is written or replaced.
func watchDocuments(ctx context.Context, paths []string, notify func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(paths))
	for _, p := range paths {
		clean := filepath.Clean(p)
		targets[clean] = true
		if err := w.Add(filepath.Dir(clean)); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	log := logger.ForComponent("watch")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				log.Debug("document changed", "path", ev.Name, "op", ev.Op.String())
				notify()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("document watcher error", "error", err)
		}
	}
}
