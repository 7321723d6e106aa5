package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/gestures/internal/presentation/tui"
	"github.com/fsnotify/fsnotify"
)

const defaultWatchDebounce = 100 * time.Millisecond

// RunWatch replays the trace again every time the trace or the config file
// changes, until ctx is cancelled. Bursts of file events closer than debounce
// trigger a single replay.
func RunWatch(ctx context.Context, opts ReplayOptions, debounce time.Duration) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
		opts.Out = out
	}
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}

	targets, err := watchTargets(opts.TracePath, opts.ConfigPath)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files by rename, so the parent directories are
	// watched instead of the files themselves.
	for dir := range dirsOf(targets) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	if !opts.Quiet {
		tui.PrintBanner(out)
	}
	opts.Quiet = true

	logger.Info("Starting Watcher", "trace", opts.TracePath, "config", opts.ConfigPath)
	printSystemMessage(out, "Watching '%s'.", opts.TracePath)

	runWatchIteration(ctx, out, opts)
	printSystemMessage(out, "Waiting for changes...")

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(ev, targets) {
				continue
			}
			logger.Debug("File changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)
		case <-timer.C:
			runWatchIteration(ctx, out, opts)
			printSystemMessage(out, "Waiting for changes...")
		}
	}
}

func runWatchIteration(ctx context.Context, out io.Writer, opts ReplayOptions) {
	if _, err := Replay(ctx, opts); err != nil && !isInterrupted(err) {
		printSystemMessage(out, "Replay failed: %v", err)
	}
}

// watchTargets resolves the non-empty paths to absolute, cleaned file names.
func watchTargets(paths ...string) (map[string]bool, error) {
	targets := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		targets[abs] = true
	}
	return targets, nil
}

func dirsOf(targets map[string]bool) map[string]bool {
	dirs := make(map[string]bool, len(targets))
	for t := range targets {
		dirs[filepath.Dir(t)] = true
	}
	return dirs
}

// relevantEvent reports whether ev touches one of the watched files in a way
// that can change its content.
func relevantEvent(ev fsnotify.Event, targets map[string]bool) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return targets[abs]
}
