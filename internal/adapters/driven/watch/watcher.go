// Package watch triggers callbacks when an OTU table changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/otuscan/internal/core/ports/driven"
	"github.com/custodia-labs/otuscan/internal/logger"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.TableWatcher = (*Watcher)(nil)

// Watcher is an fsnotify-backed driven.TableWatcher.
//
// The parent directory is watched rather than the file itself so that
// tables replaced by rename (as most editors and pipelines do) keep
// being tracked.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce selects DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch blocks until ctx is cancelled, calling onChange once per settled
// burst of changes to path. Calls to onChange never overlap.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("Watching %s", abs)

	var (
		mu      sync.Mutex
		running sync.WaitGroup
		timer   *time.Timer
	)
	fire := func() {
		mu.Lock()
		defer mu.Unlock()
		onChange()
	}
	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			running.Done()
		}
		mu.Unlock()
		running.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, abs) {
				continue
			}
			logger.Debug("Change detected: %s", ev)

			mu.Lock()
			if timer != nil && timer.Stop() {
				running.Done()
			}
			running.Add(1)
			timer = time.AfterFunc(w.debounce, func() {
				defer running.Done()
				fire()
			})
			mu.Unlock()
		}
	}
}

// relevant reports whether ev changes the contents at path.
func relevant(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
