package ioutils

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher calls a function when a watched file changes.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// WatchFile watches path and calls onChange after it is written, created or
// renamed into place. Events arriving within debounce of each other collapse
// into one call. The parent directory is watched rather than the file itself
// because most editors save by replacing the file.
//
// onChange runs on its own goroutine. Watching stops when ctx is done or
// Close is called.
func WatchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	logger := log.WithFields(log.Fields{"component": "watcher", "path": abs})

	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				fw.Close()
				return

			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.WithField("op", event.Op.String()).Debug("File changed")
				w.trigger(debounce, onChange)

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.WithError(err).Warn("Watcher error")
			}
		}
	}()

	return w, nil
}

// trigger schedules onChange, resetting any pending call.
func (w *Watcher) trigger(debounce time.Duration, onChange func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounce, onChange)
}

// Close stops watching and waits for the event loop to exit. A pending
// debounced call is cancelled.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}
