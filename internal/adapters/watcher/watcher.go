// Package watcher notices edits to the mod list so it can be re-synced.
package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 16

// Watcher implements ports.Watcher using fsnotify.
// It watches the file's directory so editors that save by renaming are still seen.
type Watcher struct {
	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
	errs      func(error)
}

// NewWatcher creates a watcher. The fsnotify handle is opened by Start.
// onError receives fsnotify errors; nil discards them.
func NewWatcher(onError func(error)) *Watcher {
	if onError == nil {
		onError = func(error) {}
	}
	idle := make(chan ports.WatchEvent)
	close(idle)
	return &Watcher{events: idle, errs: onError}
}

// Start begins watching path. Each start gets its own event channel, so a
// stopped watcher can be started again.
func (w *Watcher) Start(ctx context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher != nil {
		return zerr.With(zerr.Wrap(domain.ErrWatcherFailed, "already started"), "path", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWatcherFailed, err.Error()), "path", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(domain.ErrWatcherFailed, err.Error())
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return zerr.With(zerr.Wrap(domain.ErrWatcherFailed, err.Error()), "path", path)
	}

	events := make(chan ports.WatchEvent, eventChannelBuffer)
	w.fsWatcher = fsw
	w.events = events

	go w.processEvents(ctx, fsw, abs, events)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}
	err := w.fsWatcher.Close()
	w.fsWatcher = nil
	return err
}

// Events returns an iterator of events for the watched file.
// The sequence ends when the watcher stops or the start context is cancelled.
// Before the first Start it is empty.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	w.mu.Lock()
	events := w.events
	w.mu.Unlock()

	return func(yield func(ports.WatchEvent) bool) {
		for event := range events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context, fsw *fsnotify.Watcher, target string, events chan<- ports.WatchEvent) {
	defer close(events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			watchEvent, ok := convertEvent(event)
			if !ok {
				continue
			}
			select {
			case events <- watchEvent:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.errs(err)
		}
	}
}

func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	switch {
	case event.Has(fsnotify.Write):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpWrite}, true
	case event.Has(fsnotify.Create):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpCreate}, true
	case event.Has(fsnotify.Remove):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpRemove}, true
	case event.Has(fsnotify.Rename):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpRename}, true
	default:
		return ports.WatchEvent{}, false
	}
}
