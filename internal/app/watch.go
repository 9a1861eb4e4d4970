package app

import (
	"context"
	"fmt"

	"go.trai.ch/modlock/internal/adapters/watcher"
	"go.trai.ch/zerr"
)

// Watch syncs listPath once and again every time its content changes, until ctx is done.
// Errors from individual syncs are logged; they do not end the watch.
func (a *App) Watch(ctx context.Context, listPath string, opts SyncOptions) error {
	a.syncLogged(ctx, listPath, opts)

	last, _ := watcher.Digest(listPath)

	if err := a.watcher.Start(ctx, listPath); err != nil {
		return zerr.Wrap(err, "failed to watch mod list")
	}
	defer func() { _ = a.watcher.Stop() }()

	changed := make(chan struct{}, 1)
	deb := watcher.NewDebouncer(a.debounce, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer deb.Stop()

	go func() {
		for range a.watcher.Events() {
			deb.Trigger()
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %s for changes", listPath))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			digest, err := watcher.Digest(listPath)
			if err != nil || digest == last {
				continue
			}
			last = digest
			a.syncLogged(ctx, listPath, opts)
		}
	}
}

func (a *App) syncLogged(ctx context.Context, listPath string, opts SyncOptions) {
	if err := a.Sync(ctx, listPath, opts); err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
}
