// Package app implements the application layer for modlock.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.trai.ch/modlock/internal/adapters/detector"
	"go.trai.ch/modlock/internal/adapters/linear"
	"go.trai.ch/modlock/internal/adapters/progress"
	"go.trai.ch/modlock/internal/adapters/telemetry"
	"go.trai.ch/modlock/internal/adapters/watcher"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/modlock/internal/engine/reconciler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader   ports.ModListLoader
	locks    ports.LockfileRepository
	store    ports.ContentStore
	resolver ports.Resolver
	logger   ports.Logger
	watcher  ports.Watcher
	settings *domain.Settings

	output   io.Writer
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ModListLoader,
	locks ports.LockfileRepository,
	store ports.ContentStore,
	resolver ports.Resolver,
	log ports.Logger,
	w ports.Watcher,
	settings *domain.Settings,
) *App {
	if settings == nil {
		settings = &domain.Settings{Jobs: 1, Output: "auto", DownloadDir: domain.DefaultDownloadDir}
	}
	return &App{
		loader:   loader,
		locks:    locks,
		store:    store,
		resolver: resolver,
		logger:   log,
		watcher:  w,
		settings: settings,
		output:   os.Stderr,
		debounce: watcher.DefaultDebounceWindow,
	}
}

// WithOutput sets where progress is rendered.
func (a *App) WithOutput(w io.Writer) *App {
	a.output = w
	return a
}

// WithDebounce sets how long Watch waits for edits to settle.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// SetLogJSON switches the logger to JSON lines when it supports it.
func (a *App) SetLogJSON(enabled bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enabled)
	}
}

// SyncOptions configuration for the Sync and Restore methods.
type SyncOptions struct {
	// Update resolves every reference again instead of reusing locked files.
	Update bool
	// Jobs overrides the configured parallelism when positive.
	Jobs int
	// OutputMode is one of auto, bar or linear. Empty uses the configured mode.
	OutputMode string
}

// Sync resolves the mod list at listPath, downloads what is missing and rewrites its lock file.
// Mods that fail are reported and left out of the lock file; they do not make Sync fail.
func (a *App) Sync(ctx context.Context, listPath string, opts SyncOptions) error {
	list, err := a.loader.Load(listPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load mod list")
	}

	lockPath := domain.LockPathFor(listPath)
	prior, err := a.locks.Load(lockPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load lock file")
	}

	var (
		next   *domain.Lockfile
		report domain.Report
	)
	err = a.withRun(ctx, opts.OutputMode, func(eng *reconciler.Reconciler) {
		next, report = eng.Reconcile(ctx, prior, list.References(), list.Version, reconciler.Options{
			Update: opts.Update,
			Jobs:   a.jobs(opts.Jobs),
		})
	})
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		a.logger.Warn(fmt.Sprintf("interrupted, %s left unchanged", lockPath))
		return zerr.Wrap(err, "run interrupted")
	}

	if err := a.locks.Save(lockPath, next); err != nil {
		return zerr.Wrap(err, "failed to save lock file")
	}

	a.summarize("locked", report)
	return nil
}

// Restore downloads exactly the files recorded in the lock file at lockPath.
// The lock file is never rewritten.
func (a *App) Restore(ctx context.Context, lockPath string, opts SyncOptions) error {
	lock, err := a.locks.Load(lockPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load lock file")
	}

	if len(lock.Entries()) == 0 {
		a.logger.Warn(fmt.Sprintf("%s has no locked mods", lockPath))
		return nil
	}

	var report domain.Report
	err = a.withRun(ctx, opts.OutputMode, func(eng *reconciler.Reconciler) {
		report = eng.ReconcileFromLedger(ctx, lock, a.jobs(opts.Jobs))
	})
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return zerr.Wrap(err, "run interrupted")
	}

	a.summarize("restored", report)
	return nil
}

// withRun sets up rendering and tracing for one run and hands fn a reconciler wired to them.
func (a *App) withRun(ctx context.Context, outputMode string, fn func(*reconciler.Reconciler)) error {
	renderer := a.newRenderer(outputMode)
	if err := renderer.Start(ctx); err != nil {
		return zerr.Wrap(err, "failed to start renderer")
	}
	defer func() { _ = renderer.Stop() }()

	// Spans started by the tracer below are reported to the renderer through the bridge.
	tp := telemetry.Setup(telemetry.NewBridge(renderer))
	defer func() { _ = tp.Shutdown(context.WithoutCancel(ctx)) }()

	tracer := telemetry.NewOTelTracer(tp, telemetry.InstrumentationName).WithRenderer(renderer)

	fn(reconciler.New(a.resolver, a.store, a.logger, tracer))
	return nil
}

func (a *App) newRenderer(flag string) ports.Renderer {
	if flag == "" {
		flag = a.settings.Output
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), flag)
	if mode == detector.ModeBar {
		return progress.NewRenderer(a.output)
	}
	return linear.NewRenderer(a.output)
}

func (a *App) jobs(flag int) int {
	if flag > 0 {
		return flag
	}
	return max(a.settings.Jobs, 1)
}

func (a *App) summarize(verb string, report domain.Report) {
	total := len(report.Results)
	msg := fmt.Sprintf("%s %d/%d mods", verb, report.Succeeded(), total)
	if failed := report.Failed(); failed > 0 {
		a.logger.Warn(fmt.Sprintf("%s (%d failed)", msg, failed))
		return
	}
	a.logger.Info(msg)
}
