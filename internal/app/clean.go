package app

import (
	"context"
	"fmt"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// DryRun reports what would be removed without removing it.
	DryRun bool
}

// Clean removes files from the download directory that no locked mod points at.
// path may name the mod list or its lock file.
func (a *App) Clean(_ context.Context, path string, opts CleanOptions) error {
	lockPath := domain.LockPathFor(path)
	lock, err := a.locks.Load(lockPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load lock file")
	}

	keep := make(map[string]struct{}, len(lock.Mods))
	for _, e := range lock.Entries() {
		keep[e.File.Name] = struct{}{}
	}

	names, err := a.store.List()
	if err != nil {
		return zerr.Wrap(err, "failed to list download directory")
	}

	removed := 0
	for _, name := range names {
		if _, ok := keep[name]; ok {
			continue
		}
		if opts.DryRun {
			a.logger.Info("would remove " + name)
			removed++
			continue
		}
		if err := a.store.Remove(name); err != nil {
			a.logger.Warn(fmt.Sprintf("could not remove %s: %v", name, err))
			continue
		}
		a.logger.Info("removed " + name)
		removed++
	}

	switch {
	case removed == 0:
		a.logger.Info("nothing to clean")
	case opts.DryRun:
		a.logger.Info(fmt.Sprintf("%d file(s) would be removed", removed))
	default:
		a.logger.Info(fmt.Sprintf("removed %d file(s)", removed))
	}
	return nil
}
