package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modlock/internal/adapters/watcher"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
)

func TestWatcher_ReportsOnlyTargetFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "mods.yaml")
	require.NoError(t, os.WriteFile(target, []byte("Mods: []\n"), domain.FilePerm))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Start(ctx, target))
	defer func() { _ = w.Stop() }()

	events := make(chan ports.WatchEvent, 8)
	go func() {
		for ev := range w.Events() {
			events <- ev
		}
		close(events)
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), domain.FilePerm))
	require.NoError(t, os.WriteFile(target, []byte("Mods: [a]\n"), domain.FilePerm))

	select {
	case ev := <-events:
		assert.Equal(t, "mods.yaml", filepath.Base(ev.Path))
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the watched file")
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "mods.yaml")
	require.NoError(t, os.WriteFile(target, nil, domain.FilePerm))

	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Start(context.Background(), target))
	defer func() { _ = w.Stop() }()

	err := w.Start(context.Background(), target)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWatcherFailed)
}

func TestWatcher_RestartAfterStop(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "mods.yaml")
	require.NoError(t, os.WriteFile(target, nil, domain.FilePerm))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Start(ctx, target))
	first := w.Events()
	require.NoError(t, w.Stop())

	drained := make(chan struct{})
	go func() {
		for range first {
		}
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(5 * time.Second):
		t.Fatal("events of the stopped run did not end")
	}

	require.NoError(t, w.Start(ctx, target))
	defer func() { _ = w.Stop() }()

	events := make(chan ports.WatchEvent, 8)
	go func() {
		for ev := range w.Events() {
			events <- ev
		}
		close(events)
	}()

	require.NoError(t, os.WriteFile(target, []byte("Mods: [a]\n"), domain.FilePerm))

	select {
	case ev, ok := <-events:
		require.True(t, ok, "events of the restarted run ended early")
		assert.Equal(t, "mods.yaml", filepath.Base(ev.Path))
	case <-time.After(5 * time.Second):
		t.Fatal("no event after restart")
	}
}

func TestWatcher_EventsBeforeStartIsEmpty(t *testing.T) {
	for range watcher.NewWatcher(nil).Events() {
		t.Fatal("unexpected event")
	}
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	assert.NoError(t, watcher.NewWatcher(nil).Stop())
}

func TestDigest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("same"), domain.FilePerm))
	require.NoError(t, os.WriteFile(b, []byte("same"), domain.FilePerm))

	da, err := watcher.Digest(a)
	require.NoError(t, err)
	db, err := watcher.Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)

	require.NoError(t, os.WriteFile(b, []byte("changed"), domain.FilePerm))
	db, err = watcher.Digest(b)
	require.NoError(t, err)
	assert.NotEqual(t, da, db)

	_, err = watcher.Digest(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
