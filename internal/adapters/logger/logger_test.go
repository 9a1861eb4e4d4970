package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modlock/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing uncolored output into a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		goldenName string
	}{
		{name: "simple message", msg: "resolving 3 mods", goldenName: "info_basic"},
		{name: "multiline message", msg: "line1\nline2", goldenName: "info_multiline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("skipped a: boom")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name: "wrapped chain",
			err: zerr.With(
				zerr.Wrap(zerr.Wrap(errors.New("connection refused"), "transfer failed"), "failed to fetch"),
				"url", "http://x",
			),
			goldenName: "error_chain",
		},
		{
			name: "sentinel with metadata",
			err: zerr.With(
				zerr.With(zerr.New("invalid lock file"), "mod", "a"),
				"file", "gone.jar",
			),
			goldenName: "error_metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("hello")
	lg.Error(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"error":"boom"`)

	lg.SetJSON(false)
	buf.Reset()
	lg.Info("plain")
	assert.Equal(t, "plain\n", buf.String())
}

func TestCollectErrorEntries(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		entries := logger.CollectErrorEntries(errors.New("simple"))
		require.Len(t, entries, 1)
		assert.Equal(t, "simple", logger.EntryMessage(entries[0]))
		assert.Nil(t, logger.EntryMetadata(entries[0]))
	})

	t.Run("metadata on an empty link moves to the cause", func(t *testing.T) {
		err := zerr.With(errors.New("disk full"), "path", "/tmp/x")
		entries := logger.CollectErrorEntries(err)
		require.Len(t, entries, 1)
		assert.Equal(t, "disk full", logger.EntryMessage(entries[0]))
		assert.Equal(t, map[string]any{"path": "/tmp/x"}, logger.EntryMetadata(entries[0]))
	})

	t.Run("format puts causes under a header", func(t *testing.T) {
		err := zerr.Wrap(errors.New("inner"), "outer")
		text := logger.FormatErrorEntries(logger.CollectErrorEntries(err))
		assert.Equal(t, "Error: outer\n\n  Caused by:\n    → inner", text)
	})
}
