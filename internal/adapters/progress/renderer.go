// Package progress renders a run as a single progress bar for interactive terminals.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.trai.ch/modlock/internal/core/ports"
)

const (
	barWidth = 30
	throttle = 80 * time.Millisecond
)

// Renderer implements ports.Renderer with a progress bar counting finished mods.
type Renderer struct {
	w   io.Writer
	bar *progressbar.ProgressBar

	mu     sync.Mutex
	names  map[string]string // spanID -> mod reference
	failed int
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer creates a new Renderer writing to w. A nil writer means stderr.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{w: w, names: make(map[string]string)}
}

// Start prepares an empty bar. The total is set once the plan is known.
func (r *Renderer) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bar = progressbar.NewOptions(
		0,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("mods"),
		progressbar.OptionThrottle(throttle),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(r.w)
		}),
	)
	return nil
}

// Stop leaves the bar as it is when the run ended early.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar == nil || r.bar.IsFinished() {
		return nil
	}
	return r.bar.Exit()
}

// OnPlanEmit sets the bar's total.
func (r *Renderer) OnPlanEmit(refs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar == nil {
		return
	}
	r.bar.ChangeMax(len(refs))
}

// OnTaskStart shows the mod being processed.
func (r *Renderer) OnTaskStart(spanID, name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names[spanID] = name
	if r.bar != nil {
		r.bar.Describe(name)
	}
}

// OnTaskComplete advances the bar.
func (r *Renderer) OnTaskComplete(spanID string, _ time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[spanID]; !ok {
		return
	}
	delete(r.names, spanID)

	if err != nil {
		r.failed++
	}
	if r.bar == nil {
		return
	}
	if r.failed > 0 {
		r.bar.Describe(fmt.Sprintf("mods (%d failed)", r.failed))
	}
	_ = r.bar.Add(1)
}

// Failed returns the number of mods that finished with an error.
func (r *Renderer) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Completed returns the number of mods the bar has counted.
func (r *Renderer) Completed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		return 0
	}
	return int(r.bar.State().CurrentNum)
}
