// Package linear provides a synchronous, line-per-event renderer for CI environments.
package linear

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/modlock/internal/ui/output"
	"go.trai.ch/modlock/internal/ui/style"
)

// Renderer implements ports.Renderer for CI/non-interactive environments.
// It prints one line when a mod starts and one when it finishes.
type Renderer struct {
	out *termenv.Output

	mu    sync.Mutex
	tasks map[string]taskState // spanID -> task state
}

var _ ports.Renderer = (*Renderer)(nil)

type taskState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a new Renderer writing to w. A nil writer means stderr.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		out:   output.NewWithProfile(w, output.ColorProfileANSI),
		tasks: make(map[string]taskState),
	}
}

// Start is a no-op for linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop is a no-op for linear renderer (synchronous).
func (r *Renderer) Stop() error {
	return nil
}

// OnPlanEmit prints the number of planned mods.
func (r *Renderer) OnPlanEmit(refs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.out, "Processing %d mod(s)\n", len(refs))
}

// OnTaskStart prints a start message.
func (r *Renderer) OnTaskStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = taskState{name: name, startTime: startTime}

	prefix := r.out.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.out, "%s Resolving...\n", prefix)
}

// OnTaskComplete prints completion status.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", task.name)

	if err != nil {
		symbol := r.out.String(style.Cross).Foreground(r.out.Color(style.Hex(style.Red))).String()
		_, _ = fmt.Fprintf(r.out, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	symbol := r.out.String(style.Check).Foreground(r.out.Color(style.Hex(style.Green))).String()
	_, _ = fmt.Fprintf(r.out, "%s %s Done in %v\n", prefix, symbol, duration)
}
