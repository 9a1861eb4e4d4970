package ports

import (
	"context"
	"time"
)

//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks

// Renderer presents run progress.
// It is driven by the telemetry bridge so the engine only deals with spans.
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error
	// Stop flushes any pending output.
	Stop() error
	// OnPlanEmit is called once with every reference of the run.
	OnPlanEmit(refs []string)
	// OnTaskStart is called when a reference starts processing.
	OnTaskStart(spanID, name string, startTime time.Time)
	// OnTaskComplete is called when a reference finished. err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
