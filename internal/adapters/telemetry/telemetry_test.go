package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/modlock/internal/adapters/telemetry"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/modlock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_ForwardsSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	gomock.InOrder(
		renderer.EXPECT().OnTaskStart(gomock.Any(), "mod-a", gomock.Any()),
		renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil),
		renderer.EXPECT().OnTaskStart(gomock.Any(), "mod-b", gomock.Any()),
		renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Not(nil)).
			Do(func(_ string, _ time.Time, err error) {
				assert.Equal(t, "boom", err.Error())
			}),
	)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	tracer := tp.Tracer("test")

	_, span := tracer.Start(context.Background(), "mod-a")
	span.End()

	_, span = tracer.Start(context.Background(), "mod-b")
	span.RecordError(errors.New("boom"))
	span.SetStatus(codes.Error, "boom")
	span.End()
}

func TestBridge_NilRenderer(_ *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil)))
	_, span := tp.Tracer("test").Start(context.Background(), "mod")
	span.End()
}

func TestOTelTracer_SpansAndPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().OnPlanEmit([]string{"a", "b"})

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracer(tp, "test").WithRenderer(renderer)
	tracer.EmitPlan(context.Background(), []string{"a", "b"})

	_, span := tracer.Start(context.Background(), "a", ports.WithAttribute("mod", "a"))
	span.SetAttribute("jobs", 2)
	span.SetAttribute("cached", true)
	span.RecordError(errors.New("failed"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "a", ended[0].Name())
	assert.Equal(t, "failed", ended[0].Status().Description)

	attrs := map[string]string{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "a", attrs["mod"])
	assert.Equal(t, "2", attrs["jobs"])
	assert.Equal(t, "true", attrs["cached"])
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx, span := tracer.Start(context.Background(), "x")
	assert.NotNil(t, ctx)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
	tracer.EmitPlan(ctx, []string{"x"})
}

func TestSetup_RegistersBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().OnTaskStart(gomock.Any(), "mod", gomock.Any())
	renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil)

	tp := telemetry.Setup(telemetry.NewBridge(renderer))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracer(tp, telemetry.InstrumentationName)
	_, span := tracer.Start(context.Background(), "mod")
	span.End()
}
