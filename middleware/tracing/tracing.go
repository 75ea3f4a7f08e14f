// Package tracing provides a pipeline middleware that wraps command
// execution in an OpenTelemetry span.
package tracing

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/opkit/command"
	"github.com/louisbranch/opkit/pipeline"
)

const tracerName = "github.com/louisbranch/opkit/middleware/tracing"

// spanKey is the assign holding the open execution span.
const spanKey = "tracing.span"

// Middleware opens a span per invocation in before-execution, propagates
// the span context through pipeline.Context.Ctx, and closes the span on
// the matching after stage. Validation failures get a short error span of
// their own since before-execution never ran for them.
type Middleware struct {
	tracer trace.Tracer
}

// New creates a tracing middleware using the global tracer provider.
func New() *Middleware {
	return &Middleware{tracer: otel.Tracer(tracerName)}
}

// NewWithTracerProvider creates a tracing middleware bound to tp.
func NewWithTracerProvider(tp trace.TracerProvider) *Middleware {
	return &Middleware{tracer: tp.Tracer(tracerName)}
}

// BeforeExecution starts the execution span.
func (m *Middleware) BeforeExecution(c *pipeline.Context, _ pipeline.Options) *pipeline.Context {
	name := "unknown"
	if c.Command != nil {
		name = c.Command.Name
	}
	ctx, span := m.tracer.Start(c.Ctx, "opkit.execute "+name,
		trace.WithAttributes(
			attribute.String("opkit.command", name),
			attribute.String("opkit.invocation_id", c.ID),
		),
	)
	c.Ctx = ctx
	c.Assign(spanKey, span)
	return c
}

// AfterExecution marks the span OK and ends it.
func (m *Middleware) AfterExecution(c *pipeline.Context, _ pipeline.Options) *pipeline.Context {
	if span, ok := openSpan(c); ok {
		span.SetStatus(codes.Ok, "")
		span.End()
	}
	return c
}

// AfterFailure records the execution error on the span and ends it.
func (m *Middleware) AfterFailure(c *pipeline.Context, _ pipeline.Options) *pipeline.Context {
	if span, ok := openSpan(c); ok {
		if err := c.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
	return c
}

// Invalid emits a completed error span for the rejected input.
func (m *Middleware) Invalid(c *pipeline.Context, _ pipeline.Options) *pipeline.Context {
	_, span := m.tracer.Start(c.Ctx, "opkit.invalid",
		trace.WithAttributes(attribute.String("opkit.invocation_id", c.ID)),
	)
	var verr *command.ValidationError
	if errors.As(c.Err(), &verr) {
		span.SetAttributes(
			attribute.String("opkit.command", verr.Command),
			attribute.Int("opkit.invalid_fields", len(verr.Changeset.Errors)),
		)
		span.SetStatus(codes.Error, verr.Error())
	}
	span.End()
	return c
}

func openSpan(c *pipeline.Context) (trace.Span, bool) {
	value, ok := c.Assigned(spanKey)
	if !ok {
		return nil, false
	}
	span, ok := value.(trace.Span)
	return span, ok
}
