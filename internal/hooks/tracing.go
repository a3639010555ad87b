package hooks

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nimbuswire/envelope/internal/wire"
)

const tracerName = "nimbuswire/envelope"

// TracingPreSerialize starts a span named "Serialize" around one
// serialize call. PostSerializeHook only sees the payload, not the
// event, so the span is handed off to the paired TracingPostSerialize
// hook through holder rather than through the context.
func TracingPreSerialize(holder *SpanHolder) PreSerializeHook {
	return func(ctx context.Context, e wire.Event) (wire.Event, error) {
		_, span := otel.Tracer(tracerName).Start(ctx, "Serialize")
		span.SetAttributes(
			attribute.String("envelope.id", e.ID),
			attribute.String("envelope.type", e.Type),
			attribute.String("envelope.source", e.Source),
		)
		holder.set(span)
		return e, nil
	}
}

// TracingPostSerialize ends the span started by TracingPreSerialize.
func TracingPostSerialize(holder *SpanHolder) PostSerializeHook {
	return func(ctx context.Context, payload string) (string, error) {
		holder.end()
		return payload, nil
	}
}

// TracingPreDeserialize starts a span named "ConvertToEnvelope" around
// one convert-to-envelope call.
func TracingPreDeserialize(holder *SpanHolder) PreDeserializeHook {
	return func(ctx context.Context, payload string) (string, error) {
		_, span := otel.Tracer(tracerName).Start(ctx, "ConvertToEnvelope")
		holder.set(span)
		return payload, nil
	}
}

// TracingPostDeserialize ends the span started by TracingPreDeserialize
// and attaches the materialized envelope's identifying fields.
func TracingPostDeserialize(holder *SpanHolder) PostDeserializeHook {
	return func(ctx context.Context, e wire.Event) (wire.Event, error) {
		span := holder.get()
		if span != nil {
			span.SetAttributes(
				attribute.String("envelope.id", e.ID),
				attribute.String("envelope.type", e.Type),
				attribute.String("envelope.source", e.Source),
			)
		}
		holder.end()
		return e, nil
	}
}

// SpanHolder carries the in-flight span between a pre-phase hook and its
// paired post-phase hook within one serialize or convert-to-envelope
// call. A single call's hooks run sequentially and are never shared
// across concurrent calls (per the concurrency model), so a holder is
// safe to reuse only within one call's Callbacks.Run* sequence; callers
// construct a fresh SpanHolder per call.
type SpanHolder struct {
	span trace.Span
}

// NewSpanHolder returns an empty holder for one serialize or
// convert-to-envelope call.
func NewSpanHolder() *SpanHolder { return &SpanHolder{} }

func (h *SpanHolder) set(span trace.Span) { h.span = span }

func (h *SpanHolder) get() trace.Span { return h.span }

func (h *SpanHolder) end() {
	if h.span != nil {
		h.span.End()
		h.span = nil
	}
}
