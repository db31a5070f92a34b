package trace

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
)

// TracerName is the instrumentation scope used for validation spans.
const TracerName = "assetcheck/assetinput"

// OtelSink maps each run onto a span and each transition onto a span event.
type OtelSink struct {
	tracer oteltrace.Tracer

	mu    sync.Mutex
	spans map[string]oteltrace.Span
}

// NewOtelSink builds a sink from provider.
func NewOtelSink(provider oteltrace.TracerProvider) *OtelSink {
	return &OtelSink{tracer: provider.Tracer(TracerName), spans: make(map[string]oteltrace.Span)}
}

// OnStart opens the run span.
func (o *OtelSink) OnStart(start assetinput.TraceStart) {
	_, span := o.tracer.Start(context.Background(), "assetinput.validate",
		oteltrace.WithAttributes(
			attribute.String("run.id", start.ID),
			attribute.String("selection", string(start.Selection)),
			attribute.String("input", start.Input),
			attribute.Int64("chain.id", int64(start.ChainID)),
			attribute.Bool("manual_entry", start.ManualEntry),
		))
	o.mu.Lock()
	o.spans[start.ID] = span
	o.mu.Unlock()
}

// OnTransition records t as a span event.
func (o *OtelSink) OnTransition(id string, t assetinput.Transition) {
	span := o.span(id, false)
	if span == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("from", t.From.String()),
		attribute.String("to", t.To.String()),
	}
	if t.Err != "" {
		attrs = append(attrs, attribute.String("error", t.Err))
	}
	span.AddEvent("transition", oteltrace.WithAttributes(attrs...))
}

// OnFinish ends the span, marking error states as failures.
func (o *OtelSink) OnFinish(id string, final assetinput.State) {
	span := o.span(id, true)
	if span == nil {
		return
	}
	span.SetAttributes(attribute.String("final_state", final.String()))
	if assetinput.IsErrorState(final) {
		span.SetStatus(codes.Error, assetinput.Message(final))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (o *OtelSink) span(id string, remove bool) oteltrace.Span {
	o.mu.Lock()
	defer o.mu.Unlock()
	span, ok := o.spans[id]
	if !ok {
		return nil
	}
	if remove {
		delete(o.spans, id)
	}
	return span
}
