package observability

import (
	"sync"

	"github.com/rs/zerolog"
)

// Tracer receives stage-boundary events from the résumé parser.
// Implementations must be safe for concurrent use and must not panic.
type Tracer interface {
	TraceStage(stage string, fields map[string]any)
	TraceFailure(stage string, err error)
}

// NopTracer discards every event.
type NopTracer struct{}

// TraceStage implements Tracer.
func (NopTracer) TraceStage(string, map[string]any) {}

// TraceFailure implements Tracer.
func (NopTracer) TraceFailure(string, error) {}

// LogTracer writes stage events at debug level and failures at error level.
type LogTracer struct {
	logger zerolog.Logger
}

// NewLogTracer returns a Tracer backed by the given logger.
func NewLogTracer(logger zerolog.Logger) *LogTracer {
	return &LogTracer{logger: logger.With().Str("component", "parser").Logger()}
}

// TraceStage implements Tracer.
func (t *LogTracer) TraceStage(stage string, fields map[string]any) {
	t.logger.Debug().Str("stage", stage).Fields(fields).Msg("stage completed")
}

// TraceFailure implements Tracer.
func (t *LogTracer) TraceFailure(stage string, err error) {
	t.logger.Error().Str("stage", stage).Err(err).Msg("parse failed, returning empty result")
}

// multiTracer fans events out to several tracers.
type multiTracer []Tracer

// Multi returns a Tracer that forwards every event to each of tracers, in order.
func Multi(tracers ...Tracer) Tracer {
	return multiTracer(tracers)
}

// TraceStage implements Tracer.
func (m multiTracer) TraceStage(stage string, fields map[string]any) {
	for _, t := range m {
		t.TraceStage(stage, fields)
	}
}

// TraceFailure implements Tracer.
func (m multiTracer) TraceFailure(stage string, err error) {
	for _, t := range m {
		t.TraceFailure(stage, err)
	}
}

// Event is one recorded tracer call.
type Event struct {
	Stage  string
	Fields map[string]any
	Err    error
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// TraceStage implements Tracer.
func (r *Recorder) TraceStage(stage string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Stage: stage, Fields: fields})
}

// TraceFailure implements Tracer.
func (r *Recorder) TraceFailure(stage string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Stage: stage, Err: err})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Stages returns the recorded stage names in order.
func (r *Recorder) Stages() []string {
	events := r.Events()
	stages := make([]string, 0, len(events))
	for _, e := range events {
		stages = append(stages, e.Stage)
	}
	return stages
}

// Failures returns only the failure events.
func (r *Recorder) Failures() []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}
