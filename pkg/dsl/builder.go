package dsl

import (
	"fmt"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/runner"
)

// Default pacing of Stroke.
const (
	DefaultStep     = 10 // pixels per sample
	DefaultInterval = 10 // milliseconds between samples
)

// Builder manages the trace construction. The zero value is not usable; call New.
type Builder struct {
	trace runner.Trace

	now       int64
	x, y      int
	modifiers domain.Modifiers
	step      int
	interval  int64
}

// New creates a new trace builder. The pointer starts at (0,0) and the time
// cursor at 0ms.
func New(name string) *Builder {
	return &Builder{
		trace:    runner.Trace{Name: name},
		step:     DefaultStep,
		interval: DefaultInterval,
	}
}

// Set adds a preference applied over the runner configuration, e.g.
// Set("swipe_timeout", "300ms").
func (b *Builder) Set(key string, value any) *Builder {
	if b.trace.Config == nil {
		b.trace.Config = make(map[string]any)
	}
	b.trace.Config[key] = value
	return b
}

// Drain sets how long the clock keeps running after the last event.
func (b *Builder) Drain(ms int64) *Builder {
	b.trace.Drain = ms
	return b
}

// Pace sets the distance and the delay between the samples of a Stroke.
func (b *Builder) Pace(step int, intervalMS int64) *Builder {
	b.step = step
	b.interval = intervalMS
	return b
}

// Build validates the trace and returns it.
func (b *Builder) Build() (*runner.Trace, error) {
	trace := b.trace
	trace.Events = append([]domain.InputEvent(nil), b.trace.Events...)
	if err := trace.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build trace %q: %w", trace.Name, err)
	}
	return &trace, nil
}

// MustBuild is Build for tests and examples: it panics on an invalid trace.
func (b *Builder) MustBuild() *runner.Trace {
	trace, err := b.Build()
	if err != nil {
		panic(err)
	}
	return trace
}

func (b *Builder) emit(ev domain.InputEvent) *Builder {
	ev.At = b.now
	b.trace.Events = append(b.trace.Events, ev)
	return b
}
