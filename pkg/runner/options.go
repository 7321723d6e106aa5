package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/gestures/pkg/domain"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithHandler configures where notifications go.
func WithHandler(h Handler) Option {
	return func(r *Runner) {
		r.Handler = h
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithConfig sets the configuration a trace's own preferences are applied over.
func WithConfig(cfg domain.Config) Option {
	return func(r *Runner) {
		r.Config = cfg
	}
}

// WithDrain sets how long the clock keeps running after the last event when
// the trace does not say.
func WithDrain(d time.Duration) Option {
	return func(r *Runner) {
		r.Drain = d
	}
}

// WithStart sets the virtual time the trace starts at.
func WithStart(t time.Time) Option {
	return func(r *Runner) {
		r.Start = t
	}
}

// WithEffects toggles effect notifications for consumed events.
func WithEffects(enabled bool) Option {
	return func(r *Runner) {
		r.ShowEffects = enabled
	}
}

// WithLifecycleHooks forwards engine hooks, e.g. to metrics.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.Hooks = hooks
	}
}
