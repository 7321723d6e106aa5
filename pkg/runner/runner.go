package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/gestures"
	"github.com/aretw0/gestures/internal/logging"
	"github.com/aretw0/gestures/pkg/clock"
	"github.com/aretw0/gestures/pkg/config"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/ports"
)

const (
	// Surface is the ID the replayed trace is attached under.
	Surface = "trace"

	// DefaultDrain is the time the clock runs past the last event.
	DefaultDrain = time.Second
)

// Runner replays traces against a fresh engine on a virtual clock.
type Runner struct {
	Handler     Handler
	Logger      *slog.Logger
	Config      domain.Config
	Drain       time.Duration
	Start       time.Time
	ShowEffects bool
	Hooks       domain.LifecycleHooks
}

// NewRunner creates a runner. Without options it discards notifications and
// uses the default configuration.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Handler:     Discard,
		Config:      domain.DefaultConfig(),
		Drain:       DefaultDrain,
		Start:       time.Unix(0, 0).UTC(),
		ShowEffects: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	if r.Handler == nil {
		r.Handler = Discard
	}
	return r
}

// Run replays trace. Before each event the clock is moved to the event's
// offset, firing any timer that fell due in between; after the last event it
// runs for the drain window. Every engine is private to one call, so a Runner
// may replay several traces concurrently.
func (r *Runner) Run(ctx context.Context, trace *Trace) (*Summary, error) {
	if err := trace.Validate(); err != nil {
		return nil, err
	}
	cfg := r.Config
	if len(trace.Config) > 0 {
		if err := config.DecodeInto(&cfg, trace.Config); err != nil {
			return nil, err
		}
	}

	summary := newSummary(trace.Name)
	recording := true
	counter := domain.LifecycleHooks{
		OnTransition: func(e *domain.TransitionEvent) {
			if recording {
				summary.transition(e.From, e.To, e.Cause)
			}
		},
	}

	clk := clock.NewManual(r.Start)
	eng, err := gestures.New(
		gestures.WithConfig(cfg),
		gestures.WithScheduler(clk),
		gestures.WithLogger(r.Logger),
		gestures.WithLifecycleHooks(domain.CombineHooks(r.Hooks, counter)),
	)
	if err != nil {
		return nil, err
	}
	defer eng.Close(context.Background())
	// Detaching on close is not part of the trace.
	defer func() { recording = false }()

	var pending []Notification
	elapsed := func() int64 {
		return clk.Now().Sub(r.Start).Milliseconds()
	}
	observer := ports.ObserverFuncs{
		DirectionChanged: func(c domain.Chain) {
			pending = append(pending, Notification{At: elapsed(), Kind: KindDirection, Value: c.String()})
		},
		MouseGesture: func(c domain.Chain) {
			pending = append(pending, Notification{At: elapsed(), Kind: KindGesture, Value: c.String()})
		},
		ExtraGesture: func(reason string) {
			pending = append(pending, Notification{At: elapsed(), Kind: KindExtra, Value: reason})
		},
	}
	if err := eng.Attach(Surface, observer); err != nil {
		return nil, err
	}

	flush := func() error {
		for _, n := range pending {
			summary.add(n)
			if err := r.Handler.Handle(ctx, n); err != nil {
				return fmt.Errorf("failed to handle notification: %w", err)
			}
		}
		pending = pending[:0]
		return nil
	}

	r.Logger.Debug("replaying trace", "name", trace.Name, "events", len(trace.Events))
	for i, ev := range trace.Events {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		clk.Set(r.Start.Add(ev.Offset()))
		if err := flush(); err != nil {
			return summary, err
		}

		eff, err := eng.Dispatch(Surface, ev)
		if err != nil {
			return summary, fmt.Errorf("event %d: %w", i, err)
		}
		summary.Events++
		if eff.Consumed {
			summary.Consumed++
		}
		if r.ShowEffects && (eff.Consumed || eff.ShowContextMenu) {
			event, effect := ev, eff
			pending = append(pending, Notification{
				At:     elapsed(),
				Kind:   KindEffect,
				Value:  effectLabel(eff),
				Event:  &event,
				Effect: &effect,
			})
		}
		if err := flush(); err != nil {
			return summary, err
		}
	}

	clk.Advance(r.drainFor(trace, cfg))
	if err := flush(); err != nil {
		return summary, err
	}
	summary.Duration = clk.Now().Sub(r.Start)
	if snap, err := eng.Snapshot(Surface); err == nil {
		summary.FinalMode = snap.Mode
	}
	return summary, nil
}

// drainFor never drains for less than the longest timeout, so a timer armed by
// the last event always gets to fire.
func (r *Runner) drainFor(trace *Trace, cfg domain.Config) time.Duration {
	d := r.Drain
	if trace.Drain > 0 {
		d = trace.DrainWindow()
	}
	if cfg.GestureTimeout > d {
		d = cfg.GestureTimeout
	}
	if cfg.SwipeTimeout > d {
		d = cfg.SwipeTimeout
	}
	return d
}
