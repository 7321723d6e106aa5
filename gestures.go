package gestures

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/gestures/internal/logging"
	"github.com/aretw0/gestures/internal/recognizer"
	"github.com/aretw0/gestures/pkg/clock"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/ports"
	"github.com/aretw0/gestures/pkg/session"
)

// Engine is the high-level entry point for the gestures library.
// It owns one recognizer per attached surface and routes events to them.
type Engine struct {
	manager *session.Manager
	journal *journalRecorder

	mu     sync.RWMutex
	config domain.Config

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	sched  ports.Scheduler
	gate   ports.Gate

	journalPort ports.Journal
	journalSize int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithConfig sets the configuration new surfaces start with.
func WithConfig(cfg domain.Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithScheduler replaces the real-time scheduler, e.g. with a clock.Manual
// for deterministic replay.
func WithScheduler(s ports.Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// WithGate installs the host veto consulted before any gesture starts.
func WithGate(g ports.Gate) Option {
	return func(e *Engine) {
		e.gate = g
	}
}

// WithJournal records completed and extra gestures. Writes happen on a
// background goroutine; bufferSize bounds the entries waiting to be written
// (0 picks a default). Entries beyond it are dropped and logged.
func WithJournal(j ports.Journal, bufferSize int) Option {
	return func(e *Engine) {
		e.journalPort = j
		e.journalSize = bufferSize
	}
}

// New initializes an Engine with no surfaces attached.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		config: domain.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if err := eng.config.Validate(); err != nil {
		return nil, err
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.sched == nil {
		eng.sched = clock.Real{}
	}
	eng.manager = session.NewManager(
		session.WithScheduler(eng.sched),
		session.WithLogger(eng.logger),
	)
	if eng.journalPort != nil {
		eng.journal = newJournalRecorder(eng.journalPort, eng.journalSize, eng.logger)
	}
	return eng, nil
}

// Config returns the configuration new surfaces start with.
func (e *Engine) Config() domain.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

// Journal returns the journal, or nil when none is configured.
func (e *Engine) Journal() ports.Journal {
	return e.journalPort
}

// Scheduler returns the scheduler timers run on.
func (e *Engine) Scheduler() ports.Scheduler {
	return e.sched
}

// Attach creates a session for a surface with the engine configuration.
func (e *Engine) Attach(id string, observer ports.Observer) error {
	return e.AttachWithConfig(id, e.Config(), observer)
}

// AttachWithConfig creates a session for a surface with its own configuration.
func (e *Engine) AttachWithConfig(id string, cfg domain.Config, observer ports.Observer) error {
	if observer == nil {
		observer = ports.ObserverFuncs{}
	}
	if e.journal != nil {
		observer = &journalingObserver{next: observer, rec: e.journal, surface: id, sched: e.sched}
	}
	err := e.manager.Attach(id, func(sched ports.Scheduler) (*recognizer.Engine, error) {
		opts := []recognizer.Option{
			recognizer.WithScheduler(sched),
			recognizer.WithLogger(e.logger),
			recognizer.WithHooks(e.hooks),
			recognizer.WithSurfaceID(id),
		}
		if e.gate != nil {
			opts = append(opts, recognizer.WithGate(e.gate))
		}
		return recognizer.New(cfg, observer, opts...)
	})
	if err != nil {
		return err
	}
	if e.hooks.OnAttach != nil {
		e.hooks.OnAttach(&domain.SurfaceEvent{EventBase: e.base(domain.EventAttach, id)})
	}
	return nil
}

// Detach destroys the session of a surface, cancelling its timers.
func (e *Engine) Detach(id string) error {
	if err := e.manager.Detach(id); err != nil {
		return err
	}
	if e.hooks.OnDetach != nil {
		e.hooks.OnDetach(&domain.SurfaceEvent{EventBase: e.base(domain.EventDetach, id)})
	}
	return nil
}

// Surfaces returns the attached surface IDs, sorted.
func (e *Engine) Surfaces() []string {
	return e.manager.List()
}

// Dispatch routes a serialized input event to a surface.
func (e *Engine) Dispatch(id string, ev domain.InputEvent) (domain.Effect, error) {
	var eff domain.Effect
	err := e.manager.WithSurface(id, func(r *recognizer.Engine) error {
		var err error
		eff, err = r.Handle(ev)
		return err
	})
	return eff, err
}

// DispatchAround is Dispatch with enter and exit run under the surface lock
// right before and after the handler. No timer callback of the surface runs
// between them, so observer calls seen in that span belong to ev.
func (e *Engine) DispatchAround(id string, ev domain.InputEvent, enter, exit func()) (domain.Effect, error) {
	var eff domain.Effect
	err := e.manager.WithSurface(id, func(r *recognizer.Engine) error {
		enter()
		defer exit()
		var err error
		eff, err = r.Handle(ev)
		return err
	})
	return eff, err
}

// ButtonDown delivers a button press.
func (e *Engine) ButtonDown(id string, ev domain.ButtonEvent) (domain.Effect, error) {
	return e.with(id, func(r *recognizer.Engine) domain.Effect { return r.ButtonDown(ev) })
}

// ButtonUp delivers a button release.
func (e *Engine) ButtonUp(id string, ev domain.ButtonEvent) (domain.Effect, error) {
	return e.with(id, func(r *recognizer.Engine) domain.Effect { return r.ButtonUp(ev) })
}

// Move delivers a pointer motion sample.
func (e *Engine) Move(id string, ev domain.MoveEvent) (domain.Effect, error) {
	return e.with(id, func(r *recognizer.Engine) domain.Effect { return r.Move(ev) })
}

// ScrollTick delivers a wheel notch; negative sign scrolls up.
func (e *Engine) ScrollTick(id string, sign int) (domain.Effect, error) {
	return e.with(id, func(r *recognizer.Engine) domain.Effect { return r.ScrollTick(sign) })
}

// Swipe delivers a platform swipe.
func (e *Engine) Swipe(id string, ev domain.SwipeEvent) (domain.Effect, error) {
	return e.with(id, func(r *recognizer.Engine) domain.Effect { return r.Swipe(ev) })
}

// ContextMenu delivers a context menu request.
func (e *Engine) ContextMenu(id string, ev domain.ButtonEvent) (domain.Effect, error) {
	return e.with(id, func(r *recognizer.Engine) domain.Effect { return r.ContextMenu(ev) })
}

// Click delivers a click.
func (e *Engine) Click(id string, ev domain.ButtonEvent) (domain.Effect, error) {
	return e.with(id, func(r *recognizer.Engine) domain.Effect { return r.Click(ev) })
}

// DragStart reports that a native drag started.
func (e *Engine) DragStart(id string) (domain.Effect, error) {
	return e.with(id, func(r *recognizer.Engine) domain.Effect { return r.DragStart() })
}

// Cancel aborts the gesture in progress on a surface without reporting it.
func (e *Engine) Cancel(id string) error {
	return e.manager.WithSurface(id, func(r *recognizer.Engine) error {
		r.Cancel()
		return nil
	})
}

// Snapshot returns a read-only view of a surface's session.
func (e *Engine) Snapshot(id string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := e.manager.WithSurface(id, func(r *recognizer.Engine) error {
		snap = r.Snapshot()
		return nil
	})
	return snap, err
}

// Reconfigure validates cfg, makes it the default for new surfaces and
// re-applies it to every attached surface in place.
func (e *Engine) Reconfigure(cfg domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.config = cfg
	e.mu.Unlock()

	return e.manager.Each(func(id string, r *recognizer.Engine) error {
		if err := r.Reconfigure(cfg); err != nil {
			return fmt.Errorf("failed to reconfigure %s: %w", id, err)
		}
		return nil
	})
}

// ReconfigureSurface re-applies cfg to one surface only.
func (e *Engine) ReconfigureSurface(id string, cfg domain.Config) error {
	return e.manager.WithSurface(id, func(r *recognizer.Engine) error {
		return r.Reconfigure(cfg)
	})
}

// Close detaches every surface and flushes pending journal writes.
func (e *Engine) Close(ctx context.Context) error {
	for _, id := range e.manager.List() {
		_ = e.Detach(id)
	}
	if e.journal != nil {
		return e.journal.Close(ctx)
	}
	return nil
}

func (e *Engine) with(id string, fn func(*recognizer.Engine) domain.Effect) (domain.Effect, error) {
	var eff domain.Effect
	err := e.manager.WithSurface(id, func(r *recognizer.Engine) error {
		eff = fn(r)
		return nil
	})
	return eff, err
}

func (e *Engine) base(typ domain.EventType, surface string) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.sched.Now(),
		Type:      typ,
		Surface:   surface,
	}
}
