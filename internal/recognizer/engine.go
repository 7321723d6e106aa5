package recognizer

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/gestures/internal/logging"
	"github.com/aretw0/gestures/pkg/clock"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/ports"
)

// keypressMods are the modifiers that turn a gesture into a keypress gesture.
const keypressMods = domain.ModCtrl | domain.ModShift | domain.ModMeta

// Engine is the gesture state machine of one surface.
type Engine struct {
	cfg      domain.Config
	observer ports.Observer
	gate     ports.Gate
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	sched    ports.Scheduler
	surface  string

	s      *Session
	timers *Timeouts
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithGate installs the host veto consulted before a gesture starts.
func WithGate(g ports.Gate) Option {
	return func(e *Engine) {
		e.gate = g
	}
}

// WithLogger sets the logger. Transitions and ignored events go to Debug.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers lifecycle hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSurfaceID names the surface in hook events and logs.
func WithSurfaceID(id string) Option {
	return func(e *Engine) {
		e.surface = id
	}
}

// WithScheduler replaces the real-time scheduler. Callbacks it delivers must
// be serialized with the event handlers.
func WithScheduler(s ports.Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// New validates cfg and returns an idle engine reporting to observer.
func New(cfg domain.Config, observer ports.Observer, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		observer: observer,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.observer == nil {
		e.observer = ports.ObserverFuncs{}
	}
	if e.gate == nil {
		e.gate = ports.AllowAll
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.sched == nil {
		e.sched = clock.Real{}
	}
	e.logger = e.logger.With("surface", e.surface)
	e.s = newSession(cfg.MinNodes)
	e.timers = NewTimeouts(e.sched, e.onGestureTimeout, e.onSwipeTimeout)
	return e, nil
}

// Config returns the active configuration.
func (e *Engine) Config() domain.Config {
	return e.cfg
}

// Mode returns the current mode.
func (e *Engine) Mode() domain.Mode {
	return e.s.Mode
}

// Chain returns the chain accumulated so far.
func (e *Engine) Chain() domain.Chain {
	return e.s.Chain
}

// Snapshot returns a read-only view of the session.
func (e *Engine) Snapshot() domain.Snapshot {
	snap := e.s.snapshot()
	snap.Surface = e.surface
	snap.GesturePending = e.timers.GesturePending()
	snap.SwipePending = e.timers.SwipePending()
	return snap
}

// Handle routes a serialized input event to its handler.
func (e *Engine) Handle(ev domain.InputEvent) (domain.Effect, error) {
	if err := ev.Validate(); err != nil {
		return domain.Effect{}, err
	}
	switch ev.Kind {
	case domain.KindButtonDown:
		return e.ButtonDown(ev.ButtonEvent()), nil
	case domain.KindButtonUp:
		return e.ButtonUp(ev.ButtonEvent()), nil
	case domain.KindMove:
		return e.Move(ev.MoveEvent()), nil
	case domain.KindScroll:
		return e.ScrollTick(ev.Delta), nil
	case domain.KindSwipe:
		return e.Swipe(ev.SwipeEvent()), nil
	case domain.KindContextMenu:
		return e.ContextMenu(ev.ButtonEvent()), nil
	case domain.KindClick:
		return e.Click(ev.ButtonEvent()), nil
	case domain.KindDragStart:
		return e.DragStart(), nil
	case domain.KindCancel:
		e.Cancel()
		return domain.Effect{}, nil
	}
	return domain.Effect{}, fmt.Errorf("%w: kind %q", domain.ErrUnknownEvent, ev.Kind)
}

// ButtonDown handles a button press.
func (e *Engine) ButtonDown(ev domain.ButtonEvent) domain.Effect {
	if e.closed || !ev.Button.Valid() {
		e.ignore("button-down", "button", ev.Button)
		return domain.Effect{}
	}
	e.s.Pointer = ev.Point
	if ev.Button == domain.ButtonRight && ev.Target == domain.TargetPlugin {
		e.ignore("button-down", "reason", "plugin target")
		return domain.Effect{}
	}

	b := e.s.Buttons
	if ev.Button != domain.ButtonMiddle {
		// A middle click on a link never delivers its release.
		b.Middle = false
	}
	others := b
	others.Set(ev.Button, false)
	start := ev.Button == e.cfg.TriggerButton &&
		!others.Any() &&
		!(e.cfg.SuppressAlt && ev.Modifiers.Has(domain.ModAlt))
	rocker := ""
	if e.cfg.Modes.Rocker {
		switch {
		case ev.Button == domain.ButtonLeft && b.Right:
			rocker = domain.ExtraRockerLeft
		case ev.Button == domain.ButtonRight && b.Left:
			rocker = domain.ExtraRockerRight
		}
	}
	if (start || rocker != "") && !e.gate.CanStartGesture(ev) {
		e.ignore("button-down", "reason", "vetoed by gate")
		return domain.Effect{}
	}

	b.Set(ev.Button, true)
	e.s.Buttons = b
	if ev.Button == domain.ButtonRight {
		e.s.suppressMenu = false
		e.s.menuPending = false
	}

	switch {
	case start:
		e.startGesture(ev.Point)
		return domain.Effect{Consumed: ev.Button == domain.ButtonLeft && e.cfg.Modes.Mouse}
	case rocker != "":
		e.timers.StopSwipe()
		e.s.swiping = false
		e.s.Anchor = ev.Point
		e.s.Last = ev.Point
		e.enter(domain.ModeRocker, domain.CauseExtra)
		e.extraGesture(rocker)
	}
	return domain.Effect{}
}

// ButtonUp handles a button release. Releasing the last held button ends the
// active gesture.
func (e *Engine) ButtonUp(ev domain.ButtonEvent) domain.Effect {
	if e.closed || !ev.Button.Valid() {
		e.ignore("button-up", "button", ev.Button)
		return domain.Effect{}
	}
	e.s.Pointer = ev.Point
	e.s.Buttons.Set(ev.Button, false)
	if e.s.Buttons.Any() {
		return domain.Effect{}
	}

	switch e.s.Mode {
	case domain.ModeIdle:
	case domain.ModeKeypress:
		mods := ev.Modifiers
		if !mods.Any(keypressMods) {
			mods = e.s.keyMods
		}
		e.stop(domain.CauseRelease, false)
		switch {
		case mods.Any(domain.ModCtrl | domain.ModMeta):
			e.extraGesture(domain.ExtraKeypressCtrl)
		case mods.Has(domain.ModShift):
			e.extraGesture(domain.ExtraKeypressShift)
		}
		e.extraGesture(domain.ExtraKeypressStop)
	default:
		e.stop(domain.CauseRelease, true)
	}

	if e.s.menuPending {
		e.s.menuPending = false
		return domain.Effect{ShowContextMenu: true}
	}
	return domain.Effect{}
}

// Move handles a pointer motion sample.
func (e *Engine) Move(ev domain.MoveEvent) domain.Effect {
	if e.closed {
		return domain.Effect{}
	}
	e.s.Pointer = ev.Point
	switch e.s.Mode {
	case domain.ModeFreeGesture, domain.ModeKeypress:
		if e.cfg.Modes.Keypress && ev.Modifiers.Any(keypressMods) {
			e.s.keyMods = ev.Modifiers
			if e.s.Mode == domain.ModeFreeGesture {
				e.enter(domain.ModeKeypress, domain.CauseModifier)
				e.extraGesture(domain.ExtraKeypressStart)
			} else {
				e.extraGesture(domain.ExtraKeypressProgress)
			}
			return domain.Effect{}
		}
		if e.s.Mode == domain.ModeKeypress {
			return domain.Effect{}
		}
		e.progress(ev.Point)
	case domain.ModeWheel, domain.ModeRocker:
		if e.s.Anchor.Beyond(ev.Point, domain.EscapeRadius) {
			e.logger.Debug("escaped extra gesture", "mode", e.s.Mode, "anchor", e.s.Anchor, "point", ev.Point)
			e.stop(domain.CauseEscape, false)
		}
	default:
		e.ignore("move", "mode", e.s.Mode)
	}
	return domain.Effect{}
}

// progress classifies one free-gesture sample.
func (e *Engine) progress(p domain.Point) {
	if !Displaced(e.s.Last, p, e.cfg.Deadzone) {
		return
	}
	d := Classify(e.s.Last, p, e.cfg.Diagonals)
	e.s.Last = p
	e.timers.ArmGesture(e.cfg.GestureTimeout)
	if !e.cfg.Modes.Mouse {
		return
	}
	if e.s.commit(d) {
		chain := e.s.Chain
		e.emitGesture(domain.EventDirection, e.hooks.OnDirection, chain, "")
		e.observer.OnDirectionChanged(chain)
	}
}

// ScrollTick handles one wheel notch. A negative sign scrolls up.
func (e *Engine) ScrollTick(sign int) domain.Effect {
	if e.closed || sign == 0 || !e.cfg.Modes.Wheel {
		return domain.Effect{}
	}
	if e.s.Mode != domain.ModeFreeGesture && e.s.Mode != domain.ModeWheel {
		return domain.Effect{}
	}
	reason := domain.ExtraWheelDown
	if sign < 0 {
		reason = domain.ExtraWheelUp
	}
	e.s.Anchor = e.s.Pointer
	e.enter(domain.ModeWheel, domain.CauseExtra)
	e.extraGesture(reason)
	return domain.Effect{Consumed: true}
}

// Swipe handles a platform swipe. With a zero swipe timeout every swipe is
// reported on its own; otherwise swipes accumulate into a chain that is
// finalized after the timeout elapses without another swipe.
func (e *Engine) Swipe(ev domain.SwipeEvent) domain.Effect {
	if e.closed || !e.cfg.Modes.Swipe {
		return domain.Effect{}
	}
	if !ev.Direction.Valid() || ev.Direction.Diagonal() {
		e.ignore("swipe", "direction", ev.Direction)
		return domain.Effect{}
	}
	if e.s.Mode.Active() {
		e.ignore("swipe", "mode", e.s.Mode)
		return domain.Effect{}
	}

	if e.cfg.SwipeTimeout <= 0 {
		reason := domain.SwipeReason(ev.Direction)
		e.emitGesture(domain.EventExtra, e.hooks.OnExtra, "", reason)
		e.observer.OnExtraGesture(reason)
		return domain.Effect{Consumed: true}
	}

	if !e.s.swiping {
		e.s.swiping = true
		e.s.clearChain()
		e.s.Anchor = ev.Point
	}
	e.s.Last = ev.Point
	e.s.Pointer = ev.Point
	e.timers.ArmSwipe(e.cfg.SwipeTimeout)
	if next, ok := e.s.Chain.Append(ev.Direction); ok {
		e.s.Chain = next
		e.emitGesture(domain.EventDirection, e.hooks.OnDirection, next, "")
		e.observer.OnDirectionChanged(next)
	}
	return domain.Effect{Consumed: true}
}

// ContextMenu handles the platform context menu request. A menu right after a
// gesture is swallowed; a menu arriving while a right-button gesture may
// still start is held back and released by ButtonUp.
func (e *Engine) ContextMenu(ev domain.ButtonEvent) domain.Effect {
	if e.closed || ev.Button == domain.ButtonLeft {
		return domain.Effect{}
	}
	if e.s.suppressMenu {
		e.s.suppressMenu = false
		return domain.Effect{Consumed: true}
	}
	if e.s.Mode.Active() && e.s.Buttons.Right && !e.s.Buttons.Left {
		e.s.menuPending = true
		return domain.Effect{Consumed: true}
	}
	return domain.Effect{}
}

// Click swallows the click that follows a rocker chord.
func (e *Engine) Click(ev domain.ButtonEvent) domain.Effect {
	if e.closed {
		return domain.Effect{}
	}
	return domain.Effect{Consumed: e.s.Mode == domain.ModeRocker}
}

// DragStart clears the left flag: a native drag swallows its release.
func (e *Engine) DragStart() domain.Effect {
	if e.closed || e.s.Mode == domain.ModeRocker {
		return domain.Effect{}
	}
	e.s.Buttons.Left = false
	return domain.Effect{}
}

// Cancel aborts the current gesture or swipe sequence without reporting it.
func (e *Engine) Cancel() {
	if e.closed {
		return
	}
	if e.s.Mode.Active() || e.s.swiping {
		e.stop(domain.CauseCancel, false)
	}
}

// Reconfigure swaps the configuration in place. The session keeps its mode,
// buttons and chain; timers disabled by the new values are cancelled.
func (e *Engine) Reconfigure(cfg domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if e.closed {
		return nil
	}
	if cfg.MinNodes != e.cfg.MinNodes {
		e.s.filter = NewNodeFilter(cfg.MinNodes)
	}
	if cfg.GestureTimeout <= 0 {
		e.timers.StopGesture()
	}
	if cfg.SwipeTimeout <= 0 && e.s.swiping {
		e.timers.StopSwipe()
		e.s.swiping = false
		e.s.clearChain()
	}
	e.cfg = cfg
	e.logger.Debug("reconfigured", "trigger", cfg.TriggerButton, "deadzone", cfg.Deadzone, "min_nodes", cfg.MinNodes)
	e.emitGesture(domain.EventExtra, e.hooks.OnExtra, "", domain.ExtraReloadPrefs)
	e.observer.OnExtraGesture(domain.ExtraReloadPrefs)
	return nil
}

// Close stops the session and cancels both timers. Later events are ignored.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	if e.s.Mode.Active() || e.s.swiping {
		e.stop(domain.CauseDetach, false)
	}
	e.timers.StopAll()
	e.closed = true
}

func (e *Engine) startGesture(p domain.Point) {
	e.timers.StopAll()
	e.s.swiping = false
	e.s.clearChain()
	e.s.Last = p
	e.s.Anchor = p
	e.enter(domain.ModeFreeGesture, domain.CauseStart)
}

// stop returns to Idle. With terminal set, a non-empty chain is reported as a
// completed gesture.
func (e *Engine) stop(cause string, terminal bool) {
	e.timers.StopAll()
	chain := e.s.Chain
	e.s.clearChain()
	e.s.swiping = false
	e.enter(domain.ModeIdle, cause)
	if terminal && !chain.Empty() {
		e.s.suppressMenu = true
		e.s.menuPending = false
		e.emitGesture(domain.EventGesture, e.hooks.OnGesture, chain, "")
		e.observer.OnMouseGesture(chain)
	}
}

// extraGesture reports a non-directional gesture. It resets the chain and
// holds back the context menu. While a gesture stays active the inactivity
// timer restarts.
func (e *Engine) extraGesture(reason string) {
	e.s.clearChain()
	e.s.suppressMenu = true
	e.s.menuPending = false
	if e.s.Mode.Active() {
		e.timers.ArmGesture(e.cfg.GestureTimeout)
	}
	e.emitGesture(domain.EventExtra, e.hooks.OnExtra, "", reason)
	e.observer.OnExtraGesture(reason)
}

func (e *Engine) onGestureTimeout() {
	if e.closed || !e.s.Mode.Active() {
		return
	}
	e.logger.Debug("gesture timed out", "mode", e.s.Mode, "chain", e.s.Chain)
	e.stop(domain.CauseTimeout, false)
	e.extraGesture(domain.ExtraGestureTimeout)
}

func (e *Engine) onSwipeTimeout() {
	if e.closed || !e.s.swiping {
		return
	}
	chain := e.s.Chain
	e.s.swiping = false
	e.s.clearChain()
	if chain.Empty() {
		return
	}
	e.emitGesture(domain.EventGesture, e.hooks.OnGesture, chain, "")
	e.observer.OnMouseGesture(chain)
}

func (e *Engine) enter(to domain.Mode, cause string) {
	from := e.s.Mode
	if from == to {
		return
	}
	e.s.Mode = to
	e.logger.Debug("transition", "from", from, "to", to, "cause", cause)
	if e.hooks.OnTransition != nil {
		e.hooks.OnTransition(&domain.TransitionEvent{
			EventBase: e.base(domain.EventTransition),
			From:      from,
			To:        to,
			Cause:     cause,
		})
	}
}

func (e *Engine) emitGesture(typ domain.EventType, hook func(*domain.GestureEvent), chain domain.Chain, reason string) {
	if hook == nil {
		return
	}
	hook(&domain.GestureEvent{
		EventBase: e.base(typ),
		Chain:     chain,
		Reason:    reason,
	})
}

func (e *Engine) base(typ domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.sched.Now(),
		Type:      typ,
		Surface:   e.surface,
	}
}

func (e *Engine) ignore(event string, args ...any) {
	e.logger.Debug("ignored event", append([]any{"event", event, "closed", e.closed}, args...)...)
}
