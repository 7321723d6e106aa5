package domain

import "time"

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventTransition EventType = "transition"
	EventDirection  EventType = "direction"
	EventGesture    EventType = "gesture"
	EventExtra      EventType = "extra_gesture"
	EventAttach     EventType = "attach"
	EventDetach     EventType = "detach"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Surface   string    `json:"surface"`
}

// TransitionEvent represents a mode change.
type TransitionEvent struct {
	EventBase
	From  Mode   `json:"from"`
	To    Mode   `json:"to"`
	Cause string `json:"cause"`
}

// GestureEvent represents a direction commit, a completed gesture or an extra gesture.
type GestureEvent struct {
	EventBase
	Chain  Chain  `json:"chain,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// SurfaceEvent represents a surface being attached or detached.
type SurfaceEvent struct {
	EventBase
}

// LifecycleHooks defines callbacks for engine observability.
// They run synchronously inside the event handler and must not block.
type LifecycleHooks struct {
	OnTransition func(*TransitionEvent)
	OnDirection  func(*GestureEvent)
	OnGesture    func(*GestureEvent)
	OnExtra      func(*GestureEvent)
	OnAttach     func(*SurfaceEvent)
	OnDetach     func(*SurfaceEvent)
}

// CombineHooks fans every callback out to each of the given hook sets, in order.
func CombineHooks(sets ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition: func(e *TransitionEvent) {
			for _, s := range sets {
				if s.OnTransition != nil {
					s.OnTransition(e)
				}
			}
		},
		OnDirection: func(e *GestureEvent) {
			for _, s := range sets {
				if s.OnDirection != nil {
					s.OnDirection(e)
				}
			}
		},
		OnGesture: func(e *GestureEvent) {
			for _, s := range sets {
				if s.OnGesture != nil {
					s.OnGesture(e)
				}
			}
		},
		OnExtra: func(e *GestureEvent) {
			for _, s := range sets {
				if s.OnExtra != nil {
					s.OnExtra(e)
				}
			}
		},
		OnAttach: func(e *SurfaceEvent) {
			for _, s := range sets {
				if s.OnAttach != nil {
					s.OnAttach(e)
				}
			}
		},
		OnDetach: func(e *SurfaceEvent) {
			for _, s := range sets {
				if s.OnDetach != nil {
					s.OnDetach(e)
				}
			}
		},
	}
}
