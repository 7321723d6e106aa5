package domain

import (
	"fmt"
	"time"
)

// Target classifies the element under the pointer when a button goes down.
type Target string

const (
	TargetContent Target = ""
	// TargetPlugin is embedded content (object/embed) that opens its own
	// context menu; a right press on it must not arm a rocker gesture.
	TargetPlugin Target = "plugin"
)

// ButtonEvent is a normalized press or release.
type ButtonEvent struct {
	Button    Button
	Point     Point
	Modifiers Modifiers
	Target    Target
}

// MoveEvent is a normalized pointer motion sample.
type MoveEvent struct {
	Point     Point
	Modifiers Modifiers
}

// SwipeEvent is a platform swipe, already debounced by the input source.
type SwipeEvent struct {
	Direction Direction
	Point     Point
}

// EventKind names an inbound event in traces and over the wire.
type EventKind string

const (
	KindButtonDown  EventKind = "down"
	KindButtonUp    EventKind = "up"
	KindMove        EventKind = "move"
	KindScroll      EventKind = "scroll"
	KindSwipe       EventKind = "swipe"
	KindContextMenu EventKind = "contextmenu"
	KindClick       EventKind = "click"
	KindDragStart   EventKind = "dragstart"
	KindCancel      EventKind = "cancel"
)

// InputEvent is the serializable form of every inbound event.
// Only the fields relevant to Kind are read.
type InputEvent struct {
	Kind EventKind `json:"kind" yaml:"kind"`

	// At is the offset from the start of a recorded trace, in milliseconds.
	At int64 `json:"at,omitempty" yaml:"at,omitempty"`

	Button    Button    `json:"button,omitempty" yaml:"button,omitempty"`
	X         int       `json:"x,omitempty" yaml:"x,omitempty"`
	Y         int       `json:"y,omitempty" yaml:"y,omitempty"`
	Modifiers Modifiers `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Target    Target    `json:"target,omitempty" yaml:"target,omitempty"`

	// Delta is the scroll tick sign: negative scrolls up, positive down.
	Delta int `json:"delta,omitempty" yaml:"delta,omitempty"`

	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Offset returns At as a duration.
func (e InputEvent) Offset() time.Duration {
	return time.Duration(e.At) * time.Millisecond
}

// Point returns the pointer position carried by the event.
func (e InputEvent) Point() Point {
	return Point{X: e.X, Y: e.Y}
}

// ButtonEvent converts a down/up/contextmenu/click event.
func (e InputEvent) ButtonEvent() ButtonEvent {
	return ButtonEvent{Button: e.Button, Point: e.Point(), Modifiers: e.Modifiers, Target: e.Target}
}

// MoveEvent converts a move event.
func (e InputEvent) MoveEvent() MoveEvent {
	return MoveEvent{Point: e.Point(), Modifiers: e.Modifiers}
}

// SwipeEvent converts a swipe event.
func (e InputEvent) SwipeEvent() SwipeEvent {
	return SwipeEvent{Direction: e.Direction, Point: e.Point()}
}

// Validate checks that the fields required by Kind are present.
func (e InputEvent) Validate() error {
	switch e.Kind {
	case KindButtonDown, KindButtonUp, KindContextMenu, KindClick:
		if !e.Button.Valid() {
			return fmt.Errorf("%w: %s event with invalid button %d", ErrUnknownEvent, e.Kind, int(e.Button))
		}
	case KindScroll:
		if e.Delta == 0 {
			return fmt.Errorf("%w: scroll event without delta", ErrUnknownEvent)
		}
	case KindSwipe:
		if !e.Direction.Valid() || e.Direction.Diagonal() {
			return fmt.Errorf("%w: swipe event needs left, right, up or down", ErrUnknownEvent)
		}
	case KindMove, KindDragStart, KindCancel:
	default:
		return fmt.Errorf("%w: kind %q", ErrUnknownEvent, e.Kind)
	}
	if e.At < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrUnknownEvent, e.At)
	}
	return nil
}
