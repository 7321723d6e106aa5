package ports

import "github.com/aretw0/gestures/pkg/domain"

// Gate is consulted before a button press may start a free-form or rocker
// gesture. Returning false drops the press entirely.
type Gate interface {
	CanStartGesture(ev domain.ButtonEvent) bool
}

// GateFunc adapts a function to Gate.
type GateFunc func(ev domain.ButtonEvent) bool

func (f GateFunc) CanStartGesture(ev domain.ButtonEvent) bool {
	return f(ev)
}

// AllowAll is a Gate that never vetoes.
var AllowAll Gate = GateFunc(func(domain.ButtonEvent) bool { return true })
