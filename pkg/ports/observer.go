package ports

import "github.com/aretw0/gestures/pkg/domain"

// Observer receives the results of recognition. Calls are synchronous, in the
// order they are produced, and run inside the serialized event handler.
type Observer interface {
	// OnDirectionChanged reports the chain so far each time a direction is committed.
	OnDirectionChanged(chain domain.Chain)

	// OnMouseGesture reports the final chain of a completed gesture.
	// It fires at most once per gesture and never for a gesture that timed out.
	OnMouseGesture(chain domain.Chain)

	// OnExtraGesture reports rocker, wheel, keypress, swipe and timeout events.
	OnExtraGesture(reason string)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	DirectionChanged func(domain.Chain)
	MouseGesture     func(domain.Chain)
	ExtraGesture     func(string)
}

func (o ObserverFuncs) OnDirectionChanged(chain domain.Chain) {
	if o.DirectionChanged != nil {
		o.DirectionChanged(chain)
	}
}

func (o ObserverFuncs) OnMouseGesture(chain domain.Chain) {
	if o.MouseGesture != nil {
		o.MouseGesture(chain)
	}
}

func (o ObserverFuncs) OnExtraGesture(reason string) {
	if o.ExtraGesture != nil {
		o.ExtraGesture(reason)
	}
}
