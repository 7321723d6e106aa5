package ports_test

import (
	"testing"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestObserverFuncs_NilSafe(t *testing.T) {
	var got []string
	obs := ports.ObserverFuncs{
		MouseGesture: func(c domain.Chain) { got = append(got, "gesture:"+c.String()) },
	}

	// Missing callbacks are skipped.
	obs.OnDirectionChanged("R")
	obs.OnExtraGesture(domain.ExtraWheelUp)
	obs.OnMouseGesture("RD")

	assert.Equal(t, []string{"gesture:RD"}, got)
}

func TestGateFunc(t *testing.T) {
	gate := ports.GateFunc(func(ev domain.ButtonEvent) bool {
		return ev.Button != domain.ButtonLeft
	})
	assert.False(t, gate.CanStartGesture(domain.ButtonEvent{Button: domain.ButtonLeft}))
	assert.True(t, gate.CanStartGesture(domain.ButtonEvent{Button: domain.ButtonRight}))
	assert.True(t, ports.AllowAll.CanStartGesture(domain.ButtonEvent{}))
}
