// Package clock provides the schedulers the recognizer runs its timers on:
// Real for live hosts and Manual for deterministic tests and trace replay.
package clock

import (
	"time"

	"github.com/aretw0/gestures/pkg/ports"
)

// Real schedules callbacks with time.AfterFunc.
type Real struct{}

// AfterFunc implements ports.Scheduler.
func (Real) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}

// Now implements ports.Scheduler.
func (Real) Now() time.Time {
	return time.Now()
}
