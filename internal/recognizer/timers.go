package recognizer

import (
	"time"

	"github.com/aretw0/gestures/pkg/ports"
)

// Timeouts holds the two one-shot timers of a session: gesture inactivity and
// swipe finalization. Arming a timer replaces its pending firing. A firing
// that lost a race with Stop or a re-arm is dropped.
type Timeouts struct {
	sched   ports.Scheduler
	gesture timerSlot
	swipe   timerSlot
}

type timerSlot struct {
	timer ports.Timer
	gen   uint64
	armed bool
	fire  func()
}

// NewTimeouts binds the fire callbacks to a scheduler.
func NewTimeouts(sched ports.Scheduler, onGesture, onSwipe func()) *Timeouts {
	return &Timeouts{
		sched:   sched,
		gesture: timerSlot{fire: onGesture},
		swipe:   timerSlot{fire: onSwipe},
	}
}

// ArmGesture (re)starts the inactivity timer. A non-positive duration only
// cancels it.
func (t *Timeouts) ArmGesture(d time.Duration) { t.arm(&t.gesture, d) }

// ArmSwipe (re)starts the swipe finalize timer.
func (t *Timeouts) ArmSwipe(d time.Duration) { t.arm(&t.swipe, d) }

// StopGesture cancels the inactivity timer.
func (t *Timeouts) StopGesture() { t.stop(&t.gesture) }

// StopSwipe cancels the swipe finalize timer.
func (t *Timeouts) StopSwipe() { t.stop(&t.swipe) }

// StopAll cancels both timers.
func (t *Timeouts) StopAll() {
	t.stop(&t.gesture)
	t.stop(&t.swipe)
}

// GesturePending reports whether the inactivity timer is armed.
func (t *Timeouts) GesturePending() bool { return t.gesture.armed }

// SwipePending reports whether the swipe finalize timer is armed.
func (t *Timeouts) SwipePending() bool { return t.swipe.armed }

func (t *Timeouts) arm(s *timerSlot, d time.Duration) {
	t.stop(s)
	if d <= 0 {
		return
	}
	gen := s.gen
	s.armed = true
	s.timer = t.sched.AfterFunc(d, func() { t.expire(s, gen) })
}

func (t *Timeouts) stop(s *timerSlot) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.armed = false
	s.gen++
}

func (t *Timeouts) expire(s *timerSlot, gen uint64) {
	if !s.armed || s.gen != gen {
		return
	}
	s.armed = false
	s.timer = nil
	s.gen++
	if s.fire != nil {
		s.fire()
	}
}
