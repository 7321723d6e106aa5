package recognizer_test

import (
	"testing"
	"time"

	"github.com/aretw0/gestures/internal/recognizer"
	"github.com/aretw0/gestures/pkg/clock"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestTimeouts_RearmKeepsOnePendingFiring(t *testing.T) {
	c := clock.NewManual(epoch)
	fired := 0
	var firedAt time.Time
	timers := recognizer.NewTimeouts(c, func() {
		fired++
		firedAt = c.Now()
	}, nil)

	timers.ArmGesture(300 * time.Millisecond)
	c.Advance(100 * time.Millisecond)
	timers.ArmGesture(300 * time.Millisecond)
	assert.Equal(t, 1, c.Pending())
	assert.True(t, timers.GesturePending())

	c.Advance(250 * time.Millisecond)
	assert.Zero(t, fired, "first deadline was cancelled")

	c.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.Equal(t, epoch.Add(400*time.Millisecond), firedAt)
	assert.False(t, timers.GesturePending())

	c.Advance(time.Second)
	assert.Equal(t, 1, fired)
}

func TestTimeouts_IndependentSlots(t *testing.T) {
	c := clock.NewManual(epoch)
	var fired []string
	timers := recognizer.NewTimeouts(c,
		func() { fired = append(fired, "gesture") },
		func() { fired = append(fired, "swipe") },
	)

	timers.ArmGesture(200 * time.Millisecond)
	timers.ArmSwipe(100 * time.Millisecond)
	timers.StopGesture()
	assert.True(t, timers.SwipePending())

	c.Advance(time.Second)
	assert.Equal(t, []string{"swipe"}, fired)
}

func TestTimeouts_ZeroDurationDisables(t *testing.T) {
	c := clock.NewManual(epoch)
	fired := false
	timers := recognizer.NewTimeouts(c, func() { fired = true }, nil)

	timers.ArmGesture(time.Second)
	timers.ArmGesture(0)
	assert.False(t, timers.GesturePending())

	c.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestTimeouts_StopAll(t *testing.T) {
	c := clock.NewManual(epoch)
	fired := 0
	timers := recognizer.NewTimeouts(c, func() { fired++ }, func() { fired++ })

	timers.ArmGesture(time.Second)
	timers.ArmSwipe(time.Second)
	timers.StopAll()
	timers.StopAll()

	assert.Zero(t, c.Pending())
	c.Advance(2 * time.Second)
	assert.Zero(t, fired)
}
