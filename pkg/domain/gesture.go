package domain

// Extra gesture reasons reported through Observer.OnExtraGesture.
const (
	ExtraRockerLeft  = "rocker-left"
	ExtraRockerRight = "rocker-right"

	ExtraWheelUp   = "wheel-up"
	ExtraWheelDown = "wheel-down"

	ExtraKeypressStart    = "keypress-start"
	ExtraKeypressProgress = "keypress-progress"
	ExtraKeypressCtrl     = "keypress-ctrl"
	ExtraKeypressShift    = "keypress-shift"
	ExtraKeypressStop     = "keypress-stop"

	ExtraGestureTimeout = "gesture-timeout"
	ExtraReloadPrefs    = "reload-prefs"
)

// SwipeReason returns the extra gesture reason of a single platform swipe,
// e.g. "swipe-left".
func SwipeReason(d Direction) string {
	return "swipe-" + d.Name()
}

// Transition causes carried by TransitionEvent.
const (
	CauseStart    = "start"
	CauseExtra    = "extra"
	CauseRelease  = "release"
	CauseEscape   = "escape"
	CauseTimeout  = "timeout"
	CauseSwipe    = "swipe"
	CauseCancel   = "cancel"
	CauseDetach   = "detach"
	CauseModifier = "modifier"
)
