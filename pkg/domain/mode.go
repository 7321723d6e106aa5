package domain

import "fmt"

// Mode is the active recognition mode of a session.
// Exactly one mode is active at a time.
type Mode int

const (
	ModeIdle        Mode = iota // Waiting for a trigger
	ModeFreeGesture             // Directional gesture with the trigger button held
	ModeRocker                  // Second button pressed while another is held
	ModeWheel                   // Scroll ticks while a gesture is held
	ModeKeypress                // Modifier key held during a gesture
)

var modeNames = [...]string{"idle", "gesture", "rocker", "wheel", "keypress"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Active reports whether the mode belongs to an ongoing gesture.
func (m Mode) Active() bool {
	return m != ModeIdle
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if name == string(text) {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", text)
}
