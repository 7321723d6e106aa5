package domain

import (
	"fmt"
	"strings"
)

// Button identifies a pointer button. Values match the platform numbering
// (0 primary, 1 auxiliary, 2 secondary).
type Button int

const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// Valid reports whether b is one of the three tracked buttons.
func (b Button) Valid() bool {
	return b == ButtonLeft || b == ButtonMiddle || b == ButtonRight
}

// MarshalText encodes the button by name.
func (b Button) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid button %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText accepts "left", "middle", "right" or the numbers 0-2.
func (b *Button) UnmarshalText(text []byte) error {
	parsed, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseButton parses a button name or platform number.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "0":
		return ButtonLeft, nil
	case "middle", "1":
		return ButtonMiddle, nil
	case "right", "2":
		return ButtonRight, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// ButtonState holds the down flags of the three tracked buttons.
// It is only changed by press/release events and documented fixups, never by
// mode transitions.
type ButtonState struct {
	Left   bool `json:"left"`
	Middle bool `json:"middle"`
	Right  bool `json:"right"`
}

// Set records the down flag of b. Unknown buttons are ignored.
func (s *ButtonState) Set(b Button, down bool) {
	switch b {
	case ButtonLeft:
		s.Left = down
	case ButtonMiddle:
		s.Middle = down
	case ButtonRight:
		s.Right = down
	}
}

// Down reports the flag of b.
func (s ButtonState) Down(b Button) bool {
	switch b {
	case ButtonLeft:
		return s.Left
	case ButtonMiddle:
		return s.Middle
	case ButtonRight:
		return s.Right
	}
	return false
}

// Any reports whether at least one button is held.
func (s ButtonState) Any() bool {
	return s.Left || s.Middle || s.Right
}

func (s ButtonState) String() string {
	out := []byte("___")
	if s.Left {
		out[0] = 'L'
	}
	if s.Middle {
		out[1] = 'M'
	}
	if s.Right {
		out[2] = 'R'
	}
	return string(out)
}
