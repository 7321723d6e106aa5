package domain

import (
	"fmt"
	"strings"
)

// Direction is a single committed segment of motion.
// Its byte value is the character used when concatenating a Chain; the
// diagonal tokens follow the numeric keypad layout.
type Direction byte

const (
	DirectionNone Direction = 0

	Left  Direction = 'L'
	Right Direction = 'R'
	Up    Direction = 'U'
	Down  Direction = 'D'

	UpRight   Direction = '9'
	UpLeft    Direction = '7'
	DownRight Direction = '3'
	DownLeft  Direction = '1'
)

var directionNames = map[Direction]string{
	Left:      "left",
	Right:     "right",
	Up:        "up",
	Down:      "down",
	UpRight:   "up-right",
	UpLeft:    "up-left",
	DownRight: "down-right",
	DownLeft:  "down-left",
}

// Valid reports whether d is one of the eight direction tokens.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

// Diagonal reports whether d is one of the four diagonal tokens.
func (d Direction) Diagonal() bool {
	return d == UpRight || d == UpLeft || d == DownRight || d == DownLeft
}

// Name returns the long form of the token, e.g. "up-right".
func (d Direction) Name() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "none"
}

// String returns the single-character token.
func (d Direction) String() string {
	if !d.Valid() {
		return ""
	}
	return string(rune(d))
}

// MarshalText encodes the direction by its long name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %q", byte(d))
	}
	return []byte(d.Name()), nil
}

// UnmarshalText accepts either the token ("L") or the long name ("left").
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses a token or a long name. Names are case-insensitive.
func ParseDirection(s string) (Direction, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		d := Direction(strings.ToUpper(s)[0])
		if d.Valid() {
			return d, nil
		}
	}
	lower := strings.ToLower(s)
	for d, name := range directionNames {
		if name == lower {
			return d, nil
		}
	}
	return DirectionNone, fmt.Errorf("unknown direction %q", s)
}
