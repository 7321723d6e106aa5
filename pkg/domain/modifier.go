package domain

import (
	"fmt"
	"strings"
)

// Modifiers is a bit set of keyboard modifiers held during a pointer event.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModMeta

	ModNone Modifiers = 0
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModCtrl, "ctrl"},
	{ModShift, "shift"},
	{ModAlt, "alt"},
	{ModMeta, "meta"},
}

// Has reports whether every modifier in m2 is held.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// Any reports whether any modifier in m2 is held.
func (m Modifiers) Any(m2 Modifiers) bool {
	return m&m2 != 0
}

// String joins the held modifiers with "+", e.g. "ctrl+shift".
func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m.Has(mn.mod) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

// MarshalText encodes the set as "ctrl+shift".
func (m Modifiers) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes "ctrl+shift" style text. An empty string is ModNone.
func (m *Modifiers) UnmarshalText(text []byte) error {
	parsed, err := ParseModifiers(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseModifiers parses a "+" or "," separated list of modifier names.
func ParseModifiers(s string) (Modifiers, error) {
	var out Modifiers
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '+' || r == ',' || r == ' '
	})
	for _, f := range fields {
		found := false
		for _, mn := range modifierNames {
			if f == mn.name {
				out |= mn.mod
				found = true
				break
			}
		}
		if !found {
			return ModNone, fmt.Errorf("unknown modifier %q", f)
		}
	}
	return out, nil
}
