package domain

import (
	"fmt"
	"time"
)

// Default values of Config.
const (
	DefaultDeadzone = 7
	DefaultMinNodes = 2

	// EscapeRadius is the distance from the point where a wheel or rocker
	// gesture fired beyond which further motion aborts it. It is larger than
	// the deadzone so the motion that produced the extra gesture does not
	// count as an escape.
	EscapeRadius = 10
)

// TrailConfig carries the visual trail options. The recognizer never reads
// them; they are passed through to the host's trail renderer.
type TrailConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled" env:"ENABLED"`
	Size    int    `yaml:"size" json:"size" mapstructure:"size" env:"SIZE"`
	Color   string `yaml:"color" json:"color" mapstructure:"color" env:"COLOR"`
}

// ModeFlags enables or disables each gesture family.
type ModeFlags struct {
	Mouse    bool `yaml:"mouse" json:"mouse" mapstructure:"mouse" env:"MOUSE"`
	Wheel    bool `yaml:"wheel" json:"wheel" mapstructure:"wheel" env:"WHEEL"`
	Rocker   bool `yaml:"rocker" json:"rocker" mapstructure:"rocker" env:"ROCKER"`
	Keypress bool `yaml:"keypress" json:"keypress" mapstructure:"keypress" env:"KEYPRESS"`
	Swipe    bool `yaml:"swipe" json:"swipe" mapstructure:"swipe" env:"SWIPE"`
}

// Config holds the recognition settings of one surface.
// It can be re-applied at runtime without losing session identity.
type Config struct {
	// TriggerButton is the only button that starts a free-form gesture.
	TriggerButton Button `yaml:"trigger_button" json:"trigger_button" mapstructure:"trigger_button" env:"TRIGGER_BUTTON"`

	// SuppressAlt prevents starting a gesture while Alt is held.
	SuppressAlt bool `yaml:"suppress_alt" json:"suppress_alt" mapstructure:"suppress_alt" env:"SUPPRESS_ALT"`

	// Deadzone is the minimum displacement in pixels before a sample is classified.
	Deadzone int `yaml:"deadzone" json:"deadzone" mapstructure:"deadzone" env:"DEADZONE"`

	// MinNodes is the number of consecutive agreeing samples required to
	// commit a new direction.
	MinNodes int `yaml:"min_nodes" json:"min_nodes" mapstructure:"min_nodes" env:"MIN_NODES"`

	// Diagonals switches classification from 4 to 8 directions.
	Diagonals bool `yaml:"diagonals" json:"diagonals" mapstructure:"diagonals" env:"DIAGONALS"`

	Trail TrailConfig `yaml:"trail" json:"trail" mapstructure:"trail" envPrefix:"TRAIL_"`

	// GestureTimeout aborts a gesture left without progress. Zero disables it.
	GestureTimeout time.Duration `yaml:"gesture_timeout" json:"gesture_timeout" mapstructure:"gesture_timeout" env:"GESTURE_TIMEOUT"`

	// SwipeTimeout is the quiet period that finalizes a chain of platform
	// swipes. Zero dispatches every swipe on its own.
	SwipeTimeout time.Duration `yaml:"swipe_timeout" json:"swipe_timeout" mapstructure:"swipe_timeout" env:"SWIPE_TIMEOUT"`

	Modes ModeFlags `yaml:"modes" json:"modes" mapstructure:"modes" envPrefix:"MODE_"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		TriggerButton: ButtonRight,
		Deadzone:      DefaultDeadzone,
		MinNodes:      DefaultMinNodes,
		Trail: TrailConfig{
			Enabled: true,
			Size:    2,
			Color:   "#33FF33",
		},
		Modes: ModeFlags{
			Mouse:    true,
			Wheel:    true,
			Rocker:   true,
			Keypress: true,
			Swipe:    true,
		},
	}
}

// Validate rejects values outside their documented ranges.
// Values are never clamped.
func (c Config) Validate() error {
	if !c.TriggerButton.Valid() {
		return fmt.Errorf("%w: trigger_button %d is not left, middle or right", ErrInvalidConfig, int(c.TriggerButton))
	}
	if c.Deadzone <= 0 {
		return fmt.Errorf("%w: deadzone must be positive, got %d", ErrInvalidConfig, c.Deadzone)
	}
	if c.MinNodes < 1 {
		return fmt.Errorf("%w: min_nodes must be at least 1, got %d", ErrInvalidConfig, c.MinNodes)
	}
	if c.GestureTimeout < 0 {
		return fmt.Errorf("%w: gesture_timeout must not be negative, got %s", ErrInvalidConfig, c.GestureTimeout)
	}
	if c.SwipeTimeout < 0 {
		return fmt.Errorf("%w: swipe_timeout must not be negative, got %s", ErrInvalidConfig, c.SwipeTimeout)
	}
	if c.Trail.Size < 0 {
		return fmt.Errorf("%w: trail.size must not be negative, got %d", ErrInvalidConfig, c.Trail.Size)
	}
	return nil
}
