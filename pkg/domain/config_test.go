package domain_test

import (
	"testing"
	"time"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestConfig_DefaultIsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, domain.ButtonRight, cfg.TriggerButton)
	assert.Equal(t, 7, cfg.Deadzone)
	assert.Equal(t, 2, cfg.MinNodes)
}

func TestConfig_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Config)
	}{
		{"zero deadzone", func(c *domain.Config) { c.Deadzone = 0 }},
		{"negative deadzone", func(c *domain.Config) { c.Deadzone = -3 }},
		{"zero min nodes", func(c *domain.Config) { c.MinNodes = 0 }},
		{"negative gesture timeout", func(c *domain.Config) { c.GestureTimeout = -time.Millisecond }},
		{"negative swipe timeout", func(c *domain.Config) { c.SwipeTimeout = -time.Second }},
		{"unknown trigger", func(c *domain.Config) { c.TriggerButton = 7 }},
		{"negative trail size", func(c *domain.Config) { c.Trail.Size = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
		})
	}
}

func TestInputEvent_Validate(t *testing.T) {
	valid := []domain.InputEvent{
		{Kind: domain.KindButtonDown, Button: domain.ButtonLeft},
		{Kind: domain.KindMove, X: 3, Y: 4},
		{Kind: domain.KindScroll, Delta: -1},
		{Kind: domain.KindSwipe, Direction: domain.Left},
		{Kind: domain.KindCancel},
	}
	for _, ev := range valid {
		assert.NoError(t, ev.Validate(), "%+v", ev)
	}

	invalid := []domain.InputEvent{
		{Kind: "wiggle"},
		{Kind: domain.KindButtonUp, Button: 5},
		{Kind: domain.KindScroll},
		{Kind: domain.KindSwipe, Direction: domain.UpLeft},
		{Kind: domain.KindMove, At: -1},
	}
	for _, ev := range invalid {
		assert.ErrorIs(t, ev.Validate(), domain.ErrUnknownEvent, "%+v", ev)
	}
}

func TestPoint_Beyond(t *testing.T) {
	anchor := domain.Pt(100, 100)
	assert.False(t, anchor.Beyond(domain.Pt(109, 100), domain.EscapeRadius))
	assert.False(t, anchor.Beyond(domain.Pt(110, 90), domain.EscapeRadius))
	assert.True(t, anchor.Beyond(domain.Pt(111, 100), domain.EscapeRadius))
	assert.True(t, anchor.Beyond(domain.Pt(100, 89), domain.EscapeRadius))

	dx, dy := domain.Pt(0, 0).Delta(domain.Pt(3, 5))
	assert.Equal(t, 3, dx)
	assert.Equal(t, -5, dy, "moving down the screen is negative dy")
}
