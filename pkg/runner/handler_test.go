package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	h := runner.NewTextHandler(&buf)

	ctx := context.Background()
	require.NoError(t, h.Handle(ctx, runner.Notification{At: 40, Kind: runner.KindGesture, Value: "DR"}))
	ev := domain.InputEvent{Kind: domain.KindSwipe}
	require.NoError(t, h.Handle(ctx, runner.Notification{At: 5, Kind: runner.KindEffect, Value: "consumed", Event: &ev}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "     40ms  gesture   DR", lines[0])
	assert.Equal(t, "      5ms  effect    consumed (swipe)", lines[1])
	assert.NotContains(t, buf.String(), "\x1b[", "a buffer is not a terminal")
}

func TestTextHandler_ForcedColor(t *testing.T) {
	var buf bytes.Buffer
	h := runner.NewTextHandler(&buf, runner.WithColor(true))
	require.NoError(t, h.Handle(context.Background(), runner.Notification{Kind: runner.KindExtra, Value: "wheel-up"}))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "wheel-up")
}

func TestJSONHandler_WritesLines(t *testing.T) {
	var buf bytes.Buffer
	h := runner.NewJSONHandler(&buf)

	ctx := context.Background()
	require.NoError(t, h.Handle(ctx, runner.Notification{At: 20, Kind: runner.KindDirection, Value: "D"}))
	eff := domain.Effect{Consumed: true}
	require.NoError(t, h.Handle(ctx, runner.Notification{At: 30, Kind: runner.KindEffect, Value: "consumed", Effect: &eff}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"at":20,"kind":"direction","value":"D"}`, lines[0])

	var decoded runner.Notification
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &decoded))
	require.NotNil(t, decoded.Effect)
	assert.True(t, decoded.Effect.Consumed)
}

func TestMultiHandler(t *testing.T) {
	a, b := &runner.Collector{}, &runner.Collector{}
	h := runner.MultiHandler(a, b)
	require.NoError(t, h.Handle(context.Background(), runner.Notification{Kind: runner.KindGesture, Value: "L"}))
	assert.Equal(t, []string{"gesture:L"}, a.Callbacks())
	assert.Equal(t, []string{"gesture:L"}, b.Callbacks())

	boom := errors.New("boom")
	failing := runner.HandlerFunc(func(context.Context, runner.Notification) error { return boom })
	c := &runner.Collector{}
	err := runner.MultiHandler(failing, c).Handle(context.Background(), runner.Notification{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, c.Notifications())
}
