package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const downRightEvents = `[
	{"kind": "down", "button": "right", "x": 100, "y": 100},
	{"kind": "move", "at": 10, "x": 100, "y": 110},
	{"kind": "move", "at": 20, "x": 100, "y": 120},
	{"kind": "move", "at": 30, "x": 110, "y": 120},
	{"kind": "move", "at": 40, "x": 120, "y": 120},
	{"kind": "up", "at": 50, "button": "right", "x": 120, "y": 120}
]`

func TestClassify(t *testing.T) {
	s := NewServer()
	ctx := context.Background()

	tests := []struct {
		name string
		args ClassifyArgs
		want ClassifyResponse
	}{
		{"right", ClassifyArgs{DX: 20}, ClassifyResponse{Moved: true, Token: "R", Direction: "right"}},
		{"screen y grows down", ClassifyArgs{DY: 20}, ClassifyResponse{Moved: true, Token: "D", Direction: "down"}},
		{"tie is vertical", ClassifyArgs{DX: 10, DY: -10}, ClassifyResponse{Moved: true, Token: "U", Direction: "up"}},
		{"diagonal", ClassifyArgs{DX: 10, DY: -10, Diagonals: true}, ClassifyResponse{Moved: true, Token: "9", Direction: "up-right"}},
		{"inside deadzone", ClassifyArgs{DX: 6, DY: 6}, ClassifyResponse{}},
		{"custom deadzone", ClassifyArgs{DX: 12, Deadzone: 15}, ClassifyResponse{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.handleClassify(ctx, mcp.CallToolRequest{}, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplay(t *testing.T) {
	s := NewServer()
	resp, err := s.handleReplay(context.Background(), mcp.CallToolRequest{}, ReplayArgs{Events: downRightEvents})
	require.NoError(t, err)

	var callbacks []string
	for _, n := range resp.Notifications {
		if n.Kind != runner.KindEffect {
			callbacks = append(callbacks, string(n.Kind)+":"+n.Value)
		}
	}
	assert.Equal(t, []string{"direction:D", "direction:DR", "gesture:DR"}, callbacks)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 6, resp.Summary.Events)
	assert.Equal(t, []string{"DR"}, resp.Summary.Gestures)
}

func TestReplay_JSONLinesAndConfig(t *testing.T) {
	s := NewServer()
	events := `{"kind": "swipe", "direction": "left"}
{"kind": "swipe", "at": 100, "direction": "up"}`

	resp, err := s.handleReplay(context.Background(), mcp.CallToolRequest{}, ReplayArgs{
		Events: events,
		Config: `{"swipe_timeout": "300ms"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"LU"}, resp.Summary.Gestures)
}

func TestReplay_Errors(t *testing.T) {
	s := NewServer()
	ctx := context.Background()

	_, err := s.handleReplay(ctx, mcp.CallToolRequest{}, ReplayArgs{Events: "[]"})
	assert.ErrorIs(t, err, runner.ErrInvalidTrace)

	_, err = s.handleReplay(ctx, mcp.CallToolRequest{}, ReplayArgs{Events: downRightEvents, Config: "{"})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = s.handleReplay(ctx, mcp.CallToolRequest{}, ReplayArgs{Events: downRightEvents, Config: `{"deadzone": 0}`})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestValidateConfig(t *testing.T) {
	s := NewServer()
	ctx := context.Background()

	resp, err := s.handleValidateConfig(ctx, mcp.CallToolRequest{}, ConfigArgs{Config: `{"trigger_button": "left", "gesture_timeout": 500}`})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, domain.ButtonLeft, resp.Config.TriggerButton)

	resp, err = s.handleValidateConfig(ctx, mcp.CallToolRequest{}, ConfigArgs{Config: `{"min_nodes": 0}`})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Error, "min_nodes")

	resp, err = s.handleValidateConfig(ctx, mcp.CallToolRequest{}, ConfigArgs{Config: `{"unknown": true}`})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
}

// toolResult is the wire shape of a tools/call response.
type toolResult struct {
	Result struct {
		IsError           bool            `json:"isError"`
		StructuredContent json.RawMessage `json:"structuredContent"`
		Content           []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"result"`
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) toolResult {
	t.Helper()
	req, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      name,
			"arguments": args,
		},
	})
	require.NoError(t, err)

	msg := s.MCPServer().HandleMessage(context.Background(), req)
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var res toolResult
	require.NoError(t, json.Unmarshal(data, &res))
	return res
}

func TestToolsOverJSONRPC(t *testing.T) {
	s := NewServer()

	res := callTool(t, s, "classify_direction", map[string]any{"dx": -30, "dy": 0})
	assert.False(t, res.Result.IsError)
	var classified ClassifyResponse
	require.NoError(t, json.Unmarshal(res.Result.StructuredContent, &classified))
	assert.Equal(t, "L", classified.Token)

	res = callTool(t, s, "replay_trace", map[string]any{"events": downRightEvents, "drain_ms": 0})
	assert.False(t, res.Result.IsError)
	var replayed struct {
		Summary struct {
			Gestures []string `json:"gestures"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(res.Result.StructuredContent, &replayed))
	assert.Equal(t, []string{"DR"}, replayed.Summary.Gestures)

	res = callTool(t, s, "replay_trace", map[string]any{"events": "not json"})
	assert.True(t, res.Result.IsError)
}

func TestConfigResource(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Diagonals = true
	s := NewServer(WithConfig(cfg))

	req, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      2,
		"method":  "resources/read",
		"params":  map[string]any{"uri": "gestures://config"},
	})
	require.NoError(t, err)

	data, err := json.Marshal(s.MCPServer().HandleMessage(context.Background(), req))
	require.NoError(t, err)

	var res struct {
		Result struct {
			Contents []struct {
				URI  string `json:"uri"`
				Text string `json:"text"`
			} `json:"contents"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &res))
	require.Len(t, res.Result.Contents, 1)
	assert.Equal(t, "gestures://config", res.Result.Contents[0].URI)
	assert.Contains(t, res.Result.Contents[0].Text, `"diagonals":true`)
}
