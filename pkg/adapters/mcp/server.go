package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/gestures"
	"github.com/aretw0/gestures/internal/logging"
	"github.com/aretw0/gestures/internal/recognizer"
	"github.com/aretw0/gestures/pkg/config"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ClassifyArgs are the arguments of the classify_direction tool.
type ClassifyArgs struct {
	DX        float64 `json:"dx"`
	DY        float64 `json:"dy"`
	Diagonals bool    `json:"diagonals"`
	Deadzone  int     `json:"deadzone"`
}

// ClassifyResponse is the result of classify_direction.
type ClassifyResponse struct {
	Moved     bool   `json:"moved" jsonschema_description:"False when the displacement is inside the deadzone"`
	Token     string `json:"token,omitempty" jsonschema_description:"Single-character direction token (L, R, U, D, 7, 9, 1, 3)"`
	Direction string `json:"direction,omitempty" jsonschema_description:"Long direction name, e.g. up-right"`
}

// ReplayArgs are the arguments of the replay_trace tool.
type ReplayArgs struct {
	Events  string `json:"events"`
	Config  string `json:"config"`
	DrainMS int64  `json:"drain_ms"`
}

// ReplayResponse is the result of replay_trace.
type ReplayResponse struct {
	Notifications []runner.Notification `json:"notifications" jsonschema_description:"Callbacks in the order they fired, with virtual time in ms"`
	Summary       *runner.Summary       `json:"summary" jsonschema_description:"Counts gathered during the replay"`
}

// ConfigArgs are the arguments of the validate_config tool.
type ConfigArgs struct {
	Config string `json:"config"`
}

// ConfigResponse is the result of validate_config.
type ConfigResponse struct {
	Valid  bool          `json:"valid"`
	Error  string        `json:"error,omitempty"`
	Config domain.Config `json:"config"`
}

// Server exposes gesture classification and trace replay as an MCP Server.
type Server struct {
	config    domain.Config
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the configuration replays and classifications start from.
func WithConfig(cfg domain.Config) Option {
	return func(s *Server) {
		s.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		config:    domain.DefaultConfig(),
		mcpServer: server.NewMCPServer("gestures-mcp", gestures.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: classify_direction
	classifyTool := mcp.NewTool("classify_direction",
		mcp.WithDescription("Classify one pointer displacement into a direction token. Screen coordinates: y grows downwards."),
		mcp.WithNumber("dx", mcp.Required(), mcp.Description("Horizontal displacement in pixels")),
		mcp.WithNumber("dy", mcp.Required(), mcp.Description("Vertical displacement in pixels, positive is down")),
		mcp.WithBoolean("diagonals", mcp.Description("Use 8 directions instead of 4")),
		mcp.WithNumber("deadzone", mcp.Description("Minimum displacement in pixels (default from configuration)")),
		mcp.WithOutputSchema[ClassifyResponse](),
	)
	s.mcpServer.AddTool(classifyTool, mcp.NewStructuredToolHandler(s.handleClassify))

	// TOOL: replay_trace
	replayTool := mcp.NewTool("replay_trace",
		mcp.WithDescription("Replay a recorded input trace on a virtual clock and return every callback it produces."),
		mcp.WithString("events", mcp.Required(), mcp.Description("JSON array of input events, or one JSON event per line")),
		mcp.WithString("config", mcp.Description("JSON object of preferences applied over the server configuration")),
		mcp.WithNumber("drain_ms", mcp.Description("How long to keep the clock running after the last event")),
		mcp.WithOutputSchema[ReplayResponse](),
	)
	s.mcpServer.AddTool(replayTool, mcp.NewStructuredToolHandler(s.handleReplay))

	// TOOL: validate_config
	validateTool := mcp.NewTool("validate_config",
		mcp.WithDescription("Apply a preference map over the defaults and report whether the result is valid."),
		mcp.WithString("config", mcp.Required(), mcp.Description("JSON object of preferences")),
		mcp.WithOutputSchema[ConfigResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateConfig))
}

func (s *Server) handleClassify(ctx context.Context, request mcp.CallToolRequest, args ClassifyArgs) (ClassifyResponse, error) {
	deadzone := args.Deadzone
	if deadzone <= 0 {
		deadzone = s.config.Deadzone
	}
	to := domain.Pt(int(args.DX), int(args.DY))
	if !recognizer.Displaced(domain.Point{}, to, deadzone) {
		return ClassifyResponse{Moved: false}, nil
	}
	d := recognizer.Classify(domain.Point{}, to, args.Diagonals)
	return ClassifyResponse{Moved: true, Token: d.String(), Direction: d.Name()}, nil
}

func (s *Server) handleReplay(ctx context.Context, request mcp.CallToolRequest, args ReplayArgs) (ReplayResponse, error) {
	trace, err := runner.ParseTrace([]byte(args.Events), traceFormat(args.Events))
	if err != nil {
		return ReplayResponse{}, err
	}
	if args.Config != "" {
		prefs := map[string]any{}
		if err := json.Unmarshal([]byte(args.Config), &prefs); err != nil {
			return ReplayResponse{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
		trace.Config = prefs
	}
	trace.Drain = args.DrainMS

	col := &runner.Collector{}
	r := runner.NewRunner(
		runner.WithHandler(col),
		runner.WithConfig(s.config),
		runner.WithLogger(s.logger),
	)
	summary, err := r.Run(ctx, trace)
	if err != nil {
		return ReplayResponse{}, fmt.Errorf("replay failed: %w", err)
	}
	s.logger.Debug("MCP replay finished", "events", summary.Events, "gestures", len(summary.Gestures))
	return ReplayResponse{Notifications: col.Notifications(), Summary: summary}, nil
}

func (s *Server) handleValidateConfig(ctx context.Context, request mcp.CallToolRequest, args ConfigArgs) (ConfigResponse, error) {
	prefs := map[string]any{}
	if err := json.Unmarshal([]byte(args.Config), &prefs); err != nil {
		return ConfigResponse{Error: err.Error(), Config: domain.DefaultConfig()}, nil
	}
	cfg, err := config.Decode(prefs)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return ConfigResponse{Error: err.Error(), Config: cfg}, nil
	}
	return ConfigResponse{Valid: true, Config: cfg}, nil
}

// traceFormat tells a JSON array from JSON lines.
func traceFormat(events string) string {
	if strings.HasPrefix(strings.TrimSpace(events), "[") {
		return "json"
	}
	return "jsonl"
}

func (s *Server) registerResources() {
	// EXPOSE: gestures://config
	s.mcpServer.AddResource(mcp.NewResource("gestures://config", "Active Recognition Configuration",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.config)
		if err != nil {
			return nil, fmt.Errorf("failed to encode configuration: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "gestures://config",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
