package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/gestures/internal/cli"
	"github.com/aretw0/gestures/internal/logging"
	"github.com/aretw0/gestures/pkg/adapters/mcp"
	"github.com/aretw0/gestures/pkg/config"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes direction classification and trace replay as MCP tools.
This allows AI agents to reason about recorded pointer input.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		configPath, _ := cmd.Flags().GetString("config")
		levelFlag, _ := cmd.Flags().GetString("log-level")
		if levelFlag == "" {
			levelFlag = "info"
		}

		level, err := logging.ParseLevel(levelFlag)
		if err != nil {
			return err
		}
		logger := logging.New(level)
		slog.SetDefault(logger)

		cfg, err := config.Resolve(configPath)
		if err != nil {
			return err
		}
		srv := mcp.NewServer(mcp.WithConfig(cfg), mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting gestures MCP Server (Stdio)...")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting gestures MCP Server (SSE)", "port", port)
			sigCtx := cli.NewSignalContext(context.Background())
			defer sigCtx.Cancel()

			if err := srv.ServeSSE(sigCtx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
