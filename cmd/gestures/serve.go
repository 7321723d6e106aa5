package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/aretw0/gestures/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the recognition engine as an HTTP API. Remote hosts attach surfaces,
post normalized input events and collect callbacks by polling or SSE.
Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ServeOptions{Out: cmd.OutOrStdout()}
		opts.Port, _ = cmd.Flags().GetString("port")
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.RedisURL, _ = cmd.Flags().GetString("redis")
		opts.JournalTTL, _ = cmd.Flags().GetDuration("journal-ttl")
		opts.LogLevel, _ = cmd.Flags().GetString("log-level")
		opts.JournalKeys, _ = cmd.Flags().GetStringSlice("journal-key")
		opts.RedactSurfaces, _ = cmd.Flags().GetStringSlice("redact")
		if len(opts.JournalKeys) == 0 {
			if env := os.Getenv("GESTURES_JOURNAL_KEYS"); env != "" {
				opts.JournalKeys = strings.Split(env, ",")
			}
		}
		if opts.LogLevel == "" {
			opts.LogLevel = "info"
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		return cli.Serve(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address or redis:// URL for the gesture journal (default: in memory)")
	serveCmd.Flags().StringSlice("journal-key", nil, "Base64 AES-256 key sealing journal values; repeat to add decrypt-only fallback keys (env GESTURES_JOURNAL_KEYS)")
	serveCmd.Flags().StringSlice("redact", nil, "Regexp of surfaces whose gestures are journaled without their value")
	serveCmd.Flags().Duration("journal-ttl", 24*time.Hour, "Expire a surface's Redis journal after this long without entries")
}
