package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gestures",
	Short: "gestures recognizes directional pointer gestures",
	Long: `gestures turns raw pointer motion, button chords, scroll ticks and platform
swipes into named gesture tokens. Replay recorded traces, serve the engine over
HTTP, or expose it to agents through MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Configuration file (YAML or JSON); GESTURES_* variables override it")
	rootCmd.PersistentFlags().String("log-level", "", "Log level on stderr: debug, info, warn or error (default: silent)")
}
