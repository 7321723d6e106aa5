package main

import (
	"context"
	"fmt"

	"github.com/aretw0/gestures/internal/cli"
	"github.com/spf13/cobra"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <trace>",
	Short: "Replay a recorded input trace",
	Long: `Feeds a recorded trace (.jsonl, .json or .yaml) through the recognizer on a
virtual clock and prints every callback with its time offset. Timers fire
exactly when they would have fired live.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ReplayOptions{TracePath: args[0], Out: cmd.OutOrStdout()}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.LogLevel, _ = cmd.Flags().GetString("log-level")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Report, _ = cmd.Flags().GetBool("report")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		opts.NoEffects, _ = cmd.Flags().GetBool("no-effects")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		opts.Graph, _ = cmd.Flags().GetBool("graph")
		opts.Drain, _ = cmd.Flags().GetDuration("drain")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		err := cli.Execute(sigCtx, opts)
		if sig := sigCtx.Signal(); sig != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Replay stopped by %s\n", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Bool("json", false, "Print callbacks as JSON lines")
	replayCmd.Flags().Bool("report", false, "Print a summary report after the replay")
	replayCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	replayCmd.Flags().Bool("no-effects", false, "Do not print the effect of consumed events")
	replayCmd.Flags().BoolP("watch", "w", false, "Replay again whenever the trace or config file changes")
	replayCmd.Flags().Bool("graph", false, "Print the visited recognition modes as a Mermaid flowchart")
	replayCmd.Flags().Duration("drain", 0, "How long the clock keeps running after the last event (default 1s)")
}
