package main

import (
	"github.com/aretw0/gestures/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Check a configuration file",
	Long: `Resolves the configuration (defaults, file, GESTURES_* environment), rejects
values outside their ranges and prints the effective settings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if !cmd.Flags().Changed("config") && len(args) > 0 {
			path = args[0]
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		return cli.Validate(cmd.OutOrStdout(), path, jsonMode)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print the effective configuration as JSON")
}
