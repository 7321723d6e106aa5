package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/gestures"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gestures",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gestures version %s\n", strings.TrimSpace(gestures.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
