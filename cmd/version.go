package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathreach/analyzer/analytics"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pathreach version",
	Run: func(_ *cobra.Command, _ []string) {
		analytics.ReportEvent(analytics.VersionCommand)
		fmt.Println("pathreach", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
