package cmd

import (
	"github.com/pathreach/analyzer/analytics"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathreach",
	Short: "pathreach - symbolic reachability analysis for single functions",
	Long:  `pathreach enumerates the branch paths through a single function and decides which are feasible, using a difference-logic solver over the branch predicates and assignments on each path.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics") //nolint:all
		analytics.LoadEnvFile()
		analytics.Init(disableMetrics)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "Disable metrics collection")
}
