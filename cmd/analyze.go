package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pathreach/analyzer/analyze"
	"github.com/pathreach/analyzer/analytics"
	"github.com/pathreach/analyzer/config"
	"github.com/pathreach/analyzer/model"
	"github.com/pathreach/analyzer/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Enumerate branch paths in a single function and report which are unreachable",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("warnings", false, "Include non-fatal warnings in the output")
	analyzeCmd.Flags().Bool("trace", false, "Include per-stage trace in the output")
	analyzeCmd.Flags().Int("timeout", 0, "Overall analysis timeout in milliseconds (0 = default)")
	analyzeCmd.Flags().Int("path-timeout", 0, "Per-path solver timeout in milliseconds (0 = default)")
	analyzeCmd.Flags().StringP("format", "f", "", "Output format: text, json, csv, sarif")
	analyzeCmd.Flags().String("config", "", "Path to a YAML config file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if v, _ := cmd.Flags().GetBool("warnings"); v {
		cfg.Warnings = true
	}
	if v, _ := cmd.Flags().GetBool("trace"); v {
		cfg.Logging = true
	}
	if v, _ := cmd.Flags().GetInt("timeout"); v > 0 {
		cfg.AnalysisTimeoutMs = v
	}
	if v, _ := cmd.Flags().GetInt("path-timeout"); v > 0 {
		cfg.PathSolverTimeoutMs = v
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.Format = v
	}

	var source []byte
	if args[0] == "-" {
		source, err = io.ReadAll(os.Stdin)
	} else {
		source, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	req := analyze.Request{
		SourceText:          string(source),
		Warnings:            cfg.Warnings,
		Logging:             cfg.Logging,
		AnalysisTimeoutMs:   cfg.AnalysisTimeoutMs,
		PathSolverTimeoutMs: cfg.PathSolverTimeoutMs,
	}

	resp, err := analyze.Run(context.Background(), req)
	if err != nil {
		reportFailure(err)
		return err
	}

	analytics.ReportEvent(analytics.AnalyzeCommand)

	for _, w := range resp.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	for _, line := range resp.Trace {
		fmt.Fprintln(os.Stderr, line)
	}

	opts := output.NewDefaultOptions()
	opts.Format = output.OutputFormat(cfg.Format)
	return output.Write(os.Stdout, resp.Notes, opts)
}

// reportFailure sends the one analytics event per fatal error kind and
// prints a human-readable message to stderr, matching the external
// interface's {error} envelope.
func reportFailure(err error) {
	var event string
	switch err.(type) {
	case *model.PrecheckFailedError:
		event = analytics.PrecheckFailed
	case *model.UnknownSymbolError:
		event = analytics.UnknownSymbol
	case *model.UnsupportedTypeError:
		event = analytics.UnsupportedType
	case *model.SolverError:
		event = analytics.SolverFailed
	default:
		event = analytics.InternalFailure
	}
	analytics.ReportEvent(event)
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
