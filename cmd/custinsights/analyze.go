package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swisscx/customer-insights/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a dataset and write summary reports",
	Long: `Validate and analyze a dataset, then write the report in one format.

Formats: console, console-verbose, csv, dataset-csv, json, html, or all.
Console formats are also printed to standard output.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var analyzeFlags struct {
	dataset datasetFlags
	format  string
	dir     string
}

func init() {
	bindDatasetFlags(analyzeCmd, &analyzeFlags.dataset, true)
	analyzeCmd.Flags().StringVarP(&analyzeFlags.format, "format", "f", "console", "Report format")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.dir, "dir", "d", "", "Output directory (defaults to the configured one)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	e := newEngine()
	ds, err := analyzeFlags.dataset.load(cmd, e)
	if err != nil {
		return err
	}
	report, err := e.Analyze(ds)
	if err != nil {
		return err
	}

	paths, err := output.GenerateReport(report, analyzeFlags.format, outputDir(analyzeFlags.dir))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch output.NormalizeFormatName(analyzeFlags.format) {
	case "console", "console-verbose":
		b, err := os.ReadFile(paths[0])
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(b))
	}
	for _, p := range paths {
		fmt.Fprintf(out, "Report written to %s\n", p)
	}
	return nil
}
