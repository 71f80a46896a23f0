package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swisscx/customer-insights/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate, validate, analyze and write every configured artifact",
	Long: `Run the whole pipeline from the configuration: build or load the dataset,
validate and analyze it, then write the configured report formats, the charts
and the PDF documents.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var runFlags struct {
	dataset datasetFlags
	dir     string
}

func init() {
	bindDatasetFlags(runCmd, &runFlags.dataset, true)
	runCmd.Flags().StringVarP(&runFlags.dir, "dir", "d", "", "Output directory (defaults to the configured one)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	runFlags.dataset.apply(cmd)
	appConfig.Output.Directory = outputDir(runFlags.dir)
	if err := config.NewInputParser().ValidateConfiguration(appConfig); err != nil {
		return err
	}

	result, err := newEngine().Run(cmd.Context(), runFlags.dataset.input)
	if err != nil {
		return err
	}

	appLogger.Info("run finished", "run_id", result.Report.RunID, "files", len(result.Files))

	out := cmd.OutOrStdout()
	s := result.Report.Analysis.Summary
	fmt.Fprintf(out, "Run %s: %d customers, churn rate %.1f%%\n", result.Report.RunID, s.Customers, s.ChurnRate)
	if !result.Report.Validation.Valid() {
		fmt.Fprintf(out, "Data quality: %d failed checks\n", len(result.Report.Validation.Violations))
	}
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	return nil
}
