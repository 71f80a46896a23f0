package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swisscx/customer-insights/internal/output"
	"github.com/swisscx/customer-insights/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the data quality checks on a dataset",
	Long: `Check completeness, consistency, accuracy and timeliness of a dataset.

Failed checks are reported. With --strict they also make the command fail.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var validateFlags struct {
	dataset datasetFlags
	json    bool
	strict  bool
}

func init() {
	bindDatasetFlags(validateCmd, &validateFlags.dataset, true)
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false, "Print the report as JSON")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "Exit with an error when a check fails")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ds, err := validateFlags.dataset.load(cmd, newEngine())
	if err != nil {
		return err
	}
	report := validation.Validate(ds)
	if !report.Valid() {
		appLogger.Warn("data quality checks failed", "violations", len(report.Violations))
	}

	out := cmd.OutOrStdout()
	if validateFlags.json {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode validation report: %w", err)
		}
		fmt.Fprintln(out, string(b))
	} else {
		fmt.Fprintf(out, "Rows checked: %d\n", report.Rows)
		output.WriteValidation(out, &report)
		if report.Valid() {
			fmt.Fprintln(out, "\nAll checks passed")
		}
	}

	if validateFlags.strict {
		return report.Err()
	}
	return nil
}
