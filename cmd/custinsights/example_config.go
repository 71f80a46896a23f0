package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/swisscx/customer-insights/internal/config"
	"github.com/swisscx/customer-insights/internal/output"
)

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config",
	Short: "Print or write a complete example configuration",
	Args:  cobra.NoArgs,
	RunE:  runExampleConfig,
}

var exampleConfigFlags struct {
	out string
}

func init() {
	exampleConfigCmd.Flags().StringVarP(&exampleConfigFlags.out, "out", "o", "", "Write the configuration to this file instead of standard output")

	rootCmd.AddCommand(exampleConfigCmd)
}

func runExampleConfig(cmd *cobra.Command, args []string) error {
	cfg := config.NewInputParser().CreateExampleConfiguration()
	if exampleConfigFlags.out != "" {
		if err := output.SaveConfiguration(cfg, exampleConfigFlags.out); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", exampleConfigFlags.out)
		return nil
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
