package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/swisscx/customer-insights/internal/notebook"
)

var notebookCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Maintain the analysis Jupyter notebook",
}

var notebookClearCmd = &cobra.Command{
	Use:   "clear FILE",
	Short: "Remove outputs and execution counts from code cells",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotebookClear,
}

var notebookFixCmd = &cobra.Command{
	Use:   "fix FILE",
	Short: "Apply known typo fixes to code cell sources",
	Long: `Apply string replacements to the source of every code cell.

Replacements run in order. Without --replacements the built-in typo list is
used; the file is a YAML list of {old, new} pairs.`,
	Args: cobra.ExactArgs(1),
	RunE: runNotebookFix,
}

var notebookFlags struct {
	out          string
	replacements string
}

func init() {
	notebookCmd.PersistentFlags().StringVarP(&notebookFlags.out, "out", "o", "", "Write the result here instead of overwriting FILE")
	notebookFixCmd.Flags().StringVarP(&notebookFlags.replacements, "replacements", "r", "", "YAML file with the replacements to apply")

	notebookCmd.AddCommand(notebookClearCmd, notebookFixCmd)
	rootCmd.AddCommand(notebookCmd)
}

func runNotebookClear(cmd *cobra.Command, args []string) error {
	return rewriteNotebook(cmd, args[0], "cleared", func(nb *notebook.Notebook) (int, error) {
		return nb.ClearOutputs(), nil
	})
}

func runNotebookFix(cmd *cobra.Command, args []string) error {
	return rewriteNotebook(cmd, args[0], "fixed", func(nb *notebook.Notebook) (int, error) {
		repls := notebook.DefaultReplacements()
		if notebookFlags.replacements != "" {
			var err error
			if repls, err = loadReplacements(notebookFlags.replacements); err != nil {
				return 0, err
			}
		}
		return nb.FixSource(repls), nil
	})
}

func rewriteNotebook(cmd *cobra.Command, path, verb string, edit func(*notebook.Notebook) (int, error)) error {
	nb, err := notebook.Load(path)
	if err != nil {
		return err
	}
	n, err := edit(nb)
	if err != nil {
		return err
	}

	dest := path
	if notebookFlags.out != "" {
		dest = notebookFlags.out
	}
	if err := notebook.Save(dest, nb); err != nil {
		return err
	}
	appLogger.Debugf("notebook: %s %d cells of %s", verb, n, path)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %d of %d cells\n", dest, verb, n, len(nb.Cells))
	return nil
}

func loadReplacements(path string) ([]notebook.Replacement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replacements: %w", err)
	}
	var repls []notebook.Replacement
	if err := yaml.Unmarshal(data, &repls); err != nil {
		return nil, fmt.Errorf("failed to parse replacements: %w", err)
	}
	return repls, nil
}
