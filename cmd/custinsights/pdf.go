package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swisscx/customer-insights/internal/output"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Write the business report and presentation PDF documents",
	Long: `Write the PDF documents for a dataset.

Kinds: business, presentation, or all. Charts are embedded from the charts/
subdirectory of the output directory; run "charts" first to include them.`,
	Args: cobra.NoArgs,
	RunE: runPDF,
}

var pdfFlags struct {
	dataset datasetFlags
	kind    string
	dir     string
}

func init() {
	bindDatasetFlags(pdfCmd, &pdfFlags.dataset, true)
	pdfCmd.Flags().StringVarP(&pdfFlags.kind, "kind", "k", "all", "Document kind: "+strings.Join(output.DocumentKinds, ", ")+" or all")
	pdfCmd.Flags().StringVarP(&pdfFlags.dir, "dir", "d", "", "Output directory (defaults to the configured one)")

	rootCmd.AddCommand(pdfCmd)
}

func runPDF(cmd *cobra.Command, args []string) error {
	kinds := []string{pdfFlags.kind}
	if strings.EqualFold(pdfFlags.kind, "all") {
		kinds = output.DocumentKinds
	}

	appConfig.Output.Directory = outputDir(pdfFlags.dir)
	e := newEngine()
	ds, err := pdfFlags.dataset.load(cmd, e)
	if err != nil {
		return err
	}
	report, err := e.Analyze(ds)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	pw := e.PDFWriter()
	for _, kind := range kinds {
		path, err := pw.WriteFile(report, kind, appConfig.Output.Directory)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Document written to %s\n", path)
	}
	return nil
}
