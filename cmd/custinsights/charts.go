package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the analysis charts as PNG files",
	Args:  cobra.NoArgs,
	RunE:  runCharts,
}

var chartsFlags struct {
	dataset datasetFlags
	dir     string
	scale   float64
	font    string
}

func init() {
	bindDatasetFlags(chartsCmd, &chartsFlags.dataset, true)
	chartsCmd.Flags().StringVarP(&chartsFlags.dir, "dir", "d", "", "Output directory (the chart files go to its charts/ subdirectory)")
	chartsCmd.Flags().Float64Var(&chartsFlags.scale, "scale", 1, "Scale factor applied to every image dimension")
	chartsCmd.Flags().StringVar(&chartsFlags.font, "font", "", "TrueType font replacing the built-in regular face")

	rootCmd.AddCommand(chartsCmd)
}

func runCharts(cmd *cobra.Command, args []string) error {
	appConfig.Output.Directory = outputDir(chartsFlags.dir)
	e := newEngine()
	e.ChartOptions.Scale = chartsFlags.scale
	e.ChartOptions.FontPath = chartsFlags.font

	ds, err := chartsFlags.dataset.load(cmd, e)
	if err != nil {
		return err
	}
	report, err := e.Analyze(ds)
	if err != nil {
		return err
	}
	paths, err := e.Charts(report)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintf(out, "Chart written to %s\n", p)
	}
	return nil
}
