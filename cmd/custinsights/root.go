package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swisscx/customer-insights/internal/config"
	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/internal/engine"
	"github.com/swisscx/customer-insights/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "custinsights",
	Short: "Synthetic Swiss customer dataset generator and analysis toolkit",
	Long: `custinsights builds a reproducible synthetic customer dataset for a
fictitious Swiss retailer, checks its quality and turns it into reports:

  generate        write the dataset as CSV
  validate        run the data quality checks
  analyze         write summary reports (console, csv, json, html, ...)
  charts          render the PNG charts
  pdf             write the business and presentation documents
  run             do all of the above from one configuration
  notebook        clear outputs or fix typos in a Jupyter notebook
  example-config  print a complete configuration file`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

var rootFlags struct {
	configPath string
	logMode    string
	verbose    bool
}

// Loaded once per invocation by setup.
var (
	appConfig *domain.Configuration
	appLogger *logging.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlags.configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logMode, "log-mode", "", "Log mode: development or production (overrides the configuration)")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg := &domain.Configuration{}
	if rootFlags.configPath != "" {
		loaded, err := config.NewInputParser().LoadFromFile(rootFlags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyDefaults()

	mode, level := cfg.Logging.Mode, cfg.Logging.Level
	if rootFlags.logMode != "" {
		mode = rootFlags.logMode
	}
	if rootFlags.verbose {
		level = "debug"
	}
	logger, err := logging.New(mode, level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = logger.With("command", cmd.Name())
	logger.Debug("configuration loaded", "path", rootFlags.configPath, "records", cfg.Generation.Records, "seed", cfg.Generation.Seed, "year", cfg.Generation.Year)

	appConfig, appLogger = cfg, logger
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if appLogger != nil {
		appLogger.Sync()
	}
}

func newEngine() *engine.Engine {
	e := engine.NewEngine(appConfig)
	e.SetLogger(appLogger)
	return e
}

// datasetFlags select the dataset a command works on: a CSV file, or a
// generated one whose settings override the configuration.
type datasetFlags struct {
	input   string
	records int
	seed    int64
	year    int
}

func bindDatasetFlags(cmd *cobra.Command, f *datasetFlags, withInput bool) {
	if withInput {
		cmd.Flags().StringVarP(&f.input, "input", "i", "", "Read the dataset from this CSV file instead of generating it")
	}
	cmd.Flags().IntVarP(&f.records, "records", "n", 0, "Number of customers to generate")
	cmd.Flags().Int64VarP(&f.seed, "seed", "s", 0, "Random seed")
	cmd.Flags().IntVar(&f.year, "year", 0, "Calendar year of signup and activity dates")
}

// apply copies the flags the user set onto the loaded configuration.
func (f *datasetFlags) apply(cmd *cobra.Command) {
	g := &appConfig.Generation
	if cmd.Flags().Changed("records") {
		g.Records = f.records
	}
	if cmd.Flags().Changed("seed") {
		g.Seed = f.seed
	}
	if cmd.Flags().Changed("year") {
		g.Year = f.year
	}
}

// load applies the flags and returns the selected dataset.
func (f *datasetFlags) load(cmd *cobra.Command, e *engine.Engine) (*domain.Dataset, error) {
	f.apply(cmd)
	return e.Dataset(f.input)
}

// outputDir returns dir when set, otherwise the configured output directory.
func outputDir(dir string) string {
	if dir != "" {
		return dir
	}
	return appConfig.Output.Directory
}
