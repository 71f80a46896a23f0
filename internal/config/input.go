package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/internal/logging"
	"github.com/swisscx/customer-insights/internal/output"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file, fills defaults and validates it
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	config.ApplyDefaults()

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateGeneration(&config.Generation); err != nil {
		return fmt.Errorf("generation settings: %w", err)
	}
	if err := ip.validateAnalysis(&config.Analysis); err != nil {
		return fmt.Errorf("analysis settings: %w", err)
	}
	if err := ip.validateOutput(&config.Output); err != nil {
		return fmt.Errorf("output settings: %w", err)
	}
	if err := logging.Validate(config.Logging.Mode, config.Logging.Level); err != nil {
		return fmt.Errorf("logging settings: %w", err)
	}
	return nil
}

// validateGeneration checks the dataset size and calendar year
func (ip *InputParser) validateGeneration(g *domain.GenerationSettings) error {
	if g.Records <= 0 {
		return fmt.Errorf("records must be positive, got %d", g.Records)
	}
	if g.Year < 1 || g.Year > 9999 {
		return fmt.Errorf("year must be between 1 and 9999, got %d", g.Year)
	}
	return nil
}

// validateAnalysis checks segment schemes and satisfaction thresholds
func (ip *InputParser) validateAnalysis(a *domain.AnalysisSettings) error {
	if a.ChurnCutoff.IsZero() {
		return fmt.Errorf("churn cutoff is required")
	}
	if err := a.SpendSegments.Validate(); err != nil {
		return fmt.Errorf("spend segments: %w", err)
	}
	if err := a.AgeSegments.Validate(); err != nil {
		return fmt.Errorf("age segments: %w", err)
	}
	for name, v := range map[string]float64{"satisfied": a.SatisfiedThreshold, "dissatisfied": a.DissatisfiedThreshold} {
		if v < 1 || v > 10 {
			return fmt.Errorf("%s threshold must be between 1 and 10, got %g", name, v)
		}
	}
	if a.DissatisfiedThreshold >= a.SatisfiedThreshold {
		return fmt.Errorf("dissatisfied threshold (%g) must be below satisfied threshold (%g)", a.DissatisfiedThreshold, a.SatisfiedThreshold)
	}
	if a.AtRiskTicketThreshold < 0 {
		return fmt.Errorf("at-risk ticket threshold cannot be negative")
	}
	return nil
}

// validateOutput checks that every requested format and document is known
func (ip *InputParser) validateOutput(o *domain.OutputSettings) error {
	if o.Directory == "" {
		return fmt.Errorf("output directory is required")
	}
	for _, f := range o.Formats {
		if f == "all" {
			continue
		}
		if output.GetFormatterByName(f) == nil {
			return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, f)
		}
	}
	for _, kind := range o.Documents {
		if _, err := output.DocumentFile(kind); err != nil {
			return err
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Generation: domain.GenerationSettings{
			Records: domain.DefaultRecords,
			Seed:    domain.DefaultSeed,
			Year:    domain.DefaultYear,
		},
		Analysis: domain.AnalysisSettings{
			ChurnCutoff:           domain.DefaultChurnCutoff(),
			SpendSegments:         domain.DefaultSpendSegments(),
			AgeSegments:           domain.DefaultAgeSegments(),
			SatisfiedThreshold:    domain.DefaultSatisfiedThreshold,
			DissatisfiedThreshold: domain.DefaultDissatisfiedThreshold,
			AtRiskTicketThreshold: domain.DefaultAtRiskTicketThreshold,
		},
		Output: domain.OutputSettings{
			Directory: "out",
			Formats:   []string{"console", "csv", "dataset-csv", "html"},
			Charts:    true,
			Documents: []string{output.DocumentBusiness, output.DocumentPresentation},
		},
		Logging: domain.LoggingSettings{
			Mode:  "development",
			Level: "info",
		},
	}
}
