package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/swisscx/customer-insights/internal/domain"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// NewReport bundles a dataset with its validation and analysis results.
func NewReport(ds *domain.Dataset, vr *domain.ValidationReport, an *domain.Analysis, settings domain.AnalysisSettings) *domain.Report {
	return &domain.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: nowFunc().UTC(),
		Dataset:     ds,
		Validation:  vr,
		Analysis:    an,
		Assumptions: GenerateAssumptions(ds, settings),
	}
}

// GenerateReport writes report in the requested format to dir and returns the
// written paths. "all" writes every registered format.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if strings.EqualFold(strings.TrimSpace(format), "all") {
		paths := make([]string, 0, len(builtInFormatters))
		for _, f := range builtInFormatters {
			path, err := WriteFormatted(f, report, dir)
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s, all (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveConfiguration writes the configuration back out as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
