package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/internal/output"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	// minimal, well-formed YAML (spaces only)
	testConfig := "generation:\n" +
		"  records: 250\n" +
		"  seed: 7\n" +
		"  year: 2024\n" +
		"analysis:\n" +
		"  churn_cutoff: 2024-11-01\n" +
		"  satisfied_threshold: 9\n" +
		"output:\n" +
		"  directory: reports\n" +
		"  formats: [json, summary-csv]\n" +
		"  documents: [business]\n" +
		"logging:\n" +
		"  mode: production\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeConfig(t, testConfig))

	require.NoError(t, err)
	assert.Equal(t, 250, config.Generation.Records)
	assert.Equal(t, int64(7), config.Generation.Seed)
	assert.Equal(t, 2024, config.Generation.Year)
	assert.True(t, config.Analysis.ChurnCutoff.Equal(time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 9.0, config.Analysis.SatisfiedThreshold)
	assert.Equal(t, domain.DefaultDissatisfiedThreshold, config.Analysis.DissatisfiedThreshold)
	assert.Equal(t, domain.DefaultSpendSegments().Labels, config.Analysis.SpendSegments.Labels)
	assert.Equal(t, []string{"json", "summary-csv"}, config.Output.Formats)
	assert.Equal(t, "production", config.Logging.Mode)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadFromFile_Defaults(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeConfig(t, "generation:\n  seed: 42\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRecords, config.Generation.Records)
	assert.Equal(t, domain.DefaultYear, config.Generation.Year)
	assert.True(t, config.Analysis.ChurnCutoff.Equal(domain.DefaultChurnCutoff()))
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	testConfig := `
generation:
	records: "many"
`
	config, err := NewInputParser().LoadFromFile(writeConfig(t, testConfig))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_ValidationFailure(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeConfig(t, "generation:\n  records: -5\n"))
	assert.Nil(t, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "records must be positive")
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateConfiguration(parser.CreateExampleConfiguration()))
}

func TestValidateConfiguration_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *domain.Configuration)
		message string
	}{
		{"zero records", func(c *domain.Configuration) { c.Generation.Records = 0 }, "records must be positive"},
		{"year too large", func(c *domain.Configuration) { c.Generation.Year = 10000 }, "year must be between"},
		{"zero cutoff", func(c *domain.Configuration) { c.Analysis.ChurnCutoff = time.Time{} }, "churn cutoff is required"},
		{"spend labels", func(c *domain.Configuration) { c.Analysis.SpendSegments.Labels = []string{"Low"} }, "spend segments"},
		{"age edges", func(c *domain.Configuration) { c.Analysis.AgeSegments.Edges = []float64{0, 50, 40, 60, 70, 100} }, "age segments"},
		{"satisfied range", func(c *domain.Configuration) { c.Analysis.SatisfiedThreshold = 11 }, "satisfied threshold must be between 1 and 10"},
		{"threshold order", func(c *domain.Configuration) { c.Analysis.DissatisfiedThreshold = 8 }, "must be below satisfied threshold"},
		{"tickets", func(c *domain.Configuration) { c.Analysis.AtRiskTicketThreshold = -1 }, "cannot be negative"},
		{"directory", func(c *domain.Configuration) { c.Output.Directory = "" }, "output directory is required"},
		{"format", func(c *domain.Configuration) { c.Output.Formats = []string{"docx"} }, "unsupported report format"},
		{"document", func(c *domain.Configuration) { c.Output.Documents = []string{"poster"} }, "unknown document kind"},
		{"log mode", func(c *domain.Configuration) { c.Logging.Mode = "loud" }, "unknown log mode"},
		{"log level", func(c *domain.Configuration) { c.Logging.Level = "chatty" }, "invalid log level"},
	}

	parser := NewInputParser()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := parser.CreateExampleConfiguration()
			tc.mutate(config)
			err := parser.ValidateConfiguration(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestValidateConfiguration_AllFormat(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	config.Output.Formats = []string{"all"}
	assert.NoError(t, parser.ValidateConfiguration(config))
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	assert.Equal(t, 1000, config.Generation.Records)
	assert.Equal(t, int64(42), config.Generation.Seed)
	assert.Equal(t, 2023, config.Generation.Year)
	assert.True(t, config.Output.Charts)
	assert.ElementsMatch(t, output.DocumentKinds, config.Output.Documents)
}

func TestExampleConfigFileRoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, output.SaveConfiguration(parser.CreateExampleConfiguration(), path))

	config, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, parser.CreateExampleConfiguration(), config)
}
