package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swisscx/customer-insights/internal/charts"
	"github.com/swisscx/customer-insights/internal/dataset"
	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/internal/generator"
)

type countingLogger struct {
	generator.NopLogger
	warnings int
}

func (c *countingLogger) Warnf(format string, args ...any) { c.warnings++ }

func testConfig(t *testing.T) *domain.Configuration {
	t.Helper()
	return &domain.Configuration{
		Generation: domain.GenerationSettings{Records: 150, Seed: 11, Year: 2023},
		Output: domain.OutputSettings{
			Directory: t.TempDir(),
			Formats:   []string{"csv", "json"},
		},
	}
}

func TestNewEngine_AppliesDefaults(t *testing.T) {
	e := NewEngine(nil)
	require.NotNil(t, e.Config)
	assert.Equal(t, domain.DefaultRecords, e.Config.Generation.Records)
	assert.True(t, e.Config.Analysis.ChurnCutoff.Equal(domain.DefaultChurnCutoff()))

	e.SetLogger(nil)
	assert.IsType(t, generator.NopLogger{}, e.Logger)
}

func TestEngine_DatasetGeneratesFromSettings(t *testing.T) {
	e := NewEngine(testConfig(t))
	ds, err := e.Dataset("")
	require.NoError(t, err)
	assert.Equal(t, 150, ds.Len())
	assert.Equal(t, int64(11), ds.Seed)

	again, err := generator.New(generator.Options{Year: 2023}).Generate(150, 11)
	require.NoError(t, err)
	assert.Equal(t, again.Records, ds.Records)
}

func TestEngine_DatasetReadsInput(t *testing.T) {
	cfg := testConfig(t)
	e := NewEngine(cfg)
	ds, err := e.Dataset("")
	require.NoError(t, err)

	path := filepath.Join(cfg.Output.Directory, "customers.csv")
	require.NoError(t, dataset.WriteFile(path, ds))

	loaded, err := e.Dataset(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Len(), loaded.Len())
	assert.Equal(t, ds.Records[0].CustomerID, loaded.Records[0].CustomerID)

	_, err = e.Dataset(filepath.Join(cfg.Output.Directory, "missing.csv"))
	assert.Error(t, err)
}

func TestEngine_AnalyzeLogsViolations(t *testing.T) {
	e := NewEngine(testConfig(t))
	logger := &countingLogger{}
	e.SetLogger(logger)

	ds, err := e.Dataset("")
	require.NoError(t, err)
	ds.Records[0].Age = 12

	report, err := e.Analyze(ds)
	require.NoError(t, err)
	require.NotNil(t, report.Validation)
	assert.False(t, report.Validation.Valid())
	assert.Equal(t, 1, logger.warnings)
	assert.Equal(t, 150, report.Analysis.Summary.Customers)
	assert.NotEmpty(t, report.RunID)
}

func TestEngine_AnalyzeEmptyDataset(t *testing.T) {
	e := NewEngine(testConfig(t))
	_, err := e.Analyze(&domain.Dataset{})
	assert.Error(t, err)
}

func TestEngine_Run(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Charts = true
	cfg.Output.Documents = []string{"business"}
	e := NewEngine(cfg)
	e.ChartOptions.Scale = 0.25

	result, err := e.Run(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, result.Report)

	// csv + json + 8 charts + 1 document
	assert.Len(t, result.Files, 11)
	for _, f := range result.Files {
		info, err := os.Stat(f)
		require.NoError(t, err, f)
		assert.Positive(t, info.Size(), f)
	}
	assert.True(t, strings.HasSuffix(result.Files[len(result.Files)-1], "customer_analysis_business.pdf"))
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, ChartSubdir, "age_distribution.png"))
}

func TestEngine_PresentationWarnsThroughEngineLogger(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Documents = []string{"presentation"}
	e := NewEngine(cfg)
	logger := &countingLogger{}
	e.SetLogger(logger)

	result, err := e.Run(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, result.Files, 3)
	assert.True(t, strings.HasSuffix(result.Files[2], "customer_analysis_presentation.pdf"))
	assert.Equal(t, len(charts.ChartFiles), logger.warnings)
}

func TestEngine_RunUnknownFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Formats = []string{"xlsx"}
	_, err := NewEngine(cfg).Run(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestEngine_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t)
	_, err := NewEngine(cfg).Run(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(cfg.Output.Directory)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
