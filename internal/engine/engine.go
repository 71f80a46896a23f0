// Package engine runs the end-to-end pipeline: build or load the dataset,
// validate it, analyze it, and write the configured artifacts.
package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/swisscx/customer-insights/internal/analysis"
	"github.com/swisscx/customer-insights/internal/charts"
	"github.com/swisscx/customer-insights/internal/dataset"
	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/internal/generator"
	"github.com/swisscx/customer-insights/internal/output"
	"github.com/swisscx/customer-insights/internal/validation"
)

// ChartSubdir is the directory under the output directory charts are written to.
const ChartSubdir = "charts"

// Result is what a full run produced
type Result struct {
	Report *domain.Report
	Files  []string
}

// Engine orchestrates generation, validation, analysis and output
type Engine struct {
	Config *domain.Configuration
	Logger generator.Logger

	// ChartOptions configures the chart renderer. A nil Logger uses the engine's.
	ChartOptions charts.Options
}

// NewEngine creates an engine for cfg. Unset configuration values take their defaults.
func NewEngine(cfg *domain.Configuration) *Engine {
	if cfg == nil {
		cfg = &domain.Configuration{}
	}
	cfg.ApplyDefaults()
	return &Engine{Config: cfg, Logger: generator.NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l generator.Logger) {
	if l == nil {
		e.Logger = generator.NopLogger{}
		return
	}
	e.Logger = l
}

// Dataset reads the customer table from input when it is set, otherwise it
// generates one from the generation settings.
func (e *Engine) Dataset(input string) (*domain.Dataset, error) {
	if input != "" {
		ds, err := dataset.ReadFile(input)
		if err != nil {
			return nil, err
		}
		e.Logger.Infof("engine: loaded %d customers from %s", ds.Len(), input)
		return ds, nil
	}
	g := e.Config.Generation
	gen := generator.New(generator.Options{Year: g.Year, Logger: e.Logger})
	return gen.Generate(g.Records, g.Seed)
}

// Analyze validates and analyzes ds and bundles the results into a report.
// Validation violations are logged, not returned.
func (e *Engine) Analyze(ds *domain.Dataset) (*domain.Report, error) {
	vr := validation.Validate(ds)
	for _, v := range vr.Violations {
		e.Logger.Warnf("engine: %s: %s: %s", v.Kind, v.Check, v.Message)
	}
	an, err := analysis.Analyze(ds, analysis.OptionsFromSettings(e.Config.Analysis))
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return output.NewReport(ds, &vr, an, e.Config.Analysis), nil
}

// Charts renders every chart into the output chart directory.
func (e *Engine) Charts(report *domain.Report) ([]string, error) {
	opts := e.ChartOptions
	if opts.Logger == nil {
		opts.Logger = e.Logger
	}
	r, err := charts.NewRenderer(opts)
	if err != nil {
		return nil, err
	}
	return r.RenderAll(report.Dataset, report.Analysis, e.ChartDir())
}

// ChartDir is where Charts writes and the documents read charts from.
func (e *Engine) ChartDir() string {
	return filepath.Join(e.Config.Output.Directory, ChartSubdir)
}

// PDFWriter returns a document writer reading charts from ChartDir and
// logging through the engine's logger.
func (e *Engine) PDFWriter() *output.PDFWriter {
	return output.NewPDFWriter(e.ChartDir(), e.Logger)
}

// WriteArtifacts writes the configured report formats, charts and documents.
func (e *Engine) WriteArtifacts(ctx context.Context, report *domain.Report) ([]string, error) {
	out := e.Config.Output
	var files []string
	for _, format := range out.Formats {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		paths, err := output.GenerateReport(report, format, out.Directory)
		if err != nil {
			return files, err
		}
		files = append(files, paths...)
	}
	if out.Charts {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		paths, err := e.Charts(report)
		if err != nil {
			return files, err
		}
		files = append(files, paths...)
	}
	for _, kind := range out.Documents {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		path, err := e.PDFWriter().WriteFile(report, kind, out.Directory)
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

// Run executes the whole pipeline.
func (e *Engine) Run(ctx context.Context, input string) (*Result, error) {
	ds, err := e.Dataset(input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report, err := e.Analyze(ds)
	if err != nil {
		return nil, err
	}
	files, err := e.WriteArtifacts(ctx, report)
	if err != nil {
		return nil, err
	}
	e.Logger.Infof("engine: run %s wrote %d files to %s", report.RunID, len(files), e.Config.Output.Directory)
	return &Result{Report: report, Files: files}, nil
}
