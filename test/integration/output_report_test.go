package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	stddec "github.com/shopspring/decimal"

	"github.com/swisscx/customer-insights/internal/analysis"
	"github.com/swisscx/customer-insights/internal/dataset"
	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/internal/generator"
	"github.com/swisscx/customer-insights/internal/output"
	"github.com/swisscx/customer-insights/internal/validation"
)

func TestFormatters(t *testing.T) {
	d1 := stddec.NewFromFloat(123.45)
	if got := output.FormatCurrency(d1); got != "CHF 123.45" {
		t.Fatalf("FormatCurrency got %s", got)
	}
	if got := output.FormatCurrency(stddec.NewFromFloat(1234567.891)); got != "CHF 1,234,567.89" {
		t.Fatalf("FormatCurrency got %s", got)
	}
	// FormatPercentage expects the value already in percentage units (not a 0-1 fraction)
	if got := output.FormatPercentage(12.34); got != "12.3%" {
		t.Fatalf("FormatPercentage got %s", got)
	}
}

func TestSaveConfiguration_WritesFile(t *testing.T) {
	cfg := &domain.Configuration{}
	tmp := t.TempDir()
	out := filepath.Join(tmp, "config.yaml")
	if err := output.SaveConfiguration(cfg, out); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	fi, err := os.Stat(out)
	if err != nil {
		t.Fatalf("expected file exists, err: %v", err)
	}
	if fi.Size() == 0 {
		t.Fatalf("expected non-empty file")
	}
}

func TestDatasetCSVRoundTrip_PreservesAnalysis(t *testing.T) {
	ds, err := generator.Generate(250, 99)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	path := filepath.Join(t.TempDir(), "customers.csv")
	if err := dataset.WriteFile(path, ds); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := dataset.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want, err := analysis.Analyze(ds, analysis.DefaultOptions())
	if err != nil {
		t.Fatalf("analyze generated: %v", err)
	}
	got, err := analysis.Analyze(loaded, analysis.DefaultOptions())
	if err != nil {
		t.Fatalf("analyze loaded: %v", err)
	}
	if !want.Summary.TotalRevenue.Equal(got.Summary.TotalRevenue) {
		t.Fatalf("revenue changed across CSV round trip: %s vs %s", want.Summary.TotalRevenue, got.Summary.TotalRevenue)
	}
	if want.Summary.ChurnRate != got.Summary.ChurnRate {
		t.Fatalf("churn rate changed across CSV round trip: %v vs %v", want.Summary.ChurnRate, got.Summary.ChurnRate)
	}
}

func TestReportGenerator_JSON_and_CSV_and_Console(t *testing.T) {
	output.SetNowFunc(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) })
	defer output.SetNowFunc(time.Now)

	ds, err := generator.Generate(120, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	an, err := analysis.Analyze(ds, analysis.DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	vr := validation.Validate(ds)
	var settings domain.AnalysisSettings
	report := output.NewReport(ds, &vr, an, settings)

	dir := t.TempDir()
	for _, format := range []string{"json", "csv", "console"} {
		paths, err := output.GenerateReport(report, format, dir)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !strings.Contains(paths[0], "20240102_030405") {
			t.Fatalf("%s: expected timestamped file name, got %s", format, paths[0])
		}
		b, err := os.ReadFile(paths[0])
		if err != nil || len(b) == 0 {
			t.Fatalf("%s: expected non-empty report (err %v)", format, err)
		}
	}
}
