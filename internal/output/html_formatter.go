package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"path"

	"github.com/swisscx/customer-insights/internal/charts"
	"github.com/swisscx/customer-insights/internal/domain"
)

// HTMLFormatter produces a standalone HTML report. When ChartDir is set the
// report references the PNG charts relative to it.
type HTMLFormatter struct {
	ChartDir string
}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"score": FormatScore,
	"add":   func(i, j int) int { return i + j },
	"fixed": func(v float64) string { return floatToString(v, 2) },
}).Parse(htmlTemplateSource))

type htmlChart struct {
	Src   string
	Title string
}

var chartTitles = map[string]string{
	charts.AgeDistribution:          "Age distribution by gender",
	charts.SpendingByCity:           "Average spend by city",
	charts.SubscriptionDistribution: "Subscription types",
	charts.SpendingSatisfaction:     "Spend vs satisfaction",
	charts.SpendingSegments:         "Spend segments",
	charts.AcquisitionSources:       "Acquisition sources",
	charts.DeviceDistribution:       "Device usage",
	charts.PerformanceMetrics:       "Key performance metrics",
}

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Analysis == nil {
		return nil, fmt.Errorf("report has no analysis")
	}
	var buf bytes.Buffer

	// Use assumptions from the report if available, otherwise fall back to defaults
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}

	var chartRefs []htmlChart
	if h.ChartDir != "" {
		for _, name := range charts.ChartFiles {
			chartRefs = append(chartRefs, htmlChart{Src: path.Join(h.ChartDir, name), Title: chartTitles[name]})
		}
	}

	data := struct {
		*domain.Report
		Findings        []string
		Challenges      []string
		Metrics         []MetricRow
		Cities          []CityRow
		Recommendations []Recommendation
		Assumptions     []string
		Charts          []htmlChart
	}{
		Report:          report,
		Findings:        KeyFindings(report.Analysis),
		Challenges:      Challenges(report.Analysis),
		Metrics:         KeyMetrics(report.Analysis),
		Cities:          CityTable(report.Analysis),
		Recommendations: Recommend(report.Analysis),
		Assumptions:     assumptions,
		Charts:          chartRefs,
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
