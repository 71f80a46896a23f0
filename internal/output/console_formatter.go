package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/swisscx/customer-insights/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Analysis == nil {
		return nil, fmt.Errorf("report has no analysis")
	}
	var buf bytes.Buffer
	s := report.Analysis.Summary
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "CUSTOMER BEHAVIOUR ANALYSIS - SWITZERLAND")
	fmt.Fprintln(&buf, rule)
	if ds := report.Dataset; ds != nil {
		fmt.Fprintf(&buf, "Dataset: %d customers, %d columns (seed %d, year %d)\n", ds.Len(), len(domain.Columns), ds.Seed, ds.Year)
	}
	if vr := report.Validation; vr != nil {
		status := "passed"
		if !vr.Valid() {
			status = fmt.Sprintf("%d violation(s)", len(vr.Violations))
		}
		fmt.Fprintf(&buf, "Validation: %s, %d duplicate rows\n", status, vr.Duplicates)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "Total customers:      %d\n", s.Customers)
	fmt.Fprintf(&buf, "Total revenue:        %s\n", FormatCurrency(s.TotalRevenue))
	fmt.Fprintf(&buf, "Average CLV:          %s\n", FormatCurrency(s.AverageCLV))
	fmt.Fprintf(&buf, "Churn rate:           %s\n", FormatPercentage(s.ChurnRate))
	fmt.Fprintf(&buf, "Average satisfaction: %s\n", FormatScore(s.AverageSatisfaction))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY FINDINGS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	for _, f := range KeyFindings(report.Analysis) {
		fmt.Fprintf(&buf, "• %s\n", f)
	}
	return buf.Bytes(), nil
}
