package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/swisscx/customer-insights/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed sectioned console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string      { return "console-verbose" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Analysis == nil {
		return nil, fmt.Errorf("report has no analysis")
	}
	var buf bytes.Buffer
	an := report.Analysis

	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf, "DETAILED CUSTOMER BEHAVIOUR ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	if report.Validation != nil {
		WriteValidation(&buf, report.Validation)
	}

	section(&buf, "DESCRIPTIVE STATISTICS")
	fmt.Fprintf(&buf, "%-22s %6s %10s %10s %10s %10s %10s %10s %10s\n", "column", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for _, cs := range an.Describe {
		fmt.Fprintf(&buf, "%-22s %6d %10.2f %10.2f %10.2f %10.2f %10.2f %10.2f %10.2f\n",
			cs.Column, cs.Count, cs.Mean, cs.Std, cs.Min, cs.P25, cs.P50, cs.P75, cs.Max)
	}

	section(&buf, "1. DEMOGRAPHICS")
	writeDistribution(&buf, an, domain.ColGender, "Distribution by gender")
	if age, ok := an.ColumnStats(domain.ColAge); ok {
		fmt.Fprintf(&buf, "\nMean age: %.1f years\n", age.Mean)
		fmt.Fprintf(&buf, "Median age: %.1f years\n", age.P50)
		fmt.Fprintf(&buf, "Standard deviation: %.1f years\n", age.Std)
	}
	fmt.Fprintln(&buf)
	writeDistribution(&buf, an, domain.ColCity, "Distribution by city")

	section(&buf, "2. SPENDING")
	s := an.Summary
	fmt.Fprintf(&buf, "Total spend: %s\n", FormatCurrency(s.TotalRevenue))
	fmt.Fprintf(&buf, "Mean spend: %s\n", FormatCurrency(s.AverageCLV))
	fmt.Fprintf(&buf, "Median spend: %s\n", FormatCurrency(s.MedianSpend))
	fmt.Fprintln(&buf, "\nSpend by city:")
	for _, g := range an.SpendByCity {
		fmt.Fprintf(&buf, "  %s: %s (mean), %s (total), %d customers\n", g.Group, FormatCurrency(g.Mean), FormatCurrency(g.Sum), g.Count)
	}

	section(&buf, "3. CUSTOMER SEGMENTATION")
	writeShares(&buf, "Segmentation by spend", an.SpendSegments)
	fmt.Fprintln(&buf)
	writeShares(&buf, "Segmentation by age", an.AgeSegments)

	section(&buf, "4. SUBSCRIPTIONS")
	writeDistribution(&buf, an, domain.ColSubscriptionType, "Subscription distribution")
	fmt.Fprintln(&buf, "\nMean spend by subscription:")
	for _, g := range an.SpendBySubscription {
		fmt.Fprintf(&buf, "  %s: %s\n", g.Group, FormatCurrency(g.Mean))
	}

	section(&buf, "5. SATISFACTION")
	sat := an.Satisfaction
	fmt.Fprintf(&buf, "Mean satisfaction: %.2f/10\n", sat.Mean)
	fmt.Fprintf(&buf, "Median satisfaction: %.2f/10\n", sat.Median)
	fmt.Fprintf(&buf, "\nSatisfied customers: %d (%s)\n", sat.Satisfied, FormatPercentage(sat.SatisfiedPercent))
	fmt.Fprintf(&buf, "Dissatisfied customers: %d (%s)\n", sat.Dissatisfied, FormatPercentage(sat.DissatisfiedPercent))
	t := an.SpendSatisfaction
	fmt.Fprintf(&buf, "Spend/satisfaction correlation: %.3f over %d customers\n", t.Correlation, t.Points)

	section(&buf, "6. DEVICES")
	writeDistribution(&buf, an, domain.ColDeviceType, "Device distribution")

	section(&buf, "7. ACQUISITION")
	writeDistribution(&buf, an, domain.ColAcquisitionSource, "Acquisition sources")
	fmt.Fprintln(&buf, "\nCLV by source:")
	for _, g := range an.SpendBySource {
		fmt.Fprintf(&buf, "  %s: %s\n", g.Group, FormatCurrency(g.Mean))
	}

	section(&buf, "RECOMMENDATIONS")
	for _, rec := range Recommend(an) {
		fmt.Fprintln(&buf, rec.Horizon)
		for _, a := range rec.Actions {
			fmt.Fprintf(&buf, "  • %s\n", a)
		}
	}
	return buf.Bytes(), nil
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", 40))
}

func writeDistribution(w io.Writer, an *domain.Analysis, column, title string) {
	d, ok := an.Distribution(column)
	if !ok {
		return
	}
	writeShares(w, title, d)
}

func writeShares(w io.Writer, title string, d domain.Distribution) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, s := range d.Shares {
		fmt.Fprintf(w, "  %s: %d (%s)\n", s.Label, s.Count, FormatPercentage(s.Percent))
	}
}

// WriteValidation prints the data quality section of a report.
func WriteValidation(w io.Writer, vr *domain.ValidationReport) {
	section(w, "DATA QUALITY")
	fmt.Fprintf(w, "%-22s %8s %8s %s\n", "column", "missing", "percent", "complete")
	for _, c := range vr.Completeness {
		fmt.Fprintf(w, "%-22s %8d %7.2f%% %s\n", c.Column, c.MissingCount, c.MissingPercent, boolToString(c.IsComplete))
	}
	fmt.Fprintf(w, "\nDuplicates detected: %d\n", vr.Duplicates)
	for _, rc := range append(append([]domain.RangeCheck(nil), vr.Consistency...), vr.Accuracy...) {
		fmt.Fprintf(w, "%s: [%g, %g] valid=%s\n", rc.Name, rc.Min, rc.Max, boolToString(rc.Valid))
	}
	for _, cc := range vr.Timeliness {
		fmt.Fprintf(w, "%s: %d violations valid=%s\n", cc.Name, cc.Violations, boolToString(cc.Valid))
	}
	fmt.Fprintln(w, "\nUnique values per column:")
	for _, col := range domain.Columns {
		if n, ok := vr.UniqueValues[col]; ok {
			fmt.Fprintf(w, "  %s: %d unique values\n", col, n)
		}
	}
	for _, v := range vr.Violations {
		fmt.Fprintf(w, "VIOLATION %s: %s\n", v.Check, v.Message)
	}
}
