package output

import (
	"fmt"
	"path/filepath"

	"github.com/swisscx/customer-insights/internal/charts"
	"github.com/swisscx/customer-insights/internal/domain"
)

// presentationChart describes one figure of the visualisation chapter.
type presentationChart struct {
	file    string
	heading string
	caption string
	width   float64 // mm
}

var presentationCharts = []presentationChart{
	{charts.AgeDistribution, "Demographic distribution", "Age histogram per gender.", 150},
	{charts.SpendingByCity, "Geographic analysis", "Mean spend per city, highest first.", 150},
	{charts.SubscriptionDistribution, "Subscription segmentation", "Share of each subscription plan.", 120},
	{charts.SpendingSatisfaction, "Correlation analysis", "Total spend against satisfaction with the least-squares trend.", 150},
	{charts.SpendingSegments, "Value segmentation", "Customers per spend band.", 150},
	{charts.AcquisitionSources, "Acquisition sources", "Customers per acquisition channel.", 150},
	{charts.DeviceDistribution, "Device types", "Share of each device type.", 120},
	{charts.PerformanceMetrics, "Performance metrics", "Average CLV, satisfaction, tenure and bounce rate.", 150},
}

var presentationContents = []string{
	"1. Introduction",
	"2. Research questions",
	"3. Data collection and preparation",
	"4. Exploratory data analysis",
	"5. Visualisations",
	"6. Segmentation",
	"7. Results and recommendations",
	"8. Conclusion",
}

func writePresentation(d *document, report *domain.Report, chartDir string) {
	an := report.Analysis
	s := an.Summary

	d.pdf.AddPage()
	d.pdf.Ln(40)
	d.title("Predictive Analysis of Customer Behaviour")
	d.subtitle("Business intelligence for the Swiss market")
	d.pdf.Ln(20)
	d.centered("Generated on "+generatedOn(report), 11)
	d.centered("Run "+report.RunID, 9)

	d.pdf.AddPage()
	d.title("Table of Contents")
	d.bullets(presentationContents)

	d.pdf.AddPage()
	d.title(presentationContents[0])
	d.subtitle("Context")
	d.paragraph(fmt.Sprintf("Swiss e-commerce businesses compete for a small, demanding market. This study analyses %d customers "+
		"across %d cities to understand what drives spend, satisfaction and churn.", s.Customers, len(an.SpendByCity)))
	d.title(presentationContents[1])
	d.bullets([]string{
		"RQ1: Which cities and acquisition channels produce the most valuable customers?",
		"RQ2: How does spend relate to satisfaction?",
		"RQ3: Which customers are at risk of churning?",
		"RQ4: Where are the upsell opportunities?",
	})

	d.pdf.AddPage()
	d.title(presentationContents[2])
	d.subtitle("Variables")
	d.paragraph(fmt.Sprintf("The dataset holds %d variables per customer:", len(domain.Columns)))
	d.bullets(domain.Columns)
	if vr := report.Validation; vr != nil {
		d.subtitle("Data quality")
		quality := []string{
			fmt.Sprintf("Rows: %d", vr.Rows),
			fmt.Sprintf("Duplicates: %d", vr.Duplicates),
			fmt.Sprintf("Violations: %d", len(vr.Violations)),
		}
		if c, ok := vr.ColumnCompleteness(domain.ColSatisfactionScore); ok {
			quality = append(quality, fmt.Sprintf("Missing satisfaction scores: %d (%s)", c.MissingCount, FormatPercentage(c.MissingPercent)))
		}
		d.bullets(quality)
	}

	d.pdf.AddPage()
	d.title(presentationContents[3])
	d.subtitle("Descriptive statistics")
	rows := make([][]string, len(an.Describe))
	for i, cs := range an.Describe {
		rows[i] = []string{cs.Column, intToString(cs.Count), floatToString(cs.Mean, 2), floatToString(cs.Std, 2), floatToString(cs.Min, 2), floatToString(cs.P50, 2), floatToString(cs.Max, 2)}
	}
	d.table([]string{"Variable", "Count", "Mean", "Std", "Min", "Median", "Max"}, rows, colorBlue, colorBeige)

	d.pdf.AddPage()
	d.title(presentationContents[4])
	embedded := 0
	for i, c := range presentationCharts {
		if i > 0 && i%2 == 0 {
			d.pdf.AddPage()
		}
		d.subtitle(fmt.Sprintf("5.%d %s", i+1, c.heading))
		if d.image(filepath.Join(chartDir, c.file), c.width) {
			embedded++
		}
		d.paragraph(c.caption)
	}
	d.log.Debugf("output: %d of %d charts embedded", embedded, len(presentationCharts))

	d.pdf.AddPage()
	d.title(presentationContents[5])
	d.subtitle("Spend bands")
	d.table([]string{"Segment", "Customers", "Share"}, shareRows(an.SpendSegments), colorRed, colorGrey)
	d.subtitle("Age bands")
	d.table([]string{"Segment", "Customers", "Share"}, shareRows(an.AgeSegments), colorRed, colorGrey)

	d.pdf.AddPage()
	d.title(presentationContents[6])
	d.subtitle("Findings")
	d.bullets(KeyFindings(an))
	d.bullets(Challenges(an))
	for _, rec := range Recommend(an) {
		d.subtitle(rec.Horizon)
		d.bullets(rec.Actions)
	}

	d.pdf.AddPage()
	d.title(presentationContents[7])
	d.paragraph(fmt.Sprintf("Over %d customers the average CLV is %s with a churn rate of %s. "+
		"Spend and satisfaction correlate at %.2f. Retention of the %d at-risk customers and upselling the %d satisfied "+
		"low spenders are the most direct levers.",
		s.Customers, FormatCurrency(s.AverageCLV), FormatPercentage(s.ChurnRate), an.SpendSatisfaction.Correlation,
		an.Insights.AtRiskCustomers, an.Insights.UpsellCandidates))
	d.subtitle("Assumptions")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	d.bullets(assumptions)
}

func shareRows(dist domain.Distribution) [][]string {
	rows := make([][]string, len(dist.Shares))
	for i, s := range dist.Shares {
		rows[i] = []string{s.Label, intToString(s.Count), FormatPercentage(s.Percent)}
	}
	return rows
}
