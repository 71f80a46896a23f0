package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swisscx/customer-insights/internal/analysis"
	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/pkg/money"
)

// Targets quoted in the conclusion.
const targetCLV = 150.0

func writeBusiness(d *document, report *domain.Report) {
	an := report.Analysis
	s, in := an.Summary, an.Insights

	// cover
	d.pdf.AddPage()
	d.pdf.Ln(30)
	d.title("Customer Behaviour Analysis")
	d.subtitle("Business intelligence for the Swiss market")
	d.pdf.Ln(10)
	d.paragraph(fmt.Sprintf("Customers analysed: %d", s.Customers))
	d.paragraph("Total revenue: " + FormatCurrency(s.TotalRevenue))
	d.paragraph("Average CLV: " + FormatCurrency(s.AverageCLV))
	d.paragraph("Churn rate: " + FormatPercentage(s.ChurnRate))
	d.pdf.Ln(10)
	d.paragraph("Generated on " + generatedOn(report))

	// executive summary
	d.pdf.AddPage()
	d.title("Executive Summary")
	d.subtitle("Objective")
	d.paragraph(fmt.Sprintf("This analysis examines the behaviour of %d Swiss customers to identify purchasing patterns, "+
		"value segments and revenue opportunities in the Swiss market.", s.Customers))
	d.subtitle("Key findings")
	d.bullets(KeyFindings(an))
	d.subtitle("Challenges")
	d.bullets(Challenges(an))

	// metrics and geography
	d.pdf.AddPage()
	d.title("Key Performance Metrics")
	metrics := KeyMetrics(an)
	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		rows[i] = []string{m.Metric, m.Value, m.Benchmark, m.Status()}
	}
	d.table([]string{"Metric", "Value", "Benchmark", "Status"}, rows, colorBlue, colorBeige)

	d.subtitle("Geographic analysis")
	cities := CityTable(an)
	rows = make([][]string, len(cities))
	for i, c := range cities {
		rows[i] = []string{c.City, intToString(c.Customers), FormatPercentage(c.MarketShare), c.AvgSpend}
	}
	d.table([]string{"City", "Customers", "Market share", "Average spend"}, rows, colorRed, colorGrey)

	if champ := in.ChampionCity; champ.Group != "" {
		d.subtitle(champ.Group + ": champion city")
		d.paragraph(fmt.Sprintf("%s leads with %s average spend, %s of %s. "+
			"It can serve as the model for the other Swiss cities.",
			champ.Group, FormatCurrency(champ.Mean), relativeTo(champ.Mean.InexactFloat64(), s.AverageCLV.InexactFloat64()), FormatCurrency(s.AverageCLV)))
	}

	premium, okPremium := analysis.MeanOf(an.SpendBySubscription, string(domain.SubscriptionPremium))
	basic, okBasic := analysis.MeanOf(an.SpendBySubscription, string(domain.SubscriptionBasic))
	if okPremium && okBasic {
		d.subtitle("Subscriptions")
		d.paragraph(fmt.Sprintf("Premium subscribers spend %s on average against %s for Basic subscribers.",
			FormatCurrency(premium), FormatCurrency(basic)))
	}

	// recommendations
	d.pdf.AddPage()
	d.title("Strategic Recommendations")
	for _, rec := range Recommend(an) {
		d.subtitle(rec.Horizon)
		d.bullets(rec.Actions)
	}

	// conclusion
	d.pdf.AddPage()
	d.title("Conclusion")
	d.subtitle("Summary of findings")
	d.bullets(append(KeyFindings(an), fmt.Sprintf("A churn rate of %s calls for immediate action", FormatPercentage(s.ChurnRate))))
	d.subtitle("Targets")
	d.bullets([]string{
		fmt.Sprintf("Churn: from %s to %s", FormatPercentage(s.ChurnRate), FormatPercentage(targetChurnRate)),
		fmt.Sprintf("CLV: from %s to %s", FormatCurrency(s.AverageCLV), FormatAmount(targetCLV)),
		fmt.Sprintf("Satisfaction: from %.1f to %.1f", s.AverageSatisfaction, targetSatisfaction),
		fmt.Sprintf("Revenue at target CLV: %s", targetRevenue(s.Customers).Format()),
	})
	d.pdf.Ln(10)
	d.centered("Customer Behaviour Analysis - Switzerland", 12)
	d.centered("Business intelligence for sustainable growth", 10)
	d.centered("Report generated on "+generatedOn(report), 9)
}

// targetRevenue is what customers would spend in total at the target CLV.
func targetRevenue(customers int) money.Money {
	return money.NewMoney(targetCLV).Mul(decimal.NewFromInt(int64(customers)))
}

// relativeTo describes v as a percentage above or below base.
func relativeTo(v, base float64) string {
	if base == 0 || v == base {
		return "in line with the national average"
	}
	diff := (v - base) / base * 100
	if diff > 0 {
		return fmt.Sprintf("%.0f%% above the national average", diff)
	}
	return fmt.Sprintf("%.0f%% below the national average", -diff)
}
