package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/swisscx/customer-insights/internal/domain"
)

// CSVSummarizer implements the summary metrics CSV output (one row per metric).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Analysis == nil {
		return nil, fmt.Errorf("report has no analysis")
	}
	s, in := report.Analysis.Summary, report.Analysis.Insights
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{
		{"Metric", "Value"},
		{"total_customers", intToString(s.Customers)},
		{"total_revenue_chf", s.TotalRevenue.StringFixed(2)},
		{"average_clv_chf", s.AverageCLV.StringFixed(2)},
		{"median_spend_chf", s.MedianSpend.StringFixed(2)},
		{"churned_customers", intToString(s.ChurnedCustomers)},
		{"churn_rate_percent", floatToString(s.ChurnRate, 2)},
		{"average_satisfaction", floatToString(s.AverageSatisfaction, 2)},
		{"average_tenure_days", floatToString(s.AverageTenureDays, 2)},
		{"average_bounce_rate_percent", floatToString(s.AverageBounceRate, 2)},
		{"champion_city", in.ChampionCity.Group},
		{"best_acquisition_source", in.BestSource.Group},
		{"best_subscription", in.BestSubscription.Group},
		{"upsell_candidates", intToString(in.UpsellCandidates)},
		{"at_risk_customers", intToString(in.AtRiskCustomers)},
		{"high_value_dissatisfied", intToString(in.HighValueDissatisfied)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
