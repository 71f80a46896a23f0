package output

import (
	"fmt"

	"github.com/swisscx/customer-insights/internal/domain"
)

// Target levels the recommendations measure against.
const (
	targetChurnRate    = 50.0
	targetSatisfaction = 7.0
	targetTenureDays   = 90.0
)

// Recommendation groups the actions suggested for one time horizon.
type Recommendation struct {
	Horizon string
	Actions []string
}

// KeyFindings lists the headline findings quoted in summaries.
func KeyFindings(an *domain.Analysis) []string {
	in := an.Insights
	return []string{
		fmt.Sprintf("%s is the most profitable city with %s average spend", in.ChampionCity.Group, FormatCurrency(in.ChampionCity.Mean)),
		fmt.Sprintf("%s is the most profitable acquisition source (CLV: %s)", in.BestSource.Group, FormatCurrency(in.BestSource.Mean)),
		fmt.Sprintf("%s subscriptions generate the highest CLV (%s)", in.BestSubscription.Group, FormatCurrency(in.BestSubscription.Mean)),
		fmt.Sprintf("%d satisfied customers with low spend are an upsell opportunity", in.UpsellCandidates),
	}
}

// Challenges lists the problems the analysis surfaced.
func Challenges(an *domain.Analysis) []string {
	s := an.Summary
	return []string{
		fmt.Sprintf("Churn rate: %s of customers inactive since %s", FormatPercentage(s.ChurnRate), s.ChurnCutoff.Format(domain.DateLayout)),
		fmt.Sprintf("%d customers identified as high churn risk", an.Insights.AtRiskCustomers),
		fmt.Sprintf("Average satisfaction: %s", FormatScore(s.AverageSatisfaction)),
		fmt.Sprintf("%d high-value customers with low satisfaction", an.Insights.HighValueDissatisfied),
	}
}

// Recommend derives the action plan from the analysis.
// Extracted from the document writers for testability.
func Recommend(an *domain.Analysis) []Recommendation {
	s, in := an.Summary, an.Insights
	return []Recommendation{
		{
			Horizon: "Urgent actions (0-30 days)",
			Actions: []string{
				fmt.Sprintf("Target %d high-risk customers with retention incentives", in.AtRiskCustomers),
				fmt.Sprintf("Proactive support for %d dissatisfied high-value customers", in.HighValueDissatisfied),
				fmt.Sprintf("Reactivation campaign for %d churned customers", s.ChurnedCustomers),
			},
		},
		{
			Horizon: "Strategic actions (1-3 months)",
			Actions: []string{
				fmt.Sprintf("Shift acquisition budget towards %s", in.BestSource.Group),
				fmt.Sprintf("Replicate the %s model in other cities", in.ChampionCity.Group),
				fmt.Sprintf("Raise satisfaction from %.1f towards %.1f", s.AverageSatisfaction, targetSatisfaction),
			},
		},
		{
			Horizon: "Growth actions (3-6 months)",
			Actions: []string{
				fmt.Sprintf("Personalised upgrade offers for %d satisfied low-spend customers", in.UpsellCandidates),
				"Loyalty programme with rewards and benefits",
				fmt.Sprintf("Extend %s plan features", in.BestSubscription.Group),
			},
		},
	}
}

// MetricRow is one line of the key performance metrics table.
type MetricRow struct {
	Metric    string
	Value     string
	Benchmark string
	OK        bool
}

// Status renders the benchmark verdict.
func (m MetricRow) Status() string {
	if m.OK {
		return "OK"
	}
	return "Needs attention"
}

// KeyMetrics builds the performance table with benchmark verdicts.
func KeyMetrics(an *domain.Analysis) []MetricRow {
	s := an.Summary
	return []MetricRow{
		{"Customers analysed", intToString(s.Customers), "n/a", s.Customers > 0},
		{"Total revenue", FormatCurrency(s.TotalRevenue), "n/a", s.TotalRevenue.IsPositive()},
		{"Average CLV", FormatCurrency(s.AverageCLV), "> CHF 100", s.AverageCLV.InexactFloat64() > 100},
		{"Churn rate", FormatPercentage(s.ChurnRate), fmt.Sprintf("< %.0f%%", targetChurnRate), s.ChurnRate < targetChurnRate},
		{"Average satisfaction", FormatScore(s.AverageSatisfaction), fmt.Sprintf("> %.1f", targetSatisfaction), s.AverageSatisfaction > targetSatisfaction},
		{"Customer tenure", fmt.Sprintf("%.1f days", s.AverageTenureDays), fmt.Sprintf("> %.0f days", targetTenureDays), s.AverageTenureDays > targetTenureDays},
	}
}

// CityRow is one line of the geographic table.
type CityRow struct {
	City        string
	Customers   int
	MarketShare float64
	AvgSpend    string
}

// CityTable lists cities by average spend with their market share.
func CityTable(an *domain.Analysis) []CityRow {
	rows := make([]CityRow, 0, len(an.SpendByCity))
	for _, g := range an.SpendByCity {
		share := 0.0
		if an.Summary.Customers > 0 {
			share = float64(g.Count) / float64(an.Summary.Customers) * 100
		}
		rows = append(rows, CityRow{City: g.Group, Customers: g.Count, MarketShare: share, AvgSpend: FormatCurrency(g.Mean)})
	}
	return rows
}
