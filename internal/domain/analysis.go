package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the headline business metrics of a dataset
type Summary struct {
	Customers           int             `json:"customers"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"` // CHF
	AverageCLV          decimal.Decimal `json:"average_clv"`   // mean total spend, CHF
	MedianSpend         decimal.Decimal `json:"median_spend"`
	ChurnCutoff         time.Time       `json:"churn_cutoff"`
	ChurnedCustomers    int             `json:"churned_customers"`
	ChurnRate           float64         `json:"churn_rate"` // percent
	AverageSatisfaction float64         `json:"average_satisfaction"`
	AverageTenureDays   float64         `json:"average_tenure_days"`
	AverageBounceRate   float64         `json:"average_bounce_rate"` // percent
}

// ColumnStats mirrors a describe() row for one numeric column
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// CategoryShare is one bar of a value-count distribution
type CategoryShare struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribution is a value-count table for one categorical or segmented column
type Distribution struct {
	Column string          `json:"column"`
	Shares []CategoryShare `json:"shares"`
}

// Share returns the entry for label.
func (d Distribution) Share(label string) (CategoryShare, bool) {
	for _, s := range d.Shares {
		if s.Label == label {
			return s, true
		}
	}
	return CategoryShare{}, false
}

// Top returns the entry with the highest count, if any.
func (d Distribution) Top() (CategoryShare, bool) {
	if len(d.Shares) == 0 {
		return CategoryShare{}, false
	}
	return d.Shares[0], true
}

// GroupSpend aggregates spend for one group of customers
type GroupSpend struct {
	Group string          `json:"group"`
	Count int             `json:"count"`
	Mean  decimal.Decimal `json:"mean"`
	Sum   decimal.Decimal `json:"sum"`
}

// SatisfactionStats summarizes the present satisfaction scores
type SatisfactionStats struct {
	Respondents         int     `json:"respondents"`
	Mean                float64 `json:"mean"`
	Median              float64 `json:"median"`
	Satisfied           int     `json:"satisfied"`
	Dissatisfied        int     `json:"dissatisfied"`
	SatisfiedPercent    float64 `json:"satisfied_percent"`
	DissatisfiedPercent float64 `json:"dissatisfied_percent"`
}

// Trend is a least-squares line y = Intercept + Slope*x with the Pearson correlation
type Trend struct {
	Points      int     `json:"points"`
	Correlation float64 `json:"correlation"`
	Intercept   float64 `json:"intercept"`
	Slope       float64 `json:"slope"`
}

// At evaluates the trend line.
func (t Trend) At(x float64) float64 { return t.Intercept + t.Slope*x }

// Insights are the derived findings quoted by the reports
type Insights struct {
	ChampionCity          GroupSpend `json:"champion_city"`
	BestSource            GroupSpend `json:"best_source"`
	BestSubscription      GroupSpend `json:"best_subscription"`
	UpsellCandidates      int        `json:"upsell_candidates"`
	AtRiskCustomers       int        `json:"at_risk_customers"`
	HighValueDissatisfied int        `json:"high_value_dissatisfied"`
}

// Analysis is the full descriptive analysis of one dataset
type Analysis struct {
	Summary             Summary           `json:"summary"`
	Describe            []ColumnStats     `json:"describe"`
	Distributions       []Distribution    `json:"distributions"`
	SpendByCity         []GroupSpend      `json:"spend_by_city"`
	SpendBySubscription []GroupSpend      `json:"spend_by_subscription"`
	SpendBySource       []GroupSpend      `json:"spend_by_source"`
	SpendSegments       Distribution      `json:"spend_segments"`
	AgeSegments         Distribution      `json:"age_segments"`
	Satisfaction        SatisfactionStats `json:"satisfaction"`
	SpendSatisfaction   Trend             `json:"spend_satisfaction"`
	Insights            Insights          `json:"insights"`
}

// Distribution returns the distribution computed for column.
func (a *Analysis) Distribution(column string) (Distribution, bool) {
	for _, d := range a.Distributions {
		if d.Column == column {
			return d, true
		}
	}
	return Distribution{}, false
}

// ColumnStats returns the describe() row for column.
func (a *Analysis) ColumnStats(column string) (ColumnStats, bool) {
	for _, c := range a.Describe {
		if c.Column == column {
			return c, true
		}
	}
	return ColumnStats{}, false
}

// Report bundles everything the output layer renders
type Report struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Dataset     *Dataset          `json:"-"`
	Validation  *ValidationReport `json:"validation"`
	Analysis    *Analysis         `json:"analysis"`
	Assumptions []string          `json:"assumptions"`
}
