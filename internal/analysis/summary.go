package analysis

import (
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/pkg/dateutil"
	"github.com/swisscx/customer-insights/pkg/money"
	"github.com/swisscx/customer-insights/pkg/stats"
)

// IsChurned reports whether the customer was last active before cutoff.
func IsChurned(r domain.CustomerRecord, cutoff time.Time) bool {
	return r.LastActivityDate.Before(cutoff)
}

// Summarize computes the headline metrics.
func Summarize(records []domain.CustomerRecord, cutoff time.Time) domain.Summary {
	n := len(records)
	spend := make([]float64, n)
	tenure := make([]float64, n)
	bounce := make([]float64, n)
	var scores []float64
	churned := 0
	for i, r := range records {
		spend[i] = r.TotalSpend
		tenure[i] = float64(dateutil.DaysBetween(r.SignupDate, r.LastActivityDate))
		bounce[i] = r.BounceRate
		if r.SatisfactionScore != nil {
			scores = append(scores, *r.SatisfactionScore)
		}
		if IsChurned(r, cutoff) {
			churned++
		}
	}

	s := domain.Summary{
		Customers:        n,
		TotalRevenue:     money.Sum(spend).Decimal,
		AverageCLV:       money.Mean(spend).Round().Decimal,
		MedianSpend:      decimal.Zero,
		ChurnCutoff:      cutoff,
		ChurnedCustomers: churned,
	}
	if n == 0 {
		return s
	}
	s.MedianSpend = decimal.NewFromFloat(stats.Median(spend)).Round(2)
	s.ChurnRate = float64(churned) / float64(n) * 100
	s.AverageTenureDays = stat.Mean(tenure, nil)
	s.AverageBounceRate = stat.Mean(bounce, nil) * 100
	if len(scores) > 0 {
		s.AverageSatisfaction = stat.Mean(scores, nil)
	}
	return s
}
