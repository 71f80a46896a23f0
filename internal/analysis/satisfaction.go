package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/pkg/stats"
)

// SatisfactionSummary reports on the present satisfaction scores. Scores at
// or above satisfied count as satisfied, at or below dissatisfied as dissatisfied.
func SatisfactionSummary(records []domain.CustomerRecord, satisfied, dissatisfied float64) domain.SatisfactionStats {
	scores := Column(records, domain.ColSatisfactionScore)
	s := domain.SatisfactionStats{Respondents: len(scores)}
	if len(scores) == 0 {
		return s
	}
	s.Mean = stat.Mean(scores, nil)
	s.Median = stats.Median(scores)
	for _, v := range scores {
		if v >= satisfied {
			s.Satisfied++
		}
		if v <= dissatisfied {
			s.Dissatisfied++
		}
	}
	s.SatisfiedPercent = percent(s.Satisfied, len(scores))
	s.DissatisfiedPercent = percent(s.Dissatisfied, len(scores))
	return s
}

// SpendSatisfactionTrend fits satisfaction = a + b*spend over respondents and
// reports the Pearson correlation. Degenerate inputs give a zero trend.
func SpendSatisfactionTrend(records []domain.CustomerRecord) domain.Trend {
	var spend, scores []float64
	for _, r := range records {
		if r.SatisfactionScore == nil {
			continue
		}
		spend = append(spend, r.TotalSpend)
		scores = append(scores, *r.SatisfactionScore)
	}
	t := domain.Trend{Points: len(spend)}
	if len(spend) < 2 {
		return t
	}
	if _, sx := stat.PopMeanStdDev(spend, nil); sx == 0 {
		return t
	}
	t.Intercept, t.Slope = stat.LinearRegression(spend, scores, nil, false)
	if _, sy := stat.PopMeanStdDev(scores, nil); sy > 0 {
		t.Correlation = stat.Correlation(spend, scores, nil)
	}
	if math.IsNaN(t.Correlation) {
		t.Correlation = 0
	}
	return t
}
