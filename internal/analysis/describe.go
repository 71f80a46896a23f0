package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/pkg/stats"
)

// NumericColumns are the columns Describe reports on, in table order.
var NumericColumns = []string{
	domain.ColAge,
	domain.ColTotalPurchases,
	domain.ColTotalSpend,
	domain.ColAvgSessionDuration,
	domain.ColPageviewsPerSession,
	domain.ColBounceRate,
	domain.ColSatisfactionScore,
	domain.ColSupportTickets,
}

// NumericValue returns the value of a numeric column, false when missing.
func NumericValue(r domain.CustomerRecord, column string) (float64, bool) {
	switch column {
	case domain.ColAge:
		return float64(r.Age), true
	case domain.ColTotalPurchases:
		return float64(r.TotalPurchases), true
	case domain.ColTotalSpend:
		return r.TotalSpend, true
	case domain.ColAvgSessionDuration:
		return r.AvgSessionDuration, true
	case domain.ColPageviewsPerSession:
		return float64(r.PageviewsPerSession), true
	case domain.ColBounceRate:
		return r.BounceRate, true
	case domain.ColSatisfactionScore:
		if r.SatisfactionScore == nil {
			return 0, false
		}
		return *r.SatisfactionScore, true
	case domain.ColSupportTickets:
		return float64(r.SupportTickets), true
	}
	return 0, false
}

// Column extracts the present values of a numeric column.
func Column(records []domain.CustomerRecord, column string) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := NumericValue(r, column); ok {
			out = append(out, v)
		}
	}
	return out
}

// Describe returns count, mean, sample std, min, quartiles and max for every
// numeric column, skipping missing values. Std is zero below two values.
func Describe(records []domain.CustomerRecord) []domain.ColumnStats {
	out := make([]domain.ColumnStats, 0, len(NumericColumns))
	for _, col := range NumericColumns {
		values := Column(records, col)
		cs := domain.ColumnStats{Column: col, Count: len(values)}
		if len(values) == 0 {
			out = append(out, cs)
			continue
		}
		sort.Float64s(values)
		if len(values) > 1 {
			cs.Mean, cs.Std = stat.MeanStdDev(values, nil)
		} else {
			cs.Mean = values[0]
		}
		cs.Min = values[0]
		cs.Max = values[len(values)-1]
		cs.P25 = stats.PercentileSorted(values, 25)
		cs.P50 = stats.PercentileSorted(values, 50)
		cs.P75 = stats.PercentileSorted(values, 75)
		out = append(out, cs)
	}
	return out
}
