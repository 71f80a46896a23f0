package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/pkg/money"
)

// CategoricalColumns are the columns Distributions reports on.
var CategoricalColumns = []string{
	domain.ColGender,
	domain.ColCity,
	domain.ColSubscriptionType,
	domain.ColDeviceType,
	domain.ColAcquisitionSource,
}

// ValueCounts tallies labels, ordered by count descending then label.
// Missing (empty) labels are skipped; percentages are of all records.
func ValueCounts(column string, labels []string) domain.Distribution {
	counts := map[string]int{}
	for _, l := range labels {
		if l == "" {
			continue
		}
		counts[l]++
	}
	d := domain.Distribution{Column: column, Shares: make([]domain.CategoryShare, 0, len(counts))}
	for label, c := range counts {
		d.Shares = append(d.Shares, domain.CategoryShare{Label: label, Count: c, Percent: percent(c, len(labels))})
	}
	sort.Slice(d.Shares, func(i, j int) bool {
		if d.Shares[i].Count != d.Shares[j].Count {
			return d.Shares[i].Count > d.Shares[j].Count
		}
		return d.Shares[i].Label < d.Shares[j].Label
	})
	return d
}

// Distributions returns the value counts of every categorical column.
func Distributions(records []domain.CustomerRecord) []domain.Distribution {
	out := make([]domain.Distribution, 0, len(CategoricalColumns))
	for _, col := range CategoricalColumns {
		labels := make([]string, len(records))
		for i, r := range records {
			labels[i] = r.Value(col)
		}
		out = append(out, ValueCounts(col, labels))
	}
	return out
}

// SpendBy groups spend by key, ordered by mean spend descending then group name.
func SpendBy(records []domain.CustomerRecord, key func(domain.CustomerRecord) string) []domain.GroupSpend {
	groups := map[string][]float64{}
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r.TotalSpend)
	}
	out := make([]domain.GroupSpend, 0, len(groups))
	for g, values := range groups {
		out = append(out, domain.GroupSpend{
			Group: g,
			Count: len(values),
			Mean:  money.Mean(values).Round().Decimal,
			Sum:   money.Sum(values).Round().Decimal,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		mi, mj := money.NewMoneyFromDecimal(out[i].Mean), money.NewMoneyFromDecimal(out[j].Mean)
		if !mi.Equal(mj) {
			return mi.GreaterThan(mj)
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// Segment buckets records with scheme. Bands keep the scheme order and
// appear even when empty; values outside every band are not counted.
func Segment(records []domain.CustomerRecord, column string, scheme domain.SegmentScheme, value func(domain.CustomerRecord) float64) domain.Distribution {
	counts := make(map[string]int, len(scheme.Labels))
	for _, r := range records {
		if label, ok := scheme.Assign(value(r)); ok {
			counts[label]++
		}
	}
	d := domain.Distribution{Column: column, Shares: make([]domain.CategoryShare, 0, len(scheme.Labels))}
	for _, label := range scheme.Labels {
		d.Shares = append(d.Shares, domain.CategoryShare{Label: label, Count: counts[label], Percent: percent(counts[label], len(records))})
	}
	return d
}

// MeanOf returns the mean of a GroupSpend slice entry by name.
func MeanOf(groups []domain.GroupSpend, name string) (decimal.Decimal, bool) {
	for _, g := range groups {
		if g.Group == name {
			return g.Mean, true
		}
	}
	return decimal.Zero, false
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
