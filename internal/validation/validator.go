// Package validation assesses the quality of a customer dataset without
// modifying it. Failed checks are reported, never returned as errors.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/pkg/dateutil"
)

// Acceptance thresholds of the quality checks.
const (
	CompletenessThreshold = 5.0 // percent missing at or above which a column is incomplete
	MinAge                = 18
	MaxAge                = 80
	MinSatisfaction       = 1.0
	MaxSatisfaction       = 10.0
)

// Check names used in the report.
const (
	CheckAgeRange          = "age_range"
	CheckSpendingPositive  = "spending_positive"
	CheckSatisfactionRange = "satisfaction_range"
	CheckActivityOrder     = "activity_order"
	CheckWithinYear        = "within_year"
)

// Validate builds the quality report of ds. A nil or empty dataset yields a
// report with zero rows whose range checks fail.
func Validate(ds *domain.Dataset) domain.ValidationReport {
	var records []domain.CustomerRecord
	year := 0
	if ds != nil {
		records = ds.Records
		year = ds.Year
	}

	report := domain.ValidationReport{
		Rows:         len(records),
		Completeness: completeness(records),
		UniqueValues: uniqueValues(records),
		Duplicates:   duplicates(records),
	}

	age := ageRange(records)
	spend := spendingPositive(records)
	report.Consistency = []domain.RangeCheck{age, spend}
	report.Accuracy = []domain.RangeCheck{satisfactionRange(records)}
	report.Timeliness = []domain.CountCheck{activityOrder(records), withinYear(records, year)}

	for _, c := range report.Consistency {
		if !c.Valid {
			report.Violations = append(report.Violations, violation(c.Name, rangeMessage(c)))
		}
	}
	for _, c := range report.Accuracy {
		if !c.Valid {
			report.Violations = append(report.Violations, violation(c.Name, rangeMessage(c)))
		}
	}
	for _, c := range report.Timeliness {
		if !c.Valid {
			report.Violations = append(report.Violations, violation(c.Name, fmt.Sprintf("%d rows out of order or range", c.Violations)))
		}
	}
	return report
}

func violation(check, msg string) domain.Violation {
	return domain.Violation{Kind: domain.KindDataIntegrityViolation, Check: check, Message: msg}
}

func rangeMessage(c domain.RangeCheck) string {
	if math.IsNaN(c.Min) {
		return "no values present"
	}
	return fmt.Sprintf("observed range [%g, %g]", c.Min, c.Max)
}

func completeness(records []domain.CustomerRecord) []domain.ColumnCompleteness {
	out := make([]domain.ColumnCompleteness, 0, len(domain.Columns))
	for _, col := range domain.Columns {
		missing := 0
		for _, r := range records {
			if r.IsMissing(col) {
				missing++
			}
		}
		pct := 0.0
		if len(records) > 0 {
			pct = float64(missing) / float64(len(records)) * 100
		}
		out = append(out, domain.ColumnCompleteness{
			Column:         col,
			MissingCount:   missing,
			MissingPercent: pct,
			IsComplete:     pct < CompletenessThreshold,
		})
	}
	return out
}

// bounds returns min and max of the values yielded by get, skipping absent
// ones. Both are NaN when nothing is present.
func bounds(records []domain.CustomerRecord, get func(domain.CustomerRecord) (float64, bool)) (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	for _, r := range records {
		v, ok := get(r)
		if !ok {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}

func ageRange(records []domain.CustomerRecord) domain.RangeCheck {
	lo, hi := bounds(records, func(r domain.CustomerRecord) (float64, bool) { return float64(r.Age), true })
	return domain.RangeCheck{
		Name:  CheckAgeRange,
		Min:   lo,
		Max:   hi,
		Valid: lo >= MinAge && hi <= MaxAge,
	}
}

func spendingPositive(records []domain.CustomerRecord) domain.RangeCheck {
	lo, hi := bounds(records, func(r domain.CustomerRecord) (float64, bool) { return r.TotalSpend, true })
	return domain.RangeCheck{
		Name:  CheckSpendingPositive,
		Min:   lo,
		Max:   hi,
		Valid: lo >= 0,
	}
}

func satisfactionRange(records []domain.CustomerRecord) domain.RangeCheck {
	lo, hi := bounds(records, func(r domain.CustomerRecord) (float64, bool) {
		if r.SatisfactionScore == nil {
			return 0, false
		}
		return *r.SatisfactionScore, true
	})
	return domain.RangeCheck{
		Name:  CheckSatisfactionRange,
		Min:   lo,
		Max:   hi,
		Valid: lo >= MinSatisfaction && hi <= MaxSatisfaction,
	}
}

func activityOrder(records []domain.CustomerRecord) domain.CountCheck {
	bad := 0
	for _, r := range records {
		if r.LastActivityDate.Before(r.SignupDate) {
			bad++
		}
	}
	return domain.CountCheck{Name: CheckActivityOrder, Violations: bad, Valid: bad == 0}
}

// withinYear counts rows with a date outside year. Year zero skips the check.
func withinYear(records []domain.CustomerRecord, year int) domain.CountCheck {
	bad := 0
	if year != 0 {
		for _, r := range records {
			if !dateutil.InYear(r.SignupDate, year) || !dateutil.InYear(r.LastActivityDate, year) {
				bad++
			}
		}
	}
	return domain.CountCheck{Name: CheckWithinYear, Violations: bad, Valid: bad == 0}
}

// rowKey renders every column but the identifier, so two customers with
// identical attributes collide.
func rowKey(r domain.CustomerRecord) string {
	var b strings.Builder
	for _, col := range domain.Columns[1:] {
		b.WriteString(r.Value(col))
		b.WriteByte('\x1f')
	}
	return b.String()
}

func duplicates(records []domain.CustomerRecord) int {
	seen := make(map[string]struct{}, len(records))
	dups := 0
	for _, r := range records {
		k := rowKey(r)
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}

func uniqueValues(records []domain.CustomerRecord) map[string]int {
	out := make(map[string]int, len(domain.Columns))
	for _, col := range domain.Columns {
		distinct := make(map[string]struct{})
		for _, r := range records {
			if r.IsMissing(col) {
				continue
			}
			distinct[r.Value(col)] = struct{}{}
		}
		out[col] = len(distinct)
	}
	return out
}
