package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/swisscx/customer-insights/internal/domain"
)

// DefaultAssumptions lists the modelling assumptions rendered when a report
// carries none of its own.
var DefaultAssumptions = []string{
	"Customers are synthetic: generated from fixed distributions, not collected",
	"Churned: last activity before 2023-12-01",
	"Satisfied: score >= 8; dissatisfied: score <= 4 (of customers who answered)",
	"Spend bands: Low <= 200, Medium <= 500, High <= 1000, VIP above (CHF)",
}

// GenerateAssumptions creates the assumptions list from the dataset and the analysis settings.
func GenerateAssumptions(ds *domain.Dataset, s domain.AnalysisSettings) []string {
	out := make([]string, 0, 5)
	if ds != nil {
		out = append(out, fmt.Sprintf("Customers are synthetic: %d generated for %d with seed %d", ds.Size, ds.Year, ds.Seed))
	}
	if s.ChurnCutoff.IsZero() {
		s.ChurnCutoff = domain.DefaultChurnCutoff()
	}
	if s.SatisfiedThreshold == 0 {
		s.SatisfiedThreshold = domain.DefaultSatisfiedThreshold
	}
	if s.DissatisfiedThreshold == 0 {
		s.DissatisfiedThreshold = domain.DefaultDissatisfiedThreshold
	}
	if len(s.SpendSegments.Edges) == 0 {
		s.SpendSegments = domain.DefaultSpendSegments()
	}
	out = append(out,
		fmt.Sprintf("Churned: last activity before %s", s.ChurnCutoff.Format(domain.DateLayout)),
		fmt.Sprintf("Satisfied: score >= %g; dissatisfied: score <= %g (of customers who answered)", s.SatisfiedThreshold, s.DissatisfiedThreshold),
		"Spend bands: "+describeBands(s.SpendSegments)+" (CHF)",
	)
	return out
}

func describeBands(s domain.SegmentScheme) string {
	parts := make([]string, 0, len(s.Labels))
	for i, l := range s.Labels {
		if i+1 >= len(s.Edges) {
			break
		}
		if math.IsInf(s.Edges[i+1], 1) {
			parts = append(parts, fmt.Sprintf("%s above", l))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s <= %g", l, s.Edges[i+1]))
	}
	return strings.Join(parts, ", ")
}
