package analysis

import (
	"github.com/swisscx/customer-insights/internal/domain"
)

// DeriveInsights turns the computed tables into the findings quoted by the
// reports. Upsell candidates are satisfied customers in the lowest spend
// band; high-value customers sit in the two highest bands.
func DeriveInsights(records []domain.CustomerRecord, an *domain.Analysis, opts Options) domain.Insights {
	var in domain.Insights
	if len(an.SpendByCity) > 0 {
		in.ChampionCity = an.SpendByCity[0]
	}
	if len(an.SpendBySource) > 0 {
		in.BestSource = an.SpendBySource[0]
	}
	if len(an.SpendBySubscription) > 0 {
		in.BestSubscription = an.SpendBySubscription[0]
	}

	labels := opts.SpendSegments.Labels
	lowest := labels[0]
	highValue := map[string]bool{labels[len(labels)-1]: true}
	if len(labels) > 1 {
		highValue[labels[len(labels)-2]] = true
	}

	for _, r := range records {
		band, _ := opts.SpendSegments.Assign(r.TotalSpend)
		sat := r.SatisfactionScore
		dissatisfied := sat != nil && *sat <= opts.DissatisfiedThreshold

		if sat != nil && *sat >= opts.SatisfiedThreshold && band == lowest {
			in.UpsellCandidates++
		}
		if IsChurned(r, opts.ChurnCutoff) && (sat == nil || dissatisfied) && r.SupportTickets >= opts.AtRiskTicketThreshold {
			in.AtRiskCustomers++
		}
		if highValue[band] && dissatisfied {
			in.HighValueDissatisfied++
		}
	}
	return in
}
