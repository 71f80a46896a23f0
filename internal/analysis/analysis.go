// Package analysis computes the descriptive statistics, segmentations and
// derived insights the reports are built from.
package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/swisscx/customer-insights/internal/domain"
)

// ErrEmptyDataset is returned when there is nothing to analyze.
var ErrEmptyDataset = errors.New("empty dataset")

// Options controls churn, segmentation and satisfaction thresholds. Zero
// fields fall back to the domain defaults.
type Options struct {
	ChurnCutoff           time.Time
	SpendSegments         domain.SegmentScheme
	AgeSegments           domain.SegmentScheme
	SatisfiedThreshold    float64
	DissatisfiedThreshold float64
	AtRiskTicketThreshold int
}

// DefaultOptions returns the thresholds used by the original reports.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

// OptionsFromSettings maps the analysis section of a configuration.
func OptionsFromSettings(s domain.AnalysisSettings) Options {
	return Options{
		ChurnCutoff:           s.ChurnCutoff,
		SpendSegments:         s.SpendSegments,
		AgeSegments:           s.AgeSegments,
		SatisfiedThreshold:    s.SatisfiedThreshold,
		DissatisfiedThreshold: s.DissatisfiedThreshold,
		AtRiskTicketThreshold: s.AtRiskTicketThreshold,
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.ChurnCutoff.IsZero() {
		o.ChurnCutoff = domain.DefaultChurnCutoff()
	}
	if len(o.SpendSegments.Edges) == 0 {
		o.SpendSegments = domain.DefaultSpendSegments()
	}
	if len(o.AgeSegments.Edges) == 0 {
		o.AgeSegments = domain.DefaultAgeSegments()
	}
	if o.SatisfiedThreshold == 0 {
		o.SatisfiedThreshold = domain.DefaultSatisfiedThreshold
	}
	if o.DissatisfiedThreshold == 0 {
		o.DissatisfiedThreshold = domain.DefaultDissatisfiedThreshold
	}
	if o.AtRiskTicketThreshold == 0 {
		o.AtRiskTicketThreshold = domain.DefaultAtRiskTicketThreshold
	}
	return o
}

// Analyze runs every computation over ds. The dataset is only read.
func Analyze(ds *domain.Dataset, opts Options) (*domain.Analysis, error) {
	if ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	opts = opts.withDefaults()
	if err := opts.SpendSegments.Validate(); err != nil {
		return nil, fmt.Errorf("spend segments: %w", err)
	}
	if err := opts.AgeSegments.Validate(); err != nil {
		return nil, fmt.Errorf("age segments: %w", err)
	}

	records := ds.Records
	an := &domain.Analysis{
		Summary:             Summarize(records, opts.ChurnCutoff),
		Describe:            Describe(records),
		Distributions:       Distributions(records),
		SpendByCity:         SpendBy(records, func(r domain.CustomerRecord) string { return string(r.City) }),
		SpendBySubscription: SpendBy(records, func(r domain.CustomerRecord) string { return string(r.SubscriptionType) }),
		SpendBySource:       SpendBy(records, func(r domain.CustomerRecord) string { return string(r.AcquisitionSource) }),
		SpendSegments:       Segment(records, "spend_segment", opts.SpendSegments, func(r domain.CustomerRecord) float64 { return r.TotalSpend }),
		AgeSegments:         Segment(records, "age_group", opts.AgeSegments, func(r domain.CustomerRecord) float64 { return float64(r.Age) }),
		Satisfaction:        SatisfactionSummary(records, opts.SatisfiedThreshold, opts.DissatisfiedThreshold),
		SpendSatisfaction:   SpendSatisfactionTrend(records),
	}
	an.Insights = DeriveInsights(records, an, opts)
	return an, nil
}
