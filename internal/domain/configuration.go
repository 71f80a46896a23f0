package domain

import (
	"fmt"
	"math"
	"time"
)

// Configuration is the complete run configuration loaded from YAML
type Configuration struct {
	Generation GenerationSettings `yaml:"generation" json:"generation"`
	Analysis   AnalysisSettings   `yaml:"analysis" json:"analysis"`
	Output     OutputSettings     `yaml:"output" json:"output"`
	Logging    LoggingSettings    `yaml:"logging" json:"logging"`
}

// GenerationSettings controls the synthetic dataset
type GenerationSettings struct {
	Records int   `yaml:"records" json:"records"`
	Seed    int64 `yaml:"seed" json:"seed"`
	Year    int   `yaml:"year" json:"year"`
}

// AnalysisSettings controls segmentation and churn thresholds
type AnalysisSettings struct {
	// ChurnCutoff marks customers whose last activity precedes it as churned.
	ChurnCutoff           time.Time     `yaml:"churn_cutoff" json:"churn_cutoff"`
	SpendSegments         SegmentScheme `yaml:"spend_segments" json:"spend_segments"`
	AgeSegments           SegmentScheme `yaml:"age_segments" json:"age_segments"`
	SatisfiedThreshold    float64       `yaml:"satisfied_threshold" json:"satisfied_threshold"`
	DissatisfiedThreshold float64       `yaml:"dissatisfied_threshold" json:"dissatisfied_threshold"`
	AtRiskTicketThreshold int           `yaml:"at_risk_ticket_threshold" json:"at_risk_ticket_threshold"`
}

// OutputSettings controls which artifacts a run writes and where
type OutputSettings struct {
	Directory string   `yaml:"directory" json:"directory"`
	Formats   []string `yaml:"formats" json:"formats"`
	Charts    bool     `yaml:"charts" json:"charts"`
	Documents []string `yaml:"documents" json:"documents"`
}

// LoggingSettings selects the logger flavour
type LoggingSettings struct {
	Mode  string `yaml:"mode" json:"mode"`
	Level string `yaml:"level" json:"level"`
}

// SegmentScheme buckets a continuous value into labelled right-inclusive
// bands: band i covers (Edges[i], Edges[i+1]].
type SegmentScheme struct {
	Edges  []float64 `yaml:"edges" json:"edges"`
	Labels []string  `yaml:"labels" json:"labels"`
}

// Validate checks that edges increase strictly and there is one label per band.
func (s SegmentScheme) Validate() error {
	if len(s.Edges) < 2 {
		return fmt.Errorf("segment scheme needs at least two edges")
	}
	if len(s.Labels) != len(s.Edges)-1 {
		return fmt.Errorf("segment scheme has %d edges but %d labels, want %d", len(s.Edges), len(s.Labels), len(s.Edges)-1)
	}
	for i := 1; i < len(s.Edges); i++ {
		if !(s.Edges[i] > s.Edges[i-1]) {
			return fmt.Errorf("segment edges must increase strictly (edge %d)", i)
		}
	}
	return nil
}

// Assign returns the label of the band containing v. Values at or below the
// first edge or above the last one fall outside every band.
func (s SegmentScheme) Assign(v float64) (string, bool) {
	for i := 0; i < len(s.Labels); i++ {
		if v > s.Edges[i] && v <= s.Edges[i+1] {
			return s.Labels[i], true
		}
	}
	return "", false
}

// DefaultSpendSegments are the spend bands used by the reports.
func DefaultSpendSegments() SegmentScheme {
	return SegmentScheme{
		Edges:  []float64{0, 200, 500, 1000, math.Inf(1)},
		Labels: []string{"Low", "Medium", "High", "VIP"},
	}
}

// DefaultAgeSegments are the age bands used by the reports.
func DefaultAgeSegments() SegmentScheme {
	return SegmentScheme{
		Edges:  []float64{0, 25, 35, 50, 65, 100},
		Labels: []string{"18-25", "26-35", "36-50", "51-65", "65+"},
	}
}

// Defaults used when the configuration leaves a value unset.
const (
	DefaultRecords               = 1000
	DefaultSeed                  = 42
	DefaultYear                  = 2023
	DefaultSatisfiedThreshold    = 8.0
	DefaultDissatisfiedThreshold = 4.0
	DefaultAtRiskTicketThreshold = 3
)

// DefaultChurnCutoff is the cutoff the original analysis scripts used.
func DefaultChurnCutoff() time.Time {
	return time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
}

// ApplyDefaults fills unset fields with the documented defaults.
func (c *Configuration) ApplyDefaults() {
	if c.Generation.Records == 0 {
		c.Generation.Records = DefaultRecords
	}
	if c.Generation.Year == 0 {
		c.Generation.Year = DefaultYear
	}
	if c.Analysis.ChurnCutoff.IsZero() {
		c.Analysis.ChurnCutoff = DefaultChurnCutoff()
	}
	if len(c.Analysis.SpendSegments.Edges) == 0 {
		c.Analysis.SpendSegments = DefaultSpendSegments()
	}
	if len(c.Analysis.AgeSegments.Edges) == 0 {
		c.Analysis.AgeSegments = DefaultAgeSegments()
	}
	if c.Analysis.SatisfiedThreshold == 0 {
		c.Analysis.SatisfiedThreshold = DefaultSatisfiedThreshold
	}
	if c.Analysis.DissatisfiedThreshold == 0 {
		c.Analysis.DissatisfiedThreshold = DefaultDissatisfiedThreshold
	}
	if c.Analysis.AtRiskTicketThreshold == 0 {
		c.Analysis.AtRiskTicketThreshold = DefaultAtRiskTicketThreshold
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "out"
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{"console", "csv"}
	}
	if c.Logging.Mode == "" {
		c.Logging.Mode = "development"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
