package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrDataIntegrityViolation marks a failed validation check. Validation never
// returns it directly; it is surfaced through ValidationReport.Err.
var ErrDataIntegrityViolation = errors.New("data integrity violation")

// ViolationKind classifies validation failures
type ViolationKind string

const KindDataIntegrityViolation ViolationKind = "DataIntegrityViolation"

// ColumnCompleteness is the missing-value summary of one column
type ColumnCompleteness struct {
	Column         string  `json:"column"`
	MissingCount   int     `json:"missing_count"`
	MissingPercent float64 `json:"missing_percent"`
	IsComplete     bool    `json:"is_complete"`
}

// RangeCheck records the observed bounds of a column and whether they are acceptable
type RangeCheck struct {
	Name  string  `json:"name"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Valid bool    `json:"valid"`
}

// MarshalJSON renders bounds as null when no value was present.
func (c RangeCheck) MarshalJSON() ([]byte, error) {
	bound := func(v float64) *float64 {
		if math.IsNaN(v) {
			return nil
		}
		return &v
	}
	return json.Marshal(struct {
		Name  string   `json:"name"`
		Min   *float64 `json:"min"`
		Max   *float64 `json:"max"`
		Valid bool     `json:"valid"`
	}{c.Name, bound(c.Min), bound(c.Max), c.Valid})
}

// CountCheck records how many rows broke a rule
type CountCheck struct {
	Name       string `json:"name"`
	Violations int    `json:"violations"`
	Valid      bool   `json:"valid"`
}

// Violation describes one failed check
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Check   string        `json:"check"`
	Message string        `json:"message"`
}

// ValidationReport is the read-only quality assessment of a dataset
type ValidationReport struct {
	Rows         int                  `json:"rows"`
	Completeness []ColumnCompleteness `json:"completeness"`
	Consistency  []RangeCheck         `json:"consistency"`
	Accuracy     []RangeCheck         `json:"accuracy"`
	Timeliness   []CountCheck         `json:"timeliness"`
	Duplicates   int                  `json:"duplicates"`
	UniqueValues map[string]int       `json:"unique_values"`
	Violations   []Violation          `json:"violations"`
}

// Valid reports whether every check passed.
func (vr *ValidationReport) Valid() bool { return len(vr.Violations) == 0 }

// Err joins every violation into one error, or returns nil when the report is clean.
func (vr *ValidationReport) Err() error {
	if vr.Valid() {
		return nil
	}
	errs := make([]error, 0, len(vr.Violations))
	for _, v := range vr.Violations {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrDataIntegrityViolation, v.Check, v.Message))
	}
	return errors.Join(errs...)
}

// ColumnCompleteness returns the completeness entry of a column.
func (vr *ValidationReport) ColumnCompleteness(column string) (ColumnCompleteness, bool) {
	for _, c := range vr.Completeness {
		if c.Column == column {
			return c, true
		}
	}
	return ColumnCompleteness{}, false
}

// Check looks up a consistency or accuracy range check by name.
func (vr *ValidationReport) Check(name string) (RangeCheck, bool) {
	for _, c := range vr.Consistency {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range vr.Accuracy {
		if c.Name == name {
			return c, true
		}
	}
	return RangeCheck{}, false
}
