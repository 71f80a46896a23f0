// Package dataset reads and writes the full customer table as CSV.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/swisscx/customer-insights/internal/domain"
)

// ErrMalformedRow marks a row or header that does not match the customer table.
var ErrMalformedRow = errors.New("malformed row")

// Write emits the header and one row per record in identifier order.
func Write(w io.Writer, ds *domain.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(domain.Columns))
	for _, r := range ds.Records {
		for i, col := range domain.Columns {
			row[i] = r.Value(col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", r.CustomerID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes ds to path, creating or truncating it.
func WriteFile(path string, ds *domain.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	if err := Write(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read parses a table produced by Write. A UTF-8 or UTF-16 byte order mark
// is honoured and stripped. Errors name the 1-based line they occurred on.
func Read(r io.Reader) (*domain.Dataset, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = len(domain.Columns)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file, no header row found", ErrMalformedRow)
		}
		return nil, fmt.Errorf("%w: line 1: %v", ErrMalformedRow, err)
	}
	for i, h := range header {
		if strings.TrimSpace(h) != domain.Columns[i] {
			return nil, fmt.Errorf("%w: line 1: column %d is %q, want %q", ErrMalformedRow, i+1, h, domain.Columns[i])
		}
	}

	ds := &domain.Dataset{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		ds.Records = append(ds.Records, rec)
	}
	ds.Size = len(ds.Records)
	if ds.Size > 0 {
		ds.Year = ds.Records[0].SignupDate.Year()
	}
	return ds, nil
}

// ReadFile reads a dataset CSV from path.
func ReadFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// rowParser accumulates the first field error so parseRow stays linear.
type rowParser struct {
	row []string
	err error
}

func (p *rowParser) field(i int) string { return strings.TrimSpace(p.row[i]) }

func (p *rowParser) fail(col string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
}

func (p *rowParser) integer(i int) int {
	v, err := strconv.Atoi(p.field(i))
	if err != nil {
		p.fail(domain.Columns[i], err)
	}
	return v
}

func (p *rowParser) number(i int) float64 {
	v, err := strconv.ParseFloat(p.field(i), 64)
	if err != nil {
		p.fail(domain.Columns[i], err)
	}
	return v
}

func (p *rowParser) date(i int) time.Time {
	v, err := time.Parse(domain.DateLayout, p.field(i))
	if err != nil {
		p.fail(domain.Columns[i], err)
	}
	return v
}

func (p *rowParser) optionalFloat(i int) *float64 {
	if p.field(i) == "" {
		return nil
	}
	v := p.number(i)
	return &v
}

func oneOf[T ~string](p *rowParser, i int, allowed []T) T {
	v := T(p.field(i))
	if !slices.Contains(allowed, v) {
		p.fail(domain.Columns[i], fmt.Errorf("unknown value %q", v))
	}
	return v
}

func parseRow(row []string) (domain.CustomerRecord, error) {
	p := &rowParser{row: row}
	rec := domain.CustomerRecord{
		CustomerID:          p.field(0),
		Age:                 p.integer(1),
		Gender:              oneOf(p, 2, domain.Genders),
		City:                oneOf(p, 3, domain.Cities),
		SignupDate:          p.date(4),
		TotalPurchases:      p.integer(5),
		TotalSpend:          p.number(6),
		AvgSessionDuration:  p.number(7),
		PageviewsPerSession: p.integer(8),
		BounceRate:          p.number(9),
		LastActivityDate:    p.date(10),
		SubscriptionType:    oneOf(p, 11, domain.SubscriptionTypes),
		DeviceType:          oneOf(p, 12, domain.DeviceTypes),
		SatisfactionScore:   p.optionalFloat(13),
		SupportTickets:      p.integer(14),
		AcquisitionSource:   oneOf(p, 15, domain.AcquisitionSources),
	}
	if rec.CustomerID == "" {
		p.fail(domain.ColCustomerID, errors.New("empty identifier"))
	}
	return rec, p.err
}
