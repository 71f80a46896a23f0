package output

import (
	"bytes"
	"fmt"

	"github.com/swisscx/customer-insights/internal/dataset"
	"github.com/swisscx/customer-insights/internal/domain"
)

// DatasetCSVExporter writes the full customer table, one row per customer.
type DatasetCSVExporter struct{}

func (c DatasetCSVExporter) Name() string      { return "dataset-csv" }
func (c DatasetCSVExporter) Extension() string { return "csv" }

func (c DatasetCSVExporter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Dataset == nil {
		return nil, fmt.Errorf("report has no dataset")
	}
	var buf bytes.Buffer
	if err := dataset.Write(&buf, report.Dataset); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
