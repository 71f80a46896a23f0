package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/swisscx/customer-insights/internal/analysis"
	"github.com/swisscx/customer-insights/internal/dataset"
	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/internal/generator"
)

const previewRows = 5

// Prints the head of a dataset and its describe() table. With a CSV path
// argument the file is read, otherwise the default dataset is generated.
func main() {
	var (
		ds  *domain.Dataset
		err error
	)
	if len(os.Args) > 1 {
		ds, err = dataset.ReadFile(os.Args[1])
	} else {
		ds, err = generator.Generate(domain.DefaultRecords, domain.DefaultSeed)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== FIRST %d OF %d CUSTOMERS ===\n", previewRows, ds.Len())
	fmt.Println(strings.Join(domain.Columns, " | "))
	for i, r := range ds.Records {
		if i == previewRows {
			break
		}
		row := make([]string, len(domain.Columns))
		for j, col := range domain.Columns {
			row[j] = r.Value(col)
		}
		fmt.Println(strings.Join(row, " | "))
	}

	fmt.Printf("\n=== DESCRIBE ===\n")
	fmt.Printf("%-22s %6s %10s %10s %9s %9s %9s %9s %10s\n", "column", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for _, s := range analysis.Describe(ds.Records) {
		fmt.Printf("%-22s %6d %10.2f %10.2f %9.2f %9.2f %9.2f %9.2f %10.2f\n",
			s.Column, s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max)
	}
}
