// Package money represents Swiss franc amounts on top of shopspring/decimal.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the ISO code printed in front of formatted amounts.
const Currency = "CHF"

var printer = message.NewPrinter(language.English)

// Money represents a CHF amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Sum adds up float amounts exactly.
func Sum(values []float64) Money {
	total := Zero()
	for _, v := range values {
		total = total.Add(NewMoney(v))
	}
	return total
}

// Mean returns the average of the amounts, or zero for an empty slice.
func Mean(values []float64) Money {
	if len(values) == 0 {
		return Zero()
	}
	return Sum(values).Div(decimal.NewFromInt(int64(len(values))))
}

// Round rounds the amount to centimes using half-up rounding
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Div divides by a decimal factor
func (m Money) Div(factor decimal.Decimal) Money {
	return Money{m.Decimal.Div(factor)}
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as "CHF 1,234.50"
func (m Money) Format() string {
	return Currency + " " + Grouped(m.Decimal, 2)
}

// Grouped renders d with thousands separators and the given number of decimals.
func Grouped(d decimal.Decimal, places int32) string {
	f, _ := d.Round(places).Float64()
	return printer.Sprintf(fmt.Sprintf("%%.%df", places), f)
}

// FormatCHF formats a decimal amount as CHF currency.
func FormatCHF(d decimal.Decimal) string {
	return NewMoneyFromDecimal(d).Format()
}
