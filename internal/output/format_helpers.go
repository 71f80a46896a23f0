package output

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/swisscx/customer-insights/pkg/money"
)

// FormatCurrency formats a decimal as CHF with thousands separators and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.FormatCHF(amount) }

// FormatAmount formats a float amount as CHF.
func FormatAmount(amount float64) string { return money.NewMoney(amount).Format() }

// FormatPercentage formats a percentage value with 1 decimal.
func FormatPercentage(pct float64) string { return fmt.Sprintf("%.1f%%", pct) }

// FormatScore formats a satisfaction-style score out of 10.
func FormatScore(v float64) string { return fmt.Sprintf("%.1f/10", v) }

func intToString(v int) string { return strconv.Itoa(v) }

func boolToString(v bool) string { return strconv.FormatBool(v) }

func floatToString(v float64, places int) string { return strconv.FormatFloat(v, 'f', places, 64) }
