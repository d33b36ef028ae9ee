package money

import (
	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// RoundCents rounds an amount to cents, half away from zero (half-up for the
// non-negative amounts the engine produces).
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Annual converts a monthly amount to annual
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// Monthly converts an annual amount to monthly
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// NonNegative floors an amount at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum adds all amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Percent renders a rate such as 0.179 as a percentage amount (17.9).
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}

// FormatEuro formats an amount with a euro sign and two decimals.
// Only renderers use this; the engine emits plain decimals.
func FormatEuro(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-€" + d.Abs().StringFixed(2)
	}
	return "€" + d.StringFixed(2)
}
