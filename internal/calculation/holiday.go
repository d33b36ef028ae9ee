package calculation

import (
	"github.com/loonengine/payroll-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// HolidayAllowance is the accrued vakantiegeld entitlement for a period. It is
// a disclosure figure; payout timing is decided elsewhere.
type HolidayAllowance struct {
	Annual  decimal.Decimal
	Monthly decimal.Decimal
}

// ComputeHolidayAllowance returns the accrual at full precision:
// gross * 12 * rate * factor, and one twelfth of that per month.
func ComputeHolidayAllowance(grossMonthly, rate, proRataFactor decimal.Decimal) HolidayAllowance {
	annual := money.Annual(grossMonthly).Mul(rate).Mul(proRataFactor)
	return HolidayAllowance{
		Annual:  annual,
		Monthly: money.Monthly(annual),
	}
}
