package calculation

import (
	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// ComputeBracketTax returns the progressive tax on an annual income. Each
// bracket taxes the income between the previous ceiling and its own; the
// open-ended final bracket taxes the remainder.
func ComputeBracketTax(annualIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !annualIncome.IsPositive() {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	lower := decimal.Zero
	for _, bracket := range brackets {
		if annualIncome.LessThanOrEqual(lower) {
			break
		}
		upper := annualIncome
		if bracket.UpTo != nil {
			upper = decimal.Min(annualIncome, *bracket.UpTo)
		}
		incomeInBracket := upper.Sub(lower)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
		if bracket.UpTo == nil {
			break
		}
		lower = *bracket.UpTo
	}
	return totalTax
}

// IncomeTaxCalculator computes loonheffing for a selected tax profile. It
// never rounds; the caller rounds the final monthly figure once.
type IncomeTaxCalculator struct {
	Profile TaxProfile
}

// NewIncomeTaxCalculator creates a calculator for a tax profile
func NewIncomeTaxCalculator(profile TaxProfile) *IncomeTaxCalculator {
	return &IncomeTaxCalculator{Profile: profile}
}

// AnnualTax is the bracket tax minus the annual credit, floored at zero.
func (c *IncomeTaxCalculator) AnnualTax(annualIncome decimal.Decimal) decimal.Decimal {
	return money.NonNegative(ComputeBracketTax(annualIncome, c.Profile.Brackets).Sub(c.Profile.Credit))
}

// MonthlyTax annualizes a monthly salary and returns one twelfth of the
// annual tax at full precision.
func (c *IncomeTaxCalculator) MonthlyTax(monthlyGross decimal.Decimal) decimal.Decimal {
	return money.Monthly(c.AnnualTax(money.Annual(monthlyGross)))
}
