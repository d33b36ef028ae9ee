package calculation

import (
	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// ComputeContribution returns the annual contribution for a flat-rate premium.
// The income is capped at the ceiling before the rate is applied.
func ComputeContribution(annualGross decimal.Decimal, rate domain.ContributionRate) decimal.Decimal {
	if !annualGross.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(annualGross, rate.MaxAnnualIncome).Mul(rate.Rate)
}

// ContributionBreakdown holds monthly contributions rounded to cents.
type ContributionBreakdown struct {
	AOW   decimal.Decimal
	WW    decimal.Decimal
	WIA   decimal.Decimal
	ZVW   decimal.Decimal
	Total decimal.Decimal
}

// ContributionCalculator applies the social security premiums of one tax year.
type ContributionCalculator struct {
	Rates *domain.RateTable
}

// NewContributionCalculator creates a calculator for a rate table
func NewContributionCalculator(rates *domain.RateTable) *ContributionCalculator {
	return &ContributionCalculator{Rates: rates}
}

// Calculate annualizes the monthly gross, applies each premium and converts
// back to monthly amounts. AOW is skipped when the employee is no longer
// insured (state pension age reached).
func (cc *ContributionCalculator) Calculate(monthlyGross decimal.Decimal, aowInsured bool) ContributionBreakdown {
	annual := money.Annual(monthlyGross)
	monthly := func(rate domain.ContributionRate) decimal.Decimal {
		return money.RoundCents(money.Monthly(ComputeContribution(annual, rate)))
	}

	b := ContributionBreakdown{
		AOW: decimal.Zero,
		WW:  monthly(cc.Rates.WW),
		WIA: monthly(cc.Rates.WIA),
		ZVW: monthly(cc.Rates.ZVW),
	}
	if aowInsured {
		b.AOW = monthly(cc.Rates.AOW)
	}
	b.Total = money.Sum(b.AOW, b.WW, b.WIA, b.ZVW)
	return b
}
