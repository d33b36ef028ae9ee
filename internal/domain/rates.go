package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// TaxTable selects the bracket set used for loonheffing.
type TaxTable string

const (
	TaxTableWhite TaxTable = "wit"   // standard table, current employment
	TaxTableGreen TaxTable = "groen" // income not from current employment
)

// Valid reports whether the tax table is one of the known tables.
func (t TaxTable) Valid() bool {
	return t == TaxTableWhite || t == TaxTableGreen
}

// ContributionRate is a flat rate applied up to an annual income ceiling.
type ContributionRate struct {
	Rate            decimal.Decimal `yaml:"rate" json:"rate"`
	MaxAnnualIncome decimal.Decimal `yaml:"max_annual_income" json:"maxAnnualIncome"`
}

// TaxBracket is one progressive bracket. UpTo is the annual income ceiling of
// the bracket; nil marks the open-ended top bracket.
type TaxBracket struct {
	UpTo *decimal.Decimal `json:"upTo,omitempty"`
	Rate decimal.Decimal  `json:"rate"`
}

// MinimumWage is the statutory floor, used for warnings only.
type MinimumWage struct {
	Hourly               decimal.Decimal         `json:"hourly"`
	StandardHoursPerWeek decimal.Decimal         `json:"standardHoursPerWeek"`
	YouthFactors         map[int]decimal.Decimal `json:"youthFactors,omitempty"` // age -> share of the adult wage
}

// FactorForAge returns the youth factor for an age; adults (or ages without an
// entry above the highest youth age) get 1.
func (mw MinimumWage) FactorForAge(age int) decimal.Decimal {
	if f, ok := mw.YouthFactors[age]; ok {
		return f
	}
	if len(mw.YouthFactors) == 0 {
		return decimal.NewFromInt(1)
	}
	ages := make([]int, 0, len(mw.YouthFactors))
	for a := range mw.YouthFactors {
		ages = append(ages, a)
	}
	sort.Ints(ages)
	if age < ages[0] {
		return mw.YouthFactors[ages[0]]
	}
	return decimal.NewFromInt(1)
}

// RateTable holds the statutory parameters of one tax year. Tables are built
// once and shared read-only between calculations.
type RateTable struct {
	Year   int    `json:"year"`
	Source string `json:"source,omitempty"`

	AOW ContributionRate `json:"aow"`
	WW  ContributionRate `json:"ww"`
	WIA ContributionRate `json:"wia"`
	ZVW ContributionRate `json:"zvw"`

	TaxTables map[TaxTable][]TaxBracket `json:"taxTables"`

	HolidayAllowanceRate decimal.Decimal `json:"holidayAllowanceRate"`
	MinimumWage          MinimumWage     `json:"minimumWage"`

	// Eligibility parameters used by the tax profile selection step.
	YoungDisabledCredit decimal.Decimal `json:"youngDisabledCredit"`
	DGACustomarySalary  decimal.Decimal `json:"dgaCustomarySalary"`
	AOWAge              int             `json:"aowAge,omitempty"`
}

// Brackets returns the bracket set for a tax table.
func (rt *RateTable) Brackets(table TaxTable) ([]TaxBracket, bool) {
	b, ok := rt.TaxTables[table]
	return b, ok && len(b) > 0
}

// Validate checks the structural invariants of the table.
func (rt *RateTable) Validate() error {
	if rt.Year <= 0 {
		return fmt.Errorf("year must be positive, got %d", rt.Year)
	}
	contributions := []struct {
		name string
		rate ContributionRate
	}{
		{"aow", rt.AOW}, {"ww", rt.WW}, {"wia", rt.WIA}, {"zvw", rt.ZVW},
	}
	for _, c := range contributions {
		if err := validateRate(c.name+".rate", c.rate.Rate); err != nil {
			return err
		}
		if !c.rate.MaxAnnualIncome.IsPositive() {
			return fmt.Errorf("%s.max_annual_income must be positive", c.name)
		}
	}
	if len(rt.TaxTables) == 0 {
		return fmt.Errorf("at least one tax table is required")
	}
	for table, brackets := range rt.TaxTables {
		if !table.Valid() {
			return fmt.Errorf("unknown tax table %q", table)
		}
		if err := validateBrackets(brackets); err != nil {
			return fmt.Errorf("tax table %s: %w", table, err)
		}
	}
	if err := validateRate("holiday_allowance_rate", rt.HolidayAllowanceRate); err != nil {
		return err
	}
	if rt.MinimumWage.Hourly.IsNegative() {
		return fmt.Errorf("minimum_wage.hourly cannot be negative")
	}
	for age, f := range rt.MinimumWage.YouthFactors {
		if err := validateRate(fmt.Sprintf("minimum_wage.youth_factors[%d]", age), f); err != nil {
			return err
		}
	}
	if rt.YoungDisabledCredit.IsNegative() {
		return fmt.Errorf("young_disabled_credit cannot be negative")
	}
	if rt.DGACustomarySalary.IsNegative() {
		return fmt.Errorf("dga_customary_salary cannot be negative")
	}
	if rt.AOWAge < 0 {
		return fmt.Errorf("aow_age cannot be negative")
	}
	return nil
}

func validateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("no brackets")
	}
	previous := decimal.Zero
	for i, b := range brackets {
		if err := validateRate(fmt.Sprintf("bracket %d rate", i+1), b.Rate); err != nil {
			return err
		}
		last := i == len(brackets)-1
		if b.UpTo == nil {
			if !last {
				return fmt.Errorf("bracket %d is open-ended but is not the final bracket", i+1)
			}
			continue
		}
		if last {
			return fmt.Errorf("final bracket must be open-ended")
		}
		if !b.UpTo.GreaterThan(previous) {
			return fmt.Errorf("bracket %d boundary %s must be greater than %s", i+1, b.UpTo.String(), previous.String())
		}
		previous = *b.UpTo
	}
	return nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", name, rate.String())
	}
	return nil
}
