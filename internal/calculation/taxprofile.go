package calculation

import (
	"fmt"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// TaxVariant is the closed set of tax treatments an employee can fall under.
type TaxVariant string

const (
	VariantStandard      TaxVariant = "standard"
	VariantDGA           TaxVariant = "dga"
	VariantYoungDisabled TaxVariant = "young-disabled"
	VariantSecondaryJob  TaxVariant = "secondary-job"
)

// TaxProfile is the outcome of tax table selection: which brackets apply and
// how much annual credit is deducted.
type TaxProfile struct {
	Variant  TaxVariant
	Table    domain.TaxTable
	Brackets []domain.TaxBracket
	Credit   decimal.Decimal // annual
	Warnings []domain.Warning
}

// Name identifies the profile on results, e.g. "wit/standard".
func (p TaxProfile) Name() string {
	return string(p.Table) + "/" + string(p.Variant)
}

// SelectTaxProfile chooses brackets and credit eligibility for an employee.
// Precedence: secondary job, then DGA, then young-disabled.
//
//   - secondary job: the credit is claimed at the main employer, so it is not
//     applied here.
//   - young-disabled: the table's young-disabled credit is added.
//   - DGA: brackets and credit are unchanged; a warning is raised when the
//     salary is below the customary DGA salary.
func SelectTaxProfile(emp domain.EmployeeInput, rates *domain.RateTable) (TaxProfile, error) {
	brackets, ok := rates.Brackets(emp.TaxTable)
	if !ok {
		return TaxProfile{}, &domain.ConfigurationError{
			Year:   rates.Year,
			Reason: fmt.Sprintf("no brackets for tax table %q", emp.TaxTable),
		}
	}

	profile := TaxProfile{
		Variant:  VariantStandard,
		Table:    emp.TaxTable,
		Brackets: brackets,
		Credit:   emp.TaxCredit,
	}

	if emp.IsYoungDisabled && !emp.HasMultipleJobs {
		profile.Credit = profile.Credit.Add(rates.YoungDisabledCredit)
		profile.Variant = VariantYoungDisabled
	}

	if emp.IsDGA {
		profile.Variant = VariantDGA
		annual := money.Annual(emp.GrossMonthlySalary)
		if rates.DGACustomarySalary.IsPositive() && annual.LessThan(rates.DGACustomarySalary) {
			profile.Warnings = append(profile.Warnings, domain.Warning{
				Code: domain.WarningDGABelowCustomary,
				Message: fmt.Sprintf("annual salary %s is below the customary DGA salary %s",
					annual.StringFixed(2), rates.DGACustomarySalary.StringFixed(2)),
			})
		}
	}

	if emp.HasMultipleJobs {
		profile.Variant = VariantSecondaryJob
		profile.Credit = decimal.Zero
		if emp.TaxCredit.IsPositive() {
			profile.Warnings = append(profile.Warnings, domain.Warning{
				Code:    domain.WarningCreditIgnoredMultiJob,
				Message: fmt.Sprintf("tax credit %s not applied for a secondary job", emp.TaxCredit.StringFixed(2)),
			})
		}
	}

	return profile, nil
}
