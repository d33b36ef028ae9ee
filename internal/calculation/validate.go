package calculation

import (
	"fmt"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/internal/identifier"
	"github.com/loonengine/payroll-engine/pkg/dateutil"
)

// ValidateInput checks every field of a calculation request and returns all
// failures at once as domain.ValidationErrors, or nil.
func ValidateInput(emp domain.EmployeeInput, company domain.CompanyInput, period domain.Period) error {
	var errs domain.ValidationErrors
	add := func(field, constraint, value string) {
		errs = append(errs, &domain.ValidationError{Field: field, Constraint: constraint, Value: value})
	}

	// Employee
	if !emp.GrossMonthlySalary.IsPositive() {
		add("employee.grossMonthlySalary", "must be positive", emp.GrossMonthlySalary.String())
	}
	if !emp.TaxTable.Valid() {
		add("employee.taxTable", "must be 'wit' or 'groen'", string(emp.TaxTable))
	}
	if emp.TaxCredit.IsNegative() {
		add("employee.taxCredit", "cannot be negative", emp.TaxCredit.String())
	}
	if emp.HoursPerWeek.IsNegative() {
		add("employee.hoursPerWeek", "cannot be negative", emp.HoursPerWeek.String())
	}
	if emp.BSN != "" {
		if res := identifier.ValidateBSN(emp.BSN); !res.Valid {
			add("employee.bsn", res.Err().Error(), emp.BSN)
		}
	}

	// Period
	monthValid := period.Month >= 1 && period.Month <= 12
	if !monthValid {
		add("period.month", "must be between 1 and 12", fmt.Sprint(period.Month))
	}
	if period.Year < 1 {
		add("period.year", "must be positive", fmt.Sprint(period.Year))
	}
	if period.EmploymentStart != nil && period.EmploymentEnd != nil &&
		dateutil.DateOnly(*period.EmploymentEnd).Before(dateutil.DateOnly(*period.EmploymentStart)) {
		add("period.employmentEnd", "must not be before employmentStart", period.EmploymentEnd.Format("2006-01-02"))
	}
	if monthValid && period.Year >= 1 && !emp.DateOfBirth.IsZero() {
		if dateutil.DateOnly(emp.DateOfBirth).After(dateutil.EndOfMonth(period.Year, time.Month(period.Month))) {
			add("employee.dateOfBirth", "must not be after the period", emp.DateOfBirth.Format("2006-01-02"))
		}
	}

	// Company, checked only when supplied
	if company.Size != "" && !company.Size.Valid() {
		add("company.size", "must be small, medium or large", string(company.Size))
	}
	if company.AWFRate != "" && !company.AWFRate.Valid() {
		add("company.awfRate", "must be low, medium or high", string(company.AWFRate))
	}
	if company.AOFRate != "" && !company.AOFRate.Valid() {
		add("company.aofRate", "must be low, medium or high", string(company.AOFRate))
	}
	if company.KvKNumber != "" && !identifier.ValidateKvKNumber(company.KvKNumber) {
		add("company.kvkNumber", "must be 8 digits", company.KvKNumber)
	}
	if company.Loonheffingennummer != "" {
		if res := identifier.ValidateLoonheffingennummer(company.Loonheffingennummer); !res.Valid {
			add("company.loonheffingennummer", res.Err().Error(), company.Loonheffingennummer)
		}
	}
	if company.RSIN != "" {
		if res := identifier.ValidateRSIN(company.RSIN); !res.Valid {
			add("company.rsin", res.Err().Error(), company.RSIN)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
