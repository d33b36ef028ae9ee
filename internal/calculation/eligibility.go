package calculation

import (
	"fmt"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/pkg/dateutil"
	"github.com/loonengine/payroll-engine/pkg/money"
	"github.com/shopspring/decimal"
)

var weeksPerYear = decimal.NewFromInt(52)

// AOWInsured reports whether the AOW premium applies on a given date. Without
// a configured AOW age or a known birth date the employee is always insured.
func AOWInsured(emp domain.EmployeeInput, rates *domain.RateTable, on time.Time) bool {
	if rates.AOWAge <= 0 || emp.DateOfBirth.IsZero() {
		return true
	}
	return dateutil.Age(emp.DateOfBirth, on) < rates.AOWAge
}

// MonthlyMinimumWage converts the hourly minimum wage to a monthly floor,
// scaled by the youth factor for the age.
func MonthlyMinimumWage(mw domain.MinimumWage, hoursPerWeek decimal.Decimal, age int) decimal.Decimal {
	return money.Monthly(mw.Hourly.Mul(hoursPerWeek).Mul(weeksPerYear)).Mul(mw.FactorForAge(age))
}

// minimumWageWarning returns a warning when the contractual salary is below
// the statutory floor. Nothing is enforced.
func minimumWageWarning(emp domain.EmployeeInput, rates *domain.RateTable, on time.Time) *domain.Warning {
	mw := rates.MinimumWage
	if !mw.Hourly.IsPositive() {
		return nil
	}
	hours := emp.HoursPerWeek
	if !hours.IsPositive() {
		hours = mw.StandardHoursPerWeek
	}
	// Unknown birth date is treated as adult.
	age := 99
	if !emp.DateOfBirth.IsZero() {
		age = dateutil.Age(emp.DateOfBirth, on)
	}

	floor := money.RoundCents(MonthlyMinimumWage(mw, hours, age))
	if !emp.GrossMonthlySalary.LessThan(floor) {
		return nil
	}
	return &domain.Warning{
		Code: domain.WarningBelowMinimumWage,
		Message: fmt.Sprintf("monthly salary %s is below the minimum wage %s for %s hours per week",
			emp.GrossMonthlySalary.StringFixed(2), floor.StringFixed(2), hours.String()),
	}
}
