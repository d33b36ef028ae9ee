package calculation

import (
	"fmt"

	"github.com/loonengine/payroll-engine/internal/domain"
)

// Accumulate adds one period's result to the prior year-to-date totals. An
// empty prior (no periods) starts a new year at the result's month. Results
// must belong to the same employee and year and arrive in month order.
func Accumulate(prior domain.CumulativeTotals, current domain.PayrollResult) (domain.CumulativeTotals, error) {
	next := prior
	if prior.Periods == 0 {
		next = domain.CumulativeTotals{
			EmployeeID: current.EmployeeID,
			Year:       current.Year,
			FromMonth:  current.Month,
		}
	} else {
		if current.Year != prior.Year {
			return prior, &domain.ValidationError{
				Field: "result.year", Constraint: fmt.Sprintf("must be %d", prior.Year), Value: fmt.Sprint(current.Year),
			}
		}
		if current.Month <= prior.ThroughMonth {
			return prior, &domain.ValidationError{
				Field: "result.month", Constraint: fmt.Sprintf("must be after month %d", prior.ThroughMonth), Value: fmt.Sprint(current.Month),
			}
		}
		if prior.EmployeeID != "" && current.EmployeeID != "" && prior.EmployeeID != current.EmployeeID {
			return prior, &domain.ValidationError{
				Field: "result.employeeId", Constraint: fmt.Sprintf("must be %s", prior.EmployeeID), Value: current.EmployeeID,
			}
		}
	}

	next.ThroughMonth = current.Month
	next.Periods++
	next.GrossSalary = next.GrossSalary.Add(current.GrossMonthlySalary)
	next.NetSalary = next.NetSalary.Add(current.NetMonthlySalary)
	next.AOWContribution = next.AOWContribution.Add(current.AOWContribution)
	next.WWContribution = next.WWContribution.Add(current.WWContribution)
	next.WIAContribution = next.WIAContribution.Add(current.WIAContribution)
	next.ZVWContribution = next.ZVWContribution.Add(current.ZVWContribution)
	next.TotalContributions = next.TotalContributions.Add(current.TotalContributions)
	next.IncomeTax = next.IncomeTax.Add(current.IncomeTax)
	next.HolidayAllowanceAccrued = next.HolidayAllowanceAccrued.Add(current.HolidayAllowanceMonthly)
	next.WorkingDays += current.WorkingDaysInPeriod
	if next.EmployeeID == "" {
		next.EmployeeID = current.EmployeeID
	}
	return next, nil
}

// Sum folds a month-ordered history into totals. It is the batch form of
// Accumulate and yields identical totals.
func Sum(results []domain.PayrollResult) (domain.CumulativeTotals, error) {
	var totals domain.CumulativeTotals
	for i, r := range results {
		var err error
		if totals, err = Accumulate(totals, r); err != nil {
			return domain.CumulativeTotals{}, fmt.Errorf("result %d: %w", i+1, err)
		}
	}
	return totals, nil
}

// Combine merges the totals of two adjacent stretches of the same year.
// Combine(Sum(a), Sum(b)) equals Sum(a followed by b).
func Combine(earlier, later domain.CumulativeTotals) (domain.CumulativeTotals, error) {
	if later.Periods == 0 {
		return earlier, nil
	}
	if earlier.Periods == 0 {
		return later, nil
	}
	if earlier.Year != later.Year {
		return domain.CumulativeTotals{}, &domain.ValidationError{
			Field: "totals.year", Constraint: fmt.Sprintf("must be %d", earlier.Year), Value: fmt.Sprint(later.Year),
		}
	}
	if later.FromMonth <= earlier.ThroughMonth {
		return domain.CumulativeTotals{}, &domain.ValidationError{
			Field: "totals.fromMonth", Constraint: fmt.Sprintf("must be after month %d", earlier.ThroughMonth), Value: fmt.Sprint(later.FromMonth),
		}
	}
	if earlier.EmployeeID != "" && later.EmployeeID != "" && earlier.EmployeeID != later.EmployeeID {
		return domain.CumulativeTotals{}, &domain.ValidationError{
			Field: "totals.employeeId", Constraint: fmt.Sprintf("must be %s", earlier.EmployeeID), Value: later.EmployeeID,
		}
	}

	out := earlier
	out.ThroughMonth = later.ThroughMonth
	out.Periods += later.Periods
	out.GrossSalary = out.GrossSalary.Add(later.GrossSalary)
	out.NetSalary = out.NetSalary.Add(later.NetSalary)
	out.AOWContribution = out.AOWContribution.Add(later.AOWContribution)
	out.WWContribution = out.WWContribution.Add(later.WWContribution)
	out.WIAContribution = out.WIAContribution.Add(later.WIAContribution)
	out.ZVWContribution = out.ZVWContribution.Add(later.ZVWContribution)
	out.TotalContributions = out.TotalContributions.Add(later.TotalContributions)
	out.IncomeTax = out.IncomeTax.Add(later.IncomeTax)
	out.HolidayAllowanceAccrued = out.HolidayAllowanceAccrued.Add(later.HolidayAllowanceAccrued)
	out.WorkingDays += later.WorkingDays
	if out.EmployeeID == "" {
		out.EmployeeID = later.EmployeeID
	}
	return out, nil
}
