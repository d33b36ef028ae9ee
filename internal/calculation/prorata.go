package calculation

import (
	"fmt"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ProRata is the worked fraction of a monthly period.
type ProRata struct {
	Factor      decimal.Decimal
	WorkingDays int
	TotalDays   int
}

// Partial reports whether less than the whole month was worked.
func (p ProRata) Partial() bool {
	return p.WorkingDays < p.TotalDays
}

// ComputeProRata intersects the employment dates with the calendar month.
// Calendar days are counted, not working days: a start on the 15th of a
// 31-day month gives 17/31.
func ComputeProRata(period domain.Period) (ProRata, error) {
	if period.Month < 1 || period.Month > 12 {
		return ProRata{}, &domain.ValidationError{
			Field: "period.month", Constraint: "must be between 1 and 12", Value: fmt.Sprint(period.Month),
		}
	}

	month := time.Month(period.Month)
	totalDays := dateutil.DaysInMonth(period.Year, month)
	monthStart := dateutil.StartOfMonth(period.Year, month)
	monthEnd := dateutil.EndOfMonth(period.Year, month)

	first, last := 1, totalDays
	if period.EmploymentStart != nil {
		start := dateutil.DateOnly(*period.EmploymentStart)
		if start.After(monthEnd) {
			return ProRata{}, &domain.ValidationError{
				Field: "period.employmentStart", Constraint: "is after the end of the period",
				Value: start.Format("2006-01-02"),
			}
		}
		if !start.Before(monthStart) {
			first = start.Day()
		}
	}
	if period.EmploymentEnd != nil {
		end := dateutil.DateOnly(*period.EmploymentEnd)
		if end.Before(monthStart) {
			return ProRata{}, &domain.ValidationError{
				Field: "period.employmentEnd", Constraint: "is before the start of the period",
				Value: end.Format("2006-01-02"),
			}
		}
		if !end.After(monthEnd) {
			last = end.Day()
		}
	}

	working := last - first + 1
	if working <= 0 {
		return ProRata{}, &domain.ValidationError{
			Field: "period.employmentEnd", Constraint: "must not be before employmentStart",
		}
	}

	return ProRata{
		Factor:      decimal.NewFromInt(int64(working)).Div(decimal.NewFromInt(int64(totalDays))),
		WorkingDays: working,
		TotalDays:   totalDays,
	}, nil
}

// DailyRate divides the monthly salary by the calendar days of that month.
func DailyRate(grossMonthly decimal.Decimal, totalDays int) decimal.Decimal {
	if totalDays <= 0 {
		return decimal.Zero
	}
	return grossMonthly.Div(decimal.NewFromInt(int64(totalDays)))
}
