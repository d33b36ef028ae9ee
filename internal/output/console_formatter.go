package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders an aligned plain-text statement.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(st *Statement) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PAYROLL STATEMENT")
	fmt.Fprintln(&buf, "================================")

	for _, r := range sortedResults(st) {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s  %s  (%s, tax %s)\n", FormatPeriod(r.Year, r.Month), r.EmployeeID, r.TaxVariant, r.TaxProration)
		if r.Partial() {
			fmt.Fprintf(&buf, "  Employed %d of %d days (factor %s)\n", r.WorkingDaysInPeriod, r.TotalDaysInPeriod, r.ProRataFactor.StringFixed(4))
		}
		line(&buf, "Gross salary", r.GrossMonthlySalary)
		line(&buf, "AOW", r.AOWContribution.Neg())
		line(&buf, "WW", r.WWContribution.Neg())
		line(&buf, "WIA", r.WIAContribution.Neg())
		line(&buf, "ZVW", r.ZVWContribution.Neg())
		line(&buf, "Income tax", r.IncomeTax.Neg())
		fmt.Fprintln(&buf, "  ------------------------------------")
		line(&buf, "Net salary", r.NetMonthlySalary)
		line(&buf, "Holiday allowance accrued", r.HolidayAllowanceMonthly)
		for _, w := range r.Warnings {
			fmt.Fprintf(&buf, "  ! %s: %s\n", w.Code, w.Message)
		}
	}

	if t := st.Totals; t != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "YEAR TO DATE %d (months %02d-%02d, %d periods)\n", t.Year, t.FromMonth, t.ThroughMonth, t.Periods)
		line(&buf, "Gross salary", t.GrossSalary)
		line(&buf, "Contributions", t.TotalContributions)
		line(&buf, "Income tax", t.IncomeTax)
		line(&buf, "Net salary", t.NetSalary)
		line(&buf, "Holiday allowance accrued", t.HolidayAllowanceAccrued)
	}
	return buf.Bytes(), nil
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-26s %12s\n", label, FormatCurrency(amount))
}
