package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter writes one row per month followed by a totals row when the
// statement carries year-to-date totals.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"Period", "EmployeeID", "WorkingDays", "TotalDays", "ProRataFactor",
	"ContractualGross", "Gross", "AOW", "WW", "WIA", "ZVW", "TotalContributions",
	"IncomeTax", "Net", "HolidayAllowance", "TaxVariant", "Warnings",
}

func (c CSVFormatter) Format(st *Statement) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range sortedResults(st) {
		row := []string{
			FormatPeriod(r.Year, r.Month),
			r.EmployeeID,
			strconv.Itoa(r.WorkingDaysInPeriod),
			strconv.Itoa(r.TotalDaysInPeriod),
			r.ProRataFactor.StringFixed(4),
			r.ContractualMonthlySalary.StringFixed(2),
			r.GrossMonthlySalary.StringFixed(2),
			r.AOWContribution.StringFixed(2),
			r.WWContribution.StringFixed(2),
			r.WIAContribution.StringFixed(2),
			r.ZVWContribution.StringFixed(2),
			r.TotalContributions.StringFixed(2),
			r.IncomeTax.StringFixed(2),
			r.NetMonthlySalary.StringFixed(2),
			r.HolidayAllowanceMonthly.StringFixed(2),
			r.TaxVariant,
			warningCodes(r.Warnings),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	if t := st.Totals; t != nil {
		row := []string{
			fmt.Sprintf("YTD %04d %02d-%02d", t.Year, t.FromMonth, t.ThroughMonth),
			t.EmployeeID,
			strconv.Itoa(t.WorkingDays),
			"",
			"",
			"",
			t.GrossSalary.StringFixed(2),
			t.AOWContribution.StringFixed(2),
			t.WWContribution.StringFixed(2),
			t.WIAContribution.StringFixed(2),
			t.ZVWContribution.StringFixed(2),
			t.TotalContributions.StringFixed(2),
			t.IncomeTax.StringFixed(2),
			t.NetSalary.StringFixed(2),
			t.HolidayAllowanceAccrued.StringFixed(2),
			"",
			"",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
