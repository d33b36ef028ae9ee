package output

import (
	"fmt"
	"strings"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as euros with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.FormatEuro(amount) }

// FormatPercentage formats a rate such as 0.08 as "8.00%".
func FormatPercentage(rate decimal.Decimal) string { return money.Percent(rate).StringFixed(2) + "%" }

// FormatPeriod renders year and month as YYYY-MM.
func FormatPeriod(year, month int) string { return fmt.Sprintf("%04d-%02d", year, month) }

func warningCodes(ws []domain.Warning) string {
	codes := make([]string, 0, len(ws))
	for _, w := range ws {
		codes = append(codes, w.Code)
	}
	return strings.Join(codes, ";")
}
