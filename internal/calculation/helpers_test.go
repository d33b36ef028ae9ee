package calculation

import (
	"fmt"
	"sync"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func upTo(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// testRates mirrors the 2025 built-in table.
func testRates() *domain.RateTable {
	brackets := []domain.TaxBracket{
		{UpTo: upTo("38441"), Rate: dec("0.0817")},
		{UpTo: upTo("76817"), Rate: dec("0.3748")},
		{Rate: dec("0.4950")},
	}
	return &domain.RateTable{
		Year: 2025,
		AOW:  domain.ContributionRate{Rate: dec("0.1790"), MaxAnnualIncome: dec("38441")},
		WW:   domain.ContributionRate{Rate: dec("0.0264"), MaxAnnualIncome: dec("75864")},
		WIA:  domain.ContributionRate{Rate: dec("0.0618"), MaxAnnualIncome: dec("75864")},
		ZVW:  domain.ContributionRate{Rate: dec("0.0526"), MaxAnnualIncome: dec("75864")},
		TaxTables: map[domain.TaxTable][]domain.TaxBracket{
			domain.TaxTableWhite: brackets,
			domain.TaxTableGreen: brackets,
		},
		HolidayAllowanceRate: dec("0.08"),
		MinimumWage: domain.MinimumWage{
			Hourly:               dec("14.06"),
			StandardHoursPerWeek: dec("40"),
			YouthFactors: map[int]decimal.Decimal{
				15: dec("0.30"), 16: dec("0.35"), 17: dec("0.40"),
				18: dec("0.50"), 19: dec("0.60"), 20: dec("0.80"),
			},
		},
		YoungDisabledCredit: dec("909"),
		DGACustomarySalary:  dec("56000"),
		AOWAge:              67,
	}
}

// zeroRates has no contributions and a 0% first bracket.
func zeroRates() *domain.RateTable {
	rt := testRates()
	rt.AOW.Rate = decimal.Zero
	rt.WW.Rate = decimal.Zero
	rt.WIA.Rate = decimal.Zero
	rt.ZVW.Rate = decimal.Zero
	rt.TaxTables = map[domain.TaxTable][]domain.TaxBracket{
		domain.TaxTableWhite: {
			{UpTo: upTo("12000"), Rate: decimal.Zero},
			{Rate: dec("0.40")},
		},
	}
	return rt
}

type staticRates map[int]*domain.RateTable

func (s staticRates) Lookup(year int) (*domain.RateTable, error) {
	if rt, ok := s[year]; ok {
		return rt, nil
	}
	return nil, &domain.ConfigurationError{Year: year, Reason: "not in test set"}
}

func standardEmployee() domain.EmployeeInput {
	return domain.EmployeeInput{
		EmployeeID:         "E-1",
		GrossMonthlySalary: dec("3500"),
		TaxTable:           domain.TaxTableWhite,
	}
}

// recordingLogger captures formatted log lines per level.
type recordingLogger struct {
	mu    sync.Mutex
	lines map[string][]string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{lines: make(map[string][]string)}
}

func (l *recordingLogger) add(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines[level] = append(l.lines[level], fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) { l.add("debug", format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.add("info", format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.add("warn", format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.add("error", format, args...) }
