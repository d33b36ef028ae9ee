package config

import (
	"fmt"
	"os"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultHolidayAllowanceRate applies when a rate file omits the rate.
var DefaultHolidayAllowanceRate = decimal.RequireFromString("0.08")

// InputParser handles parsing of rate table and calculation input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// rateTableFile is the on-disk schema of a rate table.
type rateTableFile struct {
	Year          int                                  `yaml:"year"`
	Source        string                               `yaml:"source"`
	Contributions contributionsFile                    `yaml:"contributions"`
	TaxTables     map[domain.TaxTable][]taxBracketFile `yaml:"tax_tables"`

	HolidayAllowanceRate *string         `yaml:"holiday_allowance_rate,omitempty"`
	MinimumWage          minimumWageFile `yaml:"minimum_wage"`

	YoungDisabledCredit *string `yaml:"young_disabled_credit,omitempty"`
	DGACustomarySalary  *string `yaml:"dga_customary_salary,omitempty"`
	AOWAge              int     `yaml:"aow_age,omitempty"`
}

type contributionsFile struct {
	AOW domain.ContributionRate `yaml:"aow"`
	WW  domain.ContributionRate `yaml:"ww"`
	WIA domain.ContributionRate `yaml:"wia"`
	ZVW domain.ContributionRate `yaml:"zvw"`
}

type taxBracketFile struct {
	UpTo *string `yaml:"up_to,omitempty"`
	Rate string  `yaml:"rate"`
}

type minimumWageFile struct {
	Hourly               decimal.Decimal         `yaml:"hourly"`
	StandardHoursPerWeek *string                 `yaml:"standard_hours_per_week,omitempty"`
	YouthFactors         map[int]decimal.Decimal `yaml:"youth_factors,omitempty"`
}

// LoadRateTable loads and validates a rate table from a YAML file
func (ip *InputParser) LoadRateTable(filename string) (*domain.RateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseRateTable(data, filename)
}

// ParseRateTable parses and validates a rate table. source is recorded on the
// table to tell built-in and operator-supplied tables apart.
func (ip *InputParser) ParseRateTable(data []byte, source string) (*domain.RateTable, error) {
	var file rateTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	table, err := file.toDomain()
	if err != nil {
		return nil, fmt.Errorf("rate table %s: %w", source, err)
	}
	if table.Source == "" {
		table.Source = source
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("rate table validation failed: %w", err)
	}
	return table, nil
}

func (f rateTableFile) toDomain() (*domain.RateTable, error) {
	rt := &domain.RateTable{
		Year:   f.Year,
		Source: f.Source,
		AOW:    f.Contributions.AOW,
		WW:     f.Contributions.WW,
		WIA:    f.Contributions.WIA,
		ZVW:    f.Contributions.ZVW,
		MinimumWage: domain.MinimumWage{
			Hourly:               f.MinimumWage.Hourly,
			StandardHoursPerWeek: decimal.NewFromInt(40),
			YouthFactors:         f.MinimumWage.YouthFactors,
		},
		HolidayAllowanceRate: DefaultHolidayAllowanceRate,
		AOWAge:               f.AOWAge,
		TaxTables:            make(map[domain.TaxTable][]domain.TaxBracket, len(f.TaxTables)),
	}

	var err error
	if f.HolidayAllowanceRate != nil {
		if rt.HolidayAllowanceRate, err = parseDecimal("holiday_allowance_rate", *f.HolidayAllowanceRate); err != nil {
			return nil, err
		}
	}
	if f.MinimumWage.StandardHoursPerWeek != nil {
		if rt.MinimumWage.StandardHoursPerWeek, err = parseDecimal("minimum_wage.standard_hours_per_week", *f.MinimumWage.StandardHoursPerWeek); err != nil {
			return nil, err
		}
	}
	if f.YoungDisabledCredit != nil {
		if rt.YoungDisabledCredit, err = parseDecimal("young_disabled_credit", *f.YoungDisabledCredit); err != nil {
			return nil, err
		}
	}
	if f.DGACustomarySalary != nil {
		if rt.DGACustomarySalary, err = parseDecimal("dga_customary_salary", *f.DGACustomarySalary); err != nil {
			return nil, err
		}
	}

	for table, brackets := range f.TaxTables {
		converted := make([]domain.TaxBracket, 0, len(brackets))
		for i, b := range brackets {
			rate, err := parseDecimal(fmt.Sprintf("tax_tables.%s[%d].rate", table, i), b.Rate)
			if err != nil {
				return nil, err
			}
			bracket := domain.TaxBracket{Rate: rate}
			if b.UpTo != nil {
				upTo, err := parseDecimal(fmt.Sprintf("tax_tables.%s[%d].up_to", table, i), *b.UpTo)
				if err != nil {
					return nil, err
				}
				bracket.UpTo = &upTo
			}
			converted = append(converted, bracket)
		}
		rt.TaxTables[table] = converted
	}
	return rt, nil
}

// CalculationInput is a parsed calculation request: one employee, one
// employer and one or more consecutive periods.
type CalculationInput struct {
	Employee     domain.EmployeeInput
	Company      domain.CompanyInput
	Periods      []domain.Period
	TaxProration domain.TaxProrationMode
}

type calculationFile struct {
	Employee     EmployeeData        `yaml:"employee"`
	Company      domain.CompanyInput `yaml:"company"`
	Periods      []PeriodData        `yaml:"periods"`
	TaxProration string              `yaml:"tax_proration,omitempty"`
}

// EmployeeData is the textual form of an employee, shared by calculation
// files and the HTTP API. Amounts are decimal strings, dates YYYY-MM-DD.
type EmployeeData struct {
	EmployeeID         string  `yaml:"employee_id" json:"employeeId"`
	GrossMonthlySalary string  `yaml:"gross_monthly_salary" json:"grossMonthlySalary"`
	DateOfBirth        string  `yaml:"date_of_birth" json:"dateOfBirth"`
	TaxTable           string  `yaml:"tax_table" json:"taxTable"`
	TaxCredit          *string `yaml:"tax_credit,omitempty" json:"taxCredit,omitempty"`
	IsDGA              bool    `yaml:"is_dga,omitempty" json:"isDGA,omitempty"`
	IsYoungDisabled    bool    `yaml:"is_young_disabled,omitempty" json:"isYoungDisabled,omitempty"`
	HasMultipleJobs    bool    `yaml:"has_multiple_jobs,omitempty" json:"hasMultipleJobs,omitempty"`
	HoursPerWeek       *string `yaml:"hours_per_week,omitempty" json:"hoursPerWeek,omitempty"`
	BSN                string  `yaml:"bsn,omitempty" json:"bsn,omitempty"`
}

// PeriodData is the textual form of a pay period.
type PeriodData struct {
	Year            int    `yaml:"year" json:"year"`
	Month           int    `yaml:"month" json:"month"`
	EmploymentStart string `yaml:"employment_start,omitempty" json:"employmentStart,omitempty"`
	EmploymentEnd   string `yaml:"employment_end,omitempty" json:"employmentEnd,omitempty"`
}

// LoadCalculation loads a calculation input from a YAML file
func (ip *InputParser) LoadCalculation(filename string) (*CalculationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseCalculation(data)
}

// ParseCalculation parses a calculation input. Only the file structure is
// checked here; salary and identifier rules are enforced by the engine.
func (ip *InputParser) ParseCalculation(data []byte) (*CalculationInput, error) {
	var file calculationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	employee, err := file.Employee.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("employee: %w", err)
	}

	if len(file.Periods) == 0 {
		return nil, fmt.Errorf("no periods provided")
	}
	periods := make([]domain.Period, 0, len(file.Periods))
	for i, p := range file.Periods {
		period, err := p.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", i+1, err)
		}
		periods = append(periods, period)
	}

	mode := domain.TaxProrationMode(file.TaxProration)
	if mode != "" && !mode.Valid() {
		return nil, fmt.Errorf("tax_proration must be 'nominal' or 'effective'")
	}

	return &CalculationInput{
		Employee:     employee,
		Company:      file.Company,
		Periods:      periods,
		TaxProration: mode,
	}, nil
}

// ToDomain parses the amounts and dates of the employee. Business rules are
// left to the engine.
func (f EmployeeData) ToDomain() (domain.EmployeeInput, error) {
	emp := domain.EmployeeInput{
		EmployeeID:      f.EmployeeID,
		TaxTable:        domain.TaxTable(f.TaxTable),
		IsDGA:           f.IsDGA,
		IsYoungDisabled: f.IsYoungDisabled,
		HasMultipleJobs: f.HasMultipleJobs,
		BSN:             f.BSN,
	}

	var err error
	if f.GrossMonthlySalary == "" {
		return emp, fmt.Errorf("gross_monthly_salary is required")
	}
	if emp.GrossMonthlySalary, err = parseDecimal("gross_monthly_salary", f.GrossMonthlySalary); err != nil {
		return emp, err
	}
	if f.TaxCredit != nil {
		if emp.TaxCredit, err = parseDecimal("tax_credit", *f.TaxCredit); err != nil {
			return emp, err
		}
	}
	if f.HoursPerWeek != nil {
		if emp.HoursPerWeek, err = parseDecimal("hours_per_week", *f.HoursPerWeek); err != nil {
			return emp, err
		}
	}
	if emp.DateOfBirth, err = parseDate("date_of_birth", f.DateOfBirth); err != nil {
		return emp, err
	}
	return emp, nil
}

// ToDomain parses the employment dates of the period.
func (f PeriodData) ToDomain() (domain.Period, error) {
	period := domain.Period{Year: f.Year, Month: f.Month}

	start, err := parseDate("employment_start", f.EmploymentStart)
	if err != nil {
		return period, err
	}
	if !start.IsZero() {
		period.EmploymentStart = &start
	}

	end, err := parseDate("employment_end", f.EmploymentEnd)
	if err != nil {
		return period, err
	}
	if !end.IsZero() {
		period.EmploymentEnd = &end
	}
	return period, nil
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid decimal %q", field, value)
	}
	return d, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := dateutil.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

// CreateExampleCalculation returns a calculation input covering a mid-month
// start followed by two full months.
func (ip *InputParser) CreateExampleCalculation() []byte {
	return []byte(`employee:
  employee_id: E-0001
  gross_monthly_salary: "3500.00"
  date_of_birth: "1990-05-01"
  tax_table: wit
  tax_credit: "3068"
  hours_per_week: "40"
  bsn: "123456782"
company:
  size: medium
  sector: "ict"
  awf_rate: low
  aof_rate: medium
  kvk_number: "12345678"
  loonheffingennummer: "123456789L01"
  rsin: "12345679"
periods:
  - year: 2025
    month: 1
    employment_start: "2025-01-15"
  - year: 2025
    month: 2
  - year: 2025
    month: 3
tax_proration: nominal
`)
}
