package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeInput is the per-calculation view of an employee. Callers build it
// fresh from their own records.
type EmployeeInput struct {
	EmployeeID         string          `json:"employeeId,omitempty"`
	GrossMonthlySalary decimal.Decimal `json:"grossMonthlySalary"`
	DateOfBirth        time.Time       `json:"dateOfBirth"`
	TaxTable           TaxTable        `json:"taxTable"`
	TaxCredit          decimal.Decimal `json:"taxCredit"` // annual loonheffingskorting
	IsDGA              bool            `json:"isDGA"`
	IsYoungDisabled    bool            `json:"isYoungDisabled"`
	HasMultipleJobs    bool            `json:"hasMultipleJobs"`
	HoursPerWeek       decimal.Decimal `json:"hoursPerWeek,omitempty"`

	// Identity, validated only.
	BSN string `json:"bsn,omitempty"`
}

// CompanySize is the employer size class.
type CompanySize string

const (
	CompanySizeSmall  CompanySize = "small"
	CompanySizeMedium CompanySize = "medium"
	CompanySizeLarge  CompanySize = "large"
)

// Valid reports whether the size is a known class.
func (s CompanySize) Valid() bool {
	return s == CompanySizeSmall || s == CompanySizeMedium || s == CompanySizeLarge
}

// PremiumClass is a sector-based employer premium modifier (AWF/AOF).
type PremiumClass string

const (
	PremiumLow    PremiumClass = "low"
	PremiumMedium PremiumClass = "medium"
	PremiumHigh   PremiumClass = "high"
)

// Valid reports whether the class is known.
func (p PremiumClass) Valid() bool {
	return p == PremiumLow || p == PremiumMedium || p == PremiumHigh
}

// CompanyInput carries employer parameters. AWF/AOF classes are informational
// and never affect the employee's net salary.
type CompanyInput struct {
	Size    CompanySize  `yaml:"size,omitempty" json:"size,omitempty"`
	Sector  string       `yaml:"sector,omitempty" json:"sector,omitempty"`
	AWFRate PremiumClass `yaml:"awf_rate,omitempty" json:"awfRate,omitempty"`
	AOFRate PremiumClass `yaml:"aof_rate,omitempty" json:"aofRate,omitempty"`

	// Identity, validated only when supplied.
	KvKNumber           string `yaml:"kvk_number,omitempty" json:"kvkNumber,omitempty"`
	Loonheffingennummer string `yaml:"loonheffingennummer,omitempty" json:"loonheffingennummer,omitempty"`
	RSIN                string `yaml:"rsin,omitempty" json:"rsin,omitempty"`
}

// Period is one monthly pay period, optionally bounded by employment dates.
type Period struct {
	Year            int        `json:"year"`
	Month           int        `json:"month"`
	EmploymentStart *time.Time `json:"employmentStart,omitempty"`
	EmploymentEnd   *time.Time `json:"employmentEnd,omitempty"`
}

// TaxProrationMode controls how income tax is derived for partial periods.
type TaxProrationMode string

const (
	// TaxProrationNominal annualizes the contractual salary and prorates the
	// resulting monthly tax.
	TaxProrationNominal TaxProrationMode = "nominal"
	// TaxProrationEffective annualizes the prorated salary.
	TaxProrationEffective TaxProrationMode = "effective"
)

// Valid reports whether the mode is known.
func (m TaxProrationMode) Valid() bool {
	return m == TaxProrationNominal || m == TaxProrationEffective
}

// Warning codes attached to results. Warnings never block a result.
const (
	WarningBelowMinimumWage      = "below_minimum_wage"
	WarningDGABelowCustomary     = "dga_below_customary_salary"
	WarningCreditIgnoredMultiJob = "tax_credit_ignored_secondary_job"
	WarningPartialPeriod         = "partial_period"
)

// Warning is an informational note on a result.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PayrollResult is the immutable outcome of one calculation. Monetary fields
// are monthly amounts rounded to cents unless stated otherwise.
type PayrollResult struct {
	EmployeeID string `json:"employeeId,omitempty"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	ContractualMonthlySalary decimal.Decimal `json:"contractualMonthlySalary"`
	GrossMonthlySalary       decimal.Decimal `json:"grossMonthlySalary"` // after pro-ration
	NetMonthlySalary         decimal.Decimal `json:"netMonthlySalary"`

	AOWContribution    decimal.Decimal `json:"aowContribution"`
	WWContribution     decimal.Decimal `json:"wwContribution"`
	WIAContribution    decimal.Decimal `json:"wiaContribution"`
	ZVWContribution    decimal.Decimal `json:"zvwContribution"`
	TotalContributions decimal.Decimal `json:"totalContributions"`

	IncomeTax decimal.Decimal `json:"incomeTax"`

	HolidayAllowanceAnnual  decimal.Decimal `json:"holidayAllowanceAnnual"`
	HolidayAllowanceMonthly decimal.Decimal `json:"holidayAllowanceMonthly"`

	ProRataFactor       decimal.Decimal `json:"proRataFactor"`
	WorkingDaysInPeriod int             `json:"workingDaysInPeriod"`
	TotalDaysInPeriod   int             `json:"totalDaysInPeriod"`
	DailyRate           decimal.Decimal `json:"dailyRate"`

	TaxVariant   string           `json:"taxVariant"`
	TaxProration TaxProrationMode `json:"taxProration"`
	Warnings     []Warning        `json:"warnings,omitempty"`
}

// Partial reports whether the result covers only part of the month.
func (r PayrollResult) Partial() bool {
	return r.WorkingDaysInPeriod < r.TotalDaysInPeriod
}

// CumulativeTotals are year-to-date sums of PayrollResults for one employee.
type CumulativeTotals struct {
	EmployeeID   string `json:"employeeId,omitempty"`
	Year         int    `json:"year"`
	FromMonth    int    `json:"fromMonth"`
	ThroughMonth int    `json:"throughMonth"`
	Periods      int    `json:"periods"`

	GrossSalary             decimal.Decimal `json:"grossSalary"`
	NetSalary               decimal.Decimal `json:"netSalary"`
	AOWContribution         decimal.Decimal `json:"aowContribution"`
	WWContribution          decimal.Decimal `json:"wwContribution"`
	WIAContribution         decimal.Decimal `json:"wiaContribution"`
	ZVWContribution         decimal.Decimal `json:"zvwContribution"`
	TotalContributions      decimal.Decimal `json:"totalContributions"`
	IncomeTax               decimal.Decimal `json:"incomeTax"`
	HolidayAllowanceAccrued decimal.Decimal `json:"holidayAllowanceAccrued"`
	WorkingDays             int             `json:"workingDays"`
}
