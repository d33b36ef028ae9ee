package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/pkg/dateutil"
	"github.com/loonengine/payroll-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// RateSource resolves the rate table of a tax year. A missing year must be
// reported as a *domain.ConfigurationError.
type RateSource interface {
	Lookup(year int) (*domain.RateTable, error)
}

// State is a step of a single payroll calculation.
type State string

const (
	StateValidated                State = "validated"
	StateProRated                 State = "pro_rated"
	StateContributionsComputed    State = "contributions_computed"
	StateTaxComputed              State = "tax_computed"
	StateHolidayAllowanceComputed State = "holiday_allowance_computed"
	StateFinalized                State = "finalized"
	StateRejected                 State = "rejected"
)

// Engine orchestrates a payroll calculation. It only holds configuration and
// is safe for concurrent use as long as its fields are not changed.
type Engine struct {
	Rates        RateSource
	TaxProration domain.TaxProrationMode
	Logger       Logger
}

// NewEngine creates a payroll engine using nominal tax proration
func NewEngine(rates RateSource) *Engine {
	return &Engine{
		Rates:        rates,
		TaxProration: domain.TaxProrationNominal,
		Logger:       NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// WithTaxProration returns a copy of the engine using mode. An empty mode
// keeps the engine's own.
func (e *Engine) WithTaxProration(mode domain.TaxProrationMode) *Engine {
	cp := *e
	if mode != "" {
		cp.TaxProration = mode
	}
	return &cp
}

// calculation carries the intermediate values of one run through the states.
type calculation struct {
	state   State
	emp     domain.EmployeeInput
	company domain.CompanyInput
	period  domain.Period
	mode    domain.TaxProrationMode
	rates   *domain.RateTable
	log     Logger

	periodStart    time.Time
	proRata        ProRata
	effectiveGross decimal.Decimal
	contributions  ContributionBreakdown
	profile        TaxProfile
	incomeTax      decimal.Decimal
	holiday        HolidayAllowance
	warnings       []domain.Warning
}

func (c *calculation) transition(next State) {
	c.log.Debugf("payroll %s %04d-%02d: %s -> %s", c.emp.EmployeeID, c.period.Year, c.period.Month, c.state, next)
	c.state = next
}

func (c *calculation) reject(err error) error {
	c.transition(StateRejected)
	if errors.Is(err, domain.ErrValidation) {
		c.log.Infof("payroll %s rejected: %v", c.emp.EmployeeID, err)
	} else {
		c.log.Errorf("payroll %s failed: %v", c.emp.EmployeeID, err)
	}
	return err
}

func (c *calculation) warn(w domain.Warning) {
	c.log.Warnf("payroll %s %04d-%02d: %s: %s", c.emp.EmployeeID, c.period.Year, c.period.Month, w.Code, w.Message)
	c.warnings = append(c.warnings, w)
}

// Calculate produces the payroll result for one employee and period. It
// returns either a complete result satisfying the net salary invariant or an
// error: *domain.ValidationError / domain.ValidationErrors for bad input,
// *domain.ConfigurationError for a missing rate table and
// *domain.InvariantViolation for an internal inconsistency.
func (e *Engine) Calculate(emp domain.EmployeeInput, company domain.CompanyInput, period domain.Period) (domain.PayrollResult, error) {
	log := e.Logger
	if log == nil {
		log = NopLogger{}
	}
	mode := e.TaxProration
	if mode == "" {
		mode = domain.TaxProrationNominal
	}
	c := &calculation{emp: emp, company: company, period: period, mode: mode, log: log}

	if !mode.Valid() {
		return domain.PayrollResult{}, c.reject(fmt.Errorf("unknown tax proration mode %q", mode))
	}
	if err := ValidateInput(emp, company, period); err != nil {
		return domain.PayrollResult{}, c.reject(err)
	}
	c.transition(StateValidated)

	if e.Rates == nil {
		return domain.PayrollResult{}, c.reject(&domain.ConfigurationError{Year: period.Year, Reason: "no rate source configured"})
	}
	rates, err := e.Rates.Lookup(period.Year)
	if err != nil {
		return domain.PayrollResult{}, c.reject(err)
	}
	c.rates = rates
	c.periodStart = dateutil.StartOfMonth(period.Year, time.Month(period.Month))

	steps := []struct {
		next State
		run  func() error
	}{
		{StateProRated, c.applyProRata},
		{StateContributionsComputed, c.computeContributions},
		{StateTaxComputed, c.computeIncomeTax},
		{StateHolidayAllowanceComputed, c.computeHolidayAllowance},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return domain.PayrollResult{}, c.reject(err)
		}
		c.transition(step.next)
	}

	result := c.assemble()
	if err := checkInvariants(result); err != nil {
		return domain.PayrollResult{}, c.reject(err)
	}
	c.transition(StateFinalized)
	return result, nil
}

func (c *calculation) applyProRata() error {
	pr, err := ComputeProRata(c.period)
	if err != nil {
		return err
	}
	c.proRata = pr
	c.effectiveGross = money.RoundCents(c.emp.GrossMonthlySalary.Mul(pr.Factor))
	if pr.Partial() {
		c.warn(domain.Warning{
			Code:    domain.WarningPartialPeriod,
			Message: fmt.Sprintf("employed %d of %d days", pr.WorkingDays, pr.TotalDays),
		})
	}
	return nil
}

func (c *calculation) computeContributions() error {
	insured := AOWInsured(c.emp, c.rates, c.periodStart)
	if !insured {
		c.log.Debugf("payroll %s: state pension age reached, no AOW premium", c.emp.EmployeeID)
	}
	c.contributions = NewContributionCalculator(c.rates).Calculate(c.effectiveGross, insured)
	return nil
}

func (c *calculation) computeIncomeTax() error {
	profile, err := SelectTaxProfile(c.emp, c.rates)
	if err != nil {
		return err
	}
	c.profile = profile
	for _, w := range profile.Warnings {
		c.warn(w)
	}

	calc := NewIncomeTaxCalculator(profile)
	var monthly decimal.Decimal
	switch c.mode {
	case domain.TaxProrationEffective:
		monthly = calc.MonthlyTax(c.effectiveGross)
	default:
		// Tax tables are applied to the full nominal pay; the resulting
		// monthly tax is then prorated.
		monthly = calc.MonthlyTax(c.emp.GrossMonthlySalary).Mul(c.proRata.Factor)
	}
	c.incomeTax = money.RoundCents(monthly)
	return nil
}

func (c *calculation) computeHolidayAllowance() error {
	c.holiday = ComputeHolidayAllowance(c.emp.GrossMonthlySalary, c.rates.HolidayAllowanceRate, c.proRata.Factor)
	if w := minimumWageWarning(c.emp, c.rates, c.periodStart); w != nil {
		c.warn(*w)
	}
	return nil
}

func (c *calculation) assemble() domain.PayrollResult {
	net := c.effectiveGross.
		Sub(c.incomeTax).
		Sub(c.contributions.AOW).
		Sub(c.contributions.WW).
		Sub(c.contributions.WIA).
		Sub(c.contributions.ZVW)

	return domain.PayrollResult{
		EmployeeID:               c.emp.EmployeeID,
		Year:                     c.period.Year,
		Month:                    c.period.Month,
		ContractualMonthlySalary: c.emp.GrossMonthlySalary,
		GrossMonthlySalary:       c.effectiveGross,
		NetMonthlySalary:         net,
		AOWContribution:          c.contributions.AOW,
		WWContribution:           c.contributions.WW,
		WIAContribution:          c.contributions.WIA,
		ZVWContribution:          c.contributions.ZVW,
		TotalContributions:       c.contributions.Total,
		IncomeTax:                c.incomeTax,
		HolidayAllowanceAnnual:   money.RoundCents(c.holiday.Annual),
		HolidayAllowanceMonthly:  money.RoundCents(c.holiday.Monthly),
		ProRataFactor:            c.proRata.Factor,
		WorkingDaysInPeriod:      c.proRata.WorkingDays,
		TotalDaysInPeriod:        c.proRata.TotalDays,
		DailyRate:                money.RoundCents(DailyRate(c.emp.GrossMonthlySalary, c.proRata.TotalDays)),
		TaxVariant:               c.profile.Name(),
		TaxProration:             c.mode,
		Warnings:                 c.warnings,
	}
}

// checkInvariants re-derives the result's identities. A failure is a bug in
// the engine and is never corrected silently.
func checkInvariants(r domain.PayrollResult) error {
	expectedNet := r.GrossMonthlySalary.
		Sub(money.Sum(r.IncomeTax, r.AOWContribution, r.WWContribution, r.WIAContribution, r.ZVWContribution))
	if !r.NetMonthlySalary.Equal(expectedNet) {
		return &domain.InvariantViolation{
			Field: "netMonthlySalary", Expected: expectedNet.StringFixed(2), Actual: r.NetMonthlySalary.StringFixed(2),
		}
	}

	total := money.Sum(r.AOWContribution, r.WWContribution, r.WIAContribution, r.ZVWContribution)
	if !r.TotalContributions.Equal(total) {
		return &domain.InvariantViolation{
			Field: "totalContributions", Expected: total.StringFixed(2), Actual: r.TotalContributions.StringFixed(2),
		}
	}

	if !r.ProRataFactor.IsPositive() || r.ProRataFactor.GreaterThan(decimal.NewFromInt(1)) {
		return &domain.InvariantViolation{Field: "proRataFactor", Expected: "0 < f <= 1", Actual: r.ProRataFactor.String()}
	}

	amounts := []struct {
		field  string
		amount decimal.Decimal
	}{
		{"incomeTax", r.IncomeTax},
		{"aowContribution", r.AOWContribution},
		{"wwContribution", r.WWContribution},
		{"wiaContribution", r.WIAContribution},
		{"zvwContribution", r.ZVWContribution},
		{"holidayAllowanceMonthly", r.HolidayAllowanceMonthly},
	}
	for _, a := range amounts {
		if a.amount.IsNegative() {
			return &domain.InvariantViolation{Field: a.field, Expected: ">= 0", Actual: a.amount.StringFixed(2)}
		}
	}
	return nil
}

// CalculateSeries calculates consecutive periods of one tax year for the same
// employee and returns the results with their year-to-date totals.
func (e *Engine) CalculateSeries(emp domain.EmployeeInput, company domain.CompanyInput, periods []domain.Period) ([]domain.PayrollResult, domain.CumulativeTotals, error) {
	results := make([]domain.PayrollResult, 0, len(periods))
	for _, p := range periods {
		r, err := e.Calculate(emp, company, p)
		if err != nil {
			return nil, domain.CumulativeTotals{}, fmt.Errorf("period %04d-%02d: %w", p.Year, p.Month, err)
		}
		results = append(results, r)
	}
	totals, err := Sum(results)
	if err != nil {
		return nil, domain.CumulativeTotals{}, err
	}
	return results, totals, nil
}
