package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validTable() *RateTable {
	aowCap := decimal.NewFromInt(38441)
	return &RateTable{
		Year: 2025,
		AOW:  ContributionRate{Rate: decimal.RequireFromString("0.179"), MaxAnnualIncome: aowCap},
		WW:   ContributionRate{Rate: decimal.RequireFromString("0.0264"), MaxAnnualIncome: decimal.NewFromInt(75864)},
		WIA:  ContributionRate{Rate: decimal.RequireFromString("0.0618"), MaxAnnualIncome: decimal.NewFromInt(75864)},
		ZVW:  ContributionRate{Rate: decimal.RequireFromString("0.0651"), MaxAnnualIncome: decimal.NewFromInt(75864)},
		TaxTables: map[TaxTable][]TaxBracket{
			TaxTableWhite: {
				{UpTo: ptr("38441"), Rate: decimal.RequireFromString("0.0817")},
				{UpTo: ptr("76817"), Rate: decimal.RequireFromString("0.3748")},
				{Rate: decimal.RequireFromString("0.495")},
			},
		},
		HolidayAllowanceRate: decimal.RequireFromString("0.08"),
		MinimumWage: MinimumWage{
			Hourly:               decimal.RequireFromString("14.06"),
			StandardHoursPerWeek: decimal.NewFromInt(40),
		},
	}
}

func TestRateTable_Validate(t *testing.T) {
	require.NoError(t, validTable().Validate())

	tests := []struct {
		name   string
		mutate func(rt *RateTable)
		errMsg string
	}{
		{
			name:   "rate above one",
			mutate: func(rt *RateTable) { rt.AOW.Rate = decimal.RequireFromString("1.01") },
			errMsg: "aow.rate must be between 0 and 1",
		},
		{
			name:   "negative rate",
			mutate: func(rt *RateTable) { rt.ZVW.Rate = decimal.RequireFromString("-0.01") },
			errMsg: "zvw.rate must be between 0 and 1",
		},
		{
			name:   "zero cap",
			mutate: func(rt *RateTable) { rt.WW.MaxAnnualIncome = decimal.Zero },
			errMsg: "ww.max_annual_income must be positive",
		},
		{
			name:   "no tax tables",
			mutate: func(rt *RateTable) { rt.TaxTables = nil },
			errMsg: "at least one tax table is required",
		},
		{
			name: "unknown table",
			mutate: func(rt *RateTable) {
				rt.TaxTables["blauw"] = rt.TaxTables[TaxTableWhite]
			},
			errMsg: `unknown tax table "blauw"`,
		},
		{
			name: "boundaries not increasing",
			mutate: func(rt *RateTable) {
				rt.TaxTables[TaxTableWhite] = []TaxBracket{
					{UpTo: ptr("50000"), Rate: decimal.RequireFromString("0.3")},
					{UpTo: ptr("40000"), Rate: decimal.RequireFromString("0.4")},
					{Rate: decimal.RequireFromString("0.5")},
				}
			},
			errMsg: "bracket 2 boundary 40000 must be greater than 50000",
		},
		{
			name: "open bracket in the middle",
			mutate: func(rt *RateTable) {
				rt.TaxTables[TaxTableWhite] = []TaxBracket{
					{Rate: decimal.RequireFromString("0.3")},
					{UpTo: ptr("40000"), Rate: decimal.RequireFromString("0.4")},
				}
			},
			errMsg: "bracket 1 is open-ended",
		},
		{
			name: "closed final bracket",
			mutate: func(rt *RateTable) {
				rt.TaxTables[TaxTableWhite] = []TaxBracket{
					{UpTo: ptr("40000"), Rate: decimal.RequireFromString("0.4")},
				}
			},
			errMsg: "final bracket must be open-ended",
		},
		{
			name: "empty bracket set",
			mutate: func(rt *RateTable) {
				rt.TaxTables[TaxTableGreen] = nil
			},
			errMsg: "tax table groen: no brackets",
		},
		{
			name:   "holiday rate out of range",
			mutate: func(rt *RateTable) { rt.HolidayAllowanceRate = decimal.NewFromInt(8) },
			errMsg: "holiday_allowance_rate",
		},
		{
			name:   "year missing",
			mutate: func(rt *RateTable) { rt.Year = 0 },
			errMsg: "year must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := validTable()
			tt.mutate(rt)
			err := rt.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRateTable_Brackets(t *testing.T) {
	rt := validTable()

	b, ok := rt.Brackets(TaxTableWhite)
	assert.True(t, ok)
	assert.Len(t, b, 3)

	_, ok = rt.Brackets(TaxTableGreen)
	assert.False(t, ok, "missing table must not be reported as available")
}

func TestMinimumWage_FactorForAge(t *testing.T) {
	mw := MinimumWage{
		YouthFactors: map[int]decimal.Decimal{
			15: decimal.RequireFromString("0.30"),
			18: decimal.RequireFromString("0.50"),
			20: decimal.RequireFromString("0.80"),
		},
	}

	assert.Equal(t, "0.3", mw.FactorForAge(14).String(), "below youngest age uses youngest factor")
	assert.Equal(t, "0.3", mw.FactorForAge(15).String())
	assert.Equal(t, "0.5", mw.FactorForAge(18).String())
	assert.Equal(t, "0.8", mw.FactorForAge(20).String())
	assert.Equal(t, "1", mw.FactorForAge(21).String())
	assert.Equal(t, "1", MinimumWage{}.FactorForAge(16).String())
}

func TestEnums(t *testing.T) {
	assert.True(t, TaxTableWhite.Valid())
	assert.True(t, TaxTableGreen.Valid())
	assert.False(t, TaxTable("").Valid())
	assert.False(t, TaxTable("WIT").Valid())

	assert.True(t, CompanySizeMedium.Valid())
	assert.False(t, CompanySize("huge").Valid())

	assert.True(t, PremiumHigh.Valid())
	assert.False(t, PremiumClass("extreme").Valid())

	assert.True(t, TaxProrationNominal.Valid())
	assert.True(t, TaxProrationEffective.Valid())
	assert.False(t, TaxProrationMode("").Valid())
}

func TestPayrollResult_Partial(t *testing.T) {
	full := PayrollResult{WorkingDaysInPeriod: 31, TotalDaysInPeriod: 31}
	assert.False(t, full.Partial())

	partial := PayrollResult{WorkingDaysInPeriod: 17, TotalDaysInPeriod: 31}
	assert.True(t, partial.Partial())
}
