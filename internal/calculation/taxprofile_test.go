package calculation

import (
	"errors"
	"testing"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTaxProfile(t *testing.T) {
	rates := testRates()

	tests := []struct {
		name     string
		mutate   func(e *domain.EmployeeInput)
		variant  TaxVariant
		credit   string
		warnings []string
	}{
		{
			name:    "standard",
			mutate:  func(e *domain.EmployeeInput) { e.TaxCredit = dec("3068") },
			variant: VariantStandard,
			credit:  "3068",
		},
		{
			name: "young disabled adds the table credit",
			mutate: func(e *domain.EmployeeInput) {
				e.TaxCredit = dec("3068")
				e.IsYoungDisabled = true
			},
			variant: VariantYoungDisabled,
			credit:  "3977",
		},
		{
			name: "secondary job drops the credit",
			mutate: func(e *domain.EmployeeInput) {
				e.TaxCredit = dec("3068")
				e.HasMultipleJobs = true
				e.IsYoungDisabled = true
			},
			variant:  VariantSecondaryJob,
			credit:   "0",
			warnings: []string{domain.WarningCreditIgnoredMultiJob},
		},
		{
			name:    "secondary job without a credit has nothing to warn about",
			mutate:  func(e *domain.EmployeeInput) { e.HasMultipleJobs = true },
			variant: VariantSecondaryJob,
			credit:  "0",
		},
		{
			name:     "dga below customary salary",
			mutate:   func(e *domain.EmployeeInput) { e.IsDGA = true },
			variant:  VariantDGA,
			credit:   "0",
			warnings: []string{domain.WarningDGABelowCustomary},
		},
		{
			name: "dga at customary salary",
			mutate: func(e *domain.EmployeeInput) {
				e.IsDGA = true
				e.GrossMonthlySalary = dec("5000")
			},
			variant: VariantDGA,
			credit:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := standardEmployee()
			tt.mutate(&emp)

			profile, err := SelectTaxProfile(emp, rates)
			require.NoError(t, err)
			assert.Equal(t, tt.variant, profile.Variant)
			assert.True(t, dec(tt.credit).Equal(profile.Credit), "credit %s", profile.Credit)
			assert.Len(t, profile.Brackets, 3)

			var codes []string
			for _, w := range profile.Warnings {
				codes = append(codes, w.Code)
			}
			assert.Equal(t, tt.warnings, codes)
		})
	}
}

func TestSelectTaxProfile_TableSelection(t *testing.T) {
	rates := testRates()
	rates.TaxTables[domain.TaxTableGreen] = []domain.TaxBracket{{Rate: dec("0.25")}}

	emp := standardEmployee()
	emp.TaxTable = domain.TaxTableGreen
	profile, err := SelectTaxProfile(emp, rates)
	require.NoError(t, err)
	assert.Equal(t, "groen/standard", profile.Name())
	require.Len(t, profile.Brackets, 1)
	assert.Equal(t, "0.25", profile.Brackets[0].Rate.String())
}

func TestSelectTaxProfile_MissingTable(t *testing.T) {
	rates := testRates()
	delete(rates.TaxTables, domain.TaxTableGreen)

	emp := standardEmployee()
	emp.TaxTable = domain.TaxTableGreen
	_, err := SelectTaxProfile(emp, rates)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
