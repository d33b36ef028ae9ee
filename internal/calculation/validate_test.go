package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInput_Valid(t *testing.T) {
	emp := standardEmployee()
	emp.BSN = "123456782"
	emp.DateOfBirth = time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	company := domain.CompanyInput{
		Size:                domain.CompanySizeSmall,
		AWFRate:             domain.PremiumLow,
		AOFRate:             domain.PremiumHigh,
		KvKNumber:           "12345678",
		Loonheffingennummer: "123456789L01",
		RSIN:                "12345679",
	}
	assert.NoError(t, ValidateInput(emp, company, domain.Period{Year: 2025, Month: 1}))
	assert.NoError(t, ValidateInput(emp, domain.CompanyInput{}, domain.Period{Year: 2025, Month: 12}))
}

func TestValidateInput_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		emp     func(e *domain.EmployeeInput)
		company domain.CompanyInput
		period  domain.Period
		fields  []string
	}{
		{
			name:   "zero salary",
			emp:    func(e *domain.EmployeeInput) { e.GrossMonthlySalary = dec("0") },
			period: domain.Period{Year: 2025, Month: 1},
			fields: []string{"employee.grossMonthlySalary"},
		},
		{
			name:   "negative salary",
			emp:    func(e *domain.EmployeeInput) { e.GrossMonthlySalary = dec("-1") },
			period: domain.Period{Year: 2025, Month: 1},
			fields: []string{"employee.grossMonthlySalary"},
		},
		{
			name:   "month out of range",
			period: domain.Period{Year: 2025, Month: 13},
			fields: []string{"period.month"},
		},
		{
			name:   "invalid BSN",
			emp:    func(e *domain.EmployeeInput) { e.BSN = "123456789" },
			period: domain.Period{Year: 2025, Month: 1},
			fields: []string{"employee.bsn"},
		},
		{
			name:   "missing tax table and negative credit",
			emp:    func(e *domain.EmployeeInput) { e.TaxTable = ""; e.TaxCredit = dec("-5") },
			period: domain.Period{Year: 2025, Month: 1},
			fields: []string{"employee.taxTable", "employee.taxCredit"},
		},
		{
			name:   "born after the period",
			emp:    func(e *domain.EmployeeInput) { e.DateOfBirth = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
			period: domain.Period{Year: 2025, Month: 1},
			fields: []string{"employee.dateOfBirth"},
		},
		{
			name: "employment end before start",
			period: domain.Period{Year: 2025, Month: 1,
				EmploymentStart: date(2025, time.January, 20), EmploymentEnd: date(2025, time.January, 5)},
			fields: []string{"period.employmentEnd"},
		},
		{
			name: "company identifiers",
			company: domain.CompanyInput{
				Size:                "huge",
				AWFRate:             "extreme",
				KvKNumber:           "1234",
				Loonheffingennummer: "000000000L01",
				RSIN:                "11111111",
			},
			period: domain.Period{Year: 2025, Month: 1},
			fields: []string{"company.size", "company.awfRate", "company.kvkNumber", "company.loonheffingennummer", "company.rsin"},
		},
		{
			name:   "everything wrong at once",
			emp:    func(e *domain.EmployeeInput) { e.GrossMonthlySalary = dec("0"); e.BSN = "1" },
			period: domain.Period{Year: 0, Month: 0},
			fields: []string{"employee.grossMonthlySalary", "employee.bsn", "period.month", "period.year"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := standardEmployee()
			if tt.emp != nil {
				tt.emp(&emp)
			}
			err := ValidateInput(emp, tt.company, tt.period)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var errs domain.ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Equal(t, tt.fields, errs.Fields())
		})
	}
}
