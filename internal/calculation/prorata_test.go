package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProRata_FullMonths(t *testing.T) {
	for year := 2020; year <= 2028; year++ {
		for month := 1; month <= 12; month++ {
			pr, err := ComputeProRata(domain.Period{Year: year, Month: month})
			require.NoError(t, err)
			assert.Equal(t, "1", pr.Factor.String(), "%d-%02d", year, month)
			assert.Equal(t, pr.TotalDays, pr.WorkingDays, "%d-%02d", year, month)
			assert.False(t, pr.Partial())
		}
	}

	feb2024, err := ComputeProRata(domain.Period{Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Equal(t, 29, feb2024.TotalDays)

	feb2025, err := ComputeProRata(domain.Period{Year: 2025, Month: 2})
	require.NoError(t, err)
	assert.Equal(t, 28, feb2025.TotalDays)
}

func TestComputeProRata_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		period  domain.Period
		working int
		total   int
	}{
		{
			name:    "start mid-month",
			period:  domain.Period{Year: 2025, Month: 1, EmploymentStart: date(2025, time.January, 15)},
			working: 17, total: 31,
		},
		{
			name:    "end mid-month in a leap February",
			period:  domain.Period{Year: 2024, Month: 2, EmploymentEnd: date(2024, time.February, 10)},
			working: 10, total: 29,
		},
		{
			name: "start and end in the same month",
			period: domain.Period{Year: 2025, Month: 4,
				EmploymentStart: date(2025, time.April, 10), EmploymentEnd: date(2025, time.April, 19)},
			working: 10, total: 30,
		},
		{
			name: "boundaries outside the month",
			period: domain.Period{Year: 2025, Month: 6,
				EmploymentStart: date(2020, time.March, 1), EmploymentEnd: date(2026, time.December, 31)},
			working: 30, total: 30,
		},
		{
			name:    "start on the first",
			period:  domain.Period{Year: 2025, Month: 3, EmploymentStart: date(2025, time.March, 1)},
			working: 31, total: 31,
		},
		{
			name:    "single day",
			period:  domain.Period{Year: 2025, Month: 3, EmploymentEnd: date(2025, time.March, 1)},
			working: 1, total: 31,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr, err := ComputeProRata(tt.period)
			require.NoError(t, err)
			assert.Equal(t, tt.working, pr.WorkingDays)
			assert.Equal(t, tt.total, pr.TotalDays)
			assert.Equal(t, tt.working < tt.total, pr.Partial())
		})
	}
}

func TestComputeProRata_StartOnFifteenth(t *testing.T) {
	pr, err := ComputeProRata(domain.Period{Year: 2025, Month: 1, EmploymentStart: date(2025, time.January, 15)})
	require.NoError(t, err)

	assert.Equal(t, "0.5484", pr.Factor.Round(4).String())
	assert.Equal(t, "1919.35", dec("3500").Mul(pr.Factor).Round(2).StringFixed(2))
}

func TestComputeProRata_Errors(t *testing.T) {
	tests := []struct {
		name   string
		period domain.Period
		field  string
	}{
		{"month zero", domain.Period{Year: 2025, Month: 0}, "period.month"},
		{"month thirteen", domain.Period{Year: 2025, Month: 13}, "period.month"},
		{"starts after the month", domain.Period{Year: 2025, Month: 1, EmploymentStart: date(2025, time.February, 1)}, "period.employmentStart"},
		{"ended before the month", domain.Period{Year: 2025, Month: 3, EmploymentEnd: date(2025, time.February, 28)}, "period.employmentEnd"},
		{
			"end before start",
			domain.Period{Year: 2025, Month: 3, EmploymentStart: date(2025, time.March, 20), EmploymentEnd: date(2025, time.March, 10)},
			"period.employmentEnd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeProRata(tt.period)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestDailyRate(t *testing.T) {
	assert.Equal(t, "112.90", DailyRate(dec("3500"), 31).Round(2).StringFixed(2))
	assert.Equal(t, "125.00", DailyRate(dec("3500"), 28).Round(2).StringFixed(2))
	assert.True(t, DailyRate(dec("3500"), 0).IsZero())
}
