package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(emp string, year, month int, gross string) domain.PayrollResult {
	g := decimal.RequireFromString(gross)
	aow := g.Mul(decimal.RequireFromString("0.1")).Round(2)
	return domain.PayrollResult{
		EmployeeID:              emp,
		Year:                    year,
		Month:                   month,
		GrossMonthlySalary:      g,
		NetMonthlySalary:        g.Sub(aow),
		AOWContribution:         aow,
		TotalContributions:      aow,
		HolidayAllowanceMonthly: g.Mul(decimal.RequireFromString("0.08")).Round(2),
		ProRataFactor:           decimal.NewFromInt(1),
		WorkingDaysInPeriod:     30,
		TotalDaysInPeriod:       30,
	}
}

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC)
	restore := SetNowFunc(func() time.Time { return now })
	t.Cleanup(restore)
	return now
}

func TestRecordAssignsVersions(t *testing.T) {
	now := fixedClock(t)
	ctx := context.Background()
	l := New(NewMemory())

	first, err := l.Record(ctx, result("E-1", 2025, 1, "3500"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, now, first.RecordedAt)
	assert.NotEqual(t, first.ID.String(), "00000000-0000-0000-0000-000000000000")

	second, err := l.Record(ctx, result("E-1", 2025, 2, "3500"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Version)

	correction, err := l.Record(ctx, result("E-1", 2025, 1, "3600"), "salary raise applied late")
	require.NoError(t, err)
	assert.Equal(t, 2, correction.Version)
	assert.Equal(t, "salary raise applied late", correction.Reason)
	assert.NotEqual(t, first.ID, correction.ID)

	history, err := l.History(ctx, "E-1", 2025)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int{1, 1, 2}, []int{history[0].Month, history[1].Month, history[2].Month})
	assert.Equal(t, []int{1, 2, 1}, []int{history[0].Version, history[1].Version, history[2].Version})
}

func TestRecordRequiresEmployee(t *testing.T) {
	l := New(NewMemory())
	_, err := l.Record(context.Background(), result("", 2025, 1, "3500"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEffectiveUsesLatestVersion(t *testing.T) {
	ctx := context.Background()
	l := New(NewMemory())

	for _, r := range []domain.PayrollResult{
		result("E-1", 2025, 2, "3500"),
		result("E-1", 2025, 1, "3500"),
		result("E-1", 2025, 1, "3700"),
		result("E-2", 2025, 1, "9999"),
		result("E-1", 2024, 12, "9999"),
	} {
		_, err := l.Record(ctx, r, "")
		require.NoError(t, err)
	}

	effective, err := l.Effective(ctx, "E-1", 2025)
	require.NoError(t, err)
	require.Len(t, effective, 2)
	assert.Equal(t, 1, effective[0].Month)
	assert.Equal(t, 2, effective[0].Version)
	assert.Equal(t, "3700.00", effective[0].Result.GrossMonthlySalary.StringFixed(2))
	assert.Equal(t, 2, effective[1].Month)
}

func TestYearToDate(t *testing.T) {
	ctx := context.Background()
	l := New(NewMemory())

	for _, r := range []domain.PayrollResult{
		result("E-1", 2025, 1, "3000"),
		result("E-1", 2025, 2, "3000"),
		result("E-1", 2025, 3, "3000"),
		result("E-1", 2025, 2, "3500"), // correction of February
	} {
		_, err := l.Record(ctx, r, "")
		require.NoError(t, err)
	}

	totals, err := l.YearToDate(ctx, "E-1", 2025, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Periods)
	assert.Equal(t, 1, totals.FromMonth)
	assert.Equal(t, 2, totals.ThroughMonth)
	assert.Equal(t, "6500.00", totals.GrossSalary.StringFixed(2))
	assert.Equal(t, "650.00", totals.AOWContribution.StringFixed(2))
	assert.Equal(t, "520.00", totals.HolidayAllowanceAccrued.StringFixed(2))

	full, err := l.YearToDate(ctx, "E-1", 2025, 12)
	require.NoError(t, err)
	assert.Equal(t, 3, full.Periods)
	assert.Equal(t, "9500.00", full.GrossSalary.StringFixed(2))
}

func TestYearToDateEmpty(t *testing.T) {
	l := New(NewMemory())
	totals, err := l.YearToDate(context.Background(), "E-9", 2025, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, totals.Periods)
	assert.Equal(t, "E-9", totals.EmployeeID)
	assert.Equal(t, 2025, totals.Year)
	assert.True(t, totals.GrossSalary.IsZero())
}

func TestYearToDateRejectsMonth(t *testing.T) {
	l := New(NewMemory())
	_, err := l.YearToDate(context.Background(), "E-1", 2025, 13)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "month", verr.Field)
}

func TestMemoryRejectsDuplicateVersion(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	rec := Record{EmployeeID: "E-1", Year: 2025, Month: 1, Version: 1}
	require.NoError(t, m.Append(ctx, rec))
	assert.ErrorIs(t, m.Append(ctx, rec), ErrDuplicateVersion)
}

func TestMemoryHistoryIsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Append(ctx, Record{EmployeeID: "E-1", Year: 2025, Month: 1, Version: 1}))

	history, err := m.History(ctx, "E-1", 2025)
	require.NoError(t, err)
	history[0].Version = 99

	again, err := m.History(ctx, "E-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Version)
}

func TestConcurrentCorrections(t *testing.T) {
	ctx := context.Background()
	l := New(NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Record(ctx, result("E-1", 2025, 4, "3500"), "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := l.History(ctx, "E-1", 2025)
	require.NoError(t, err)
	require.Len(t, history, 20)
	for i, rec := range history {
		assert.Equal(t, i+1, rec.Version)
	}
}
