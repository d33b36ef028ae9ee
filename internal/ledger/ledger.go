/*
Package ledger keeps the history of calculated payroll results.

APPEND-ONLY CONTRACT:

	A recorded result is never changed or removed. A correction of a month is
	recorded as a new version of that month; the highest version is the
	effective one. Year-to-date totals are always recomputed from the
	effective results, never stored.

IMPLEMENTATIONS:
  - Memory (this package): in-memory, for tests and development
  - ledger/sqlite: SQLite, used by the HTTP service
*/
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/loonengine/payroll-engine/internal/calculation"
	"github.com/loonengine/payroll-engine/internal/domain"
)

// ErrDuplicateVersion is returned when a version of a month is already recorded.
var ErrDuplicateVersion = errors.New("payroll version already recorded")

// Record is one stored version of a monthly result.
type Record struct {
	ID         uuid.UUID            `json:"id"`
	EmployeeID string               `json:"employeeId"`
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Version    int                  `json:"version"`
	Result     domain.PayrollResult `json:"result"`
	Reason     string               `json:"reason,omitempty"`
	RecordedAt time.Time            `json:"recordedAt"`
}

// Store persists records.
// IMPORTANT: Store is APPEND-ONLY. No Update, no Delete.
type Store interface {
	// Append persists a record. Returns ErrDuplicateVersion if the
	// (employee, year, month, version) key exists.
	Append(ctx context.Context, rec Record) error

	// History returns every version recorded for the employee and year,
	// ordered by month and then version.
	History(ctx context.Context, employeeID string, year int) ([]Record, error)
}

// Ledger assigns versions and derives effective results and totals on top
// of a Store.
type Ledger struct {
	store Store
	mu    sync.Mutex // serializes version assignment
}

// New creates a ledger over the store.
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Record appends the result as the next version of its month. The first
// recording of a month is version 1.
func (l *Ledger) Record(ctx context.Context, result domain.PayrollResult, reason string) (Record, error) {
	if result.EmployeeID == "" {
		return Record{}, &domain.ValidationError{Field: "result.employeeId", Constraint: "is required"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	history, err := l.store.History(ctx, result.EmployeeID, result.Year)
	if err != nil {
		return Record{}, fmt.Errorf("failed to load history: %w", err)
	}
	version := 1
	for _, rec := range history {
		if rec.Month == result.Month && rec.Version >= version {
			version = rec.Version + 1
		}
	}

	rec := Record{
		ID:         uuid.New(),
		EmployeeID: result.EmployeeID,
		Year:       result.Year,
		Month:      result.Month,
		Version:    version,
		Result:     result,
		Reason:     reason,
		RecordedAt: nowFunc().UTC(),
	}
	if err := l.store.Append(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// History returns every recorded version, corrections included.
func (l *Ledger) History(ctx context.Context, employeeID string, year int) ([]Record, error) {
	return l.store.History(ctx, employeeID, year)
}

// Effective returns the latest version of each recorded month, in month order.
func (l *Ledger) Effective(ctx context.Context, employeeID string, year int) ([]Record, error) {
	history, err := l.store.History(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	return latestPerMonth(history), nil
}

// YearToDate sums the effective results from the start of the year through
// the given month.
func (l *Ledger) YearToDate(ctx context.Context, employeeID string, year, throughMonth int) (domain.CumulativeTotals, error) {
	if throughMonth < 1 || throughMonth > 12 {
		return domain.CumulativeTotals{}, &domain.ValidationError{
			Field: "month", Constraint: "must be between 1 and 12", Value: fmt.Sprint(throughMonth),
		}
	}
	effective, err := l.Effective(ctx, employeeID, year)
	if err != nil {
		return domain.CumulativeTotals{}, err
	}

	results := make([]domain.PayrollResult, 0, len(effective))
	for _, rec := range effective {
		if rec.Month <= throughMonth {
			results = append(results, rec.Result)
		}
	}
	totals, err := calculation.Sum(results)
	if err != nil {
		return domain.CumulativeTotals{}, err
	}
	if totals.Periods == 0 {
		totals.EmployeeID = employeeID
		totals.Year = year
	}
	return totals, nil
}

func latestPerMonth(history []Record) []Record {
	byMonth := make(map[int]Record)
	for _, rec := range history {
		if cur, ok := byMonth[rec.Month]; !ok || rec.Version > cur.Version {
			byMonth[rec.Month] = rec
		}
	}
	out := make([]Record, 0, len(byMonth))
	for _, rec := range byMonth {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
