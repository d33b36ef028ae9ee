package ledger

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory Store (for testing/dev).
type Memory struct {
	mu      sync.RWMutex
	records map[key][]Record
}

type key struct {
	EmployeeID string
	Year       int
}

func NewMemory() *Memory {
	return &Memory{records: make(map[key][]Record)}
}

// Append adds a single record. Append-only.
func (m *Memory) Append(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{EmployeeID: rec.EmployeeID, Year: rec.Year}
	recs := m.records[k]
	for _, existing := range recs {
		if existing.Month == rec.Month && existing.Version == rec.Version {
			return ErrDuplicateVersion
		}
	}

	i := sort.Search(len(recs), func(i int) bool {
		if recs[i].Month != rec.Month {
			return recs[i].Month > rec.Month
		}
		return recs[i].Version > rec.Version
	})
	recs = append(recs, Record{})
	copy(recs[i+1:], recs[i:])
	recs[i] = rec
	m.records[k] = recs
	return nil
}

// History returns a copy of the records of the employee and year.
func (m *Memory) History(_ context.Context, employeeID string, year int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := m.records[key{EmployeeID: employeeID, Year: year}]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out, nil
}
