// Package ratetable keeps the statutory rate tables by tax year.
package ratetable

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/loonengine/payroll-engine/internal/config"
	"github.com/loonengine/payroll-engine/internal/domain"
)

//go:embed tables/*.yaml
var builtinFS embed.FS

// Registry maps tax years to rate tables. It is immutable once built, so
// concurrent lookups need no locking.
type Registry struct {
	tables map[int]*domain.RateTable
}

// NewRegistry builds a registry from already validated tables. A later table
// for the same year replaces an earlier one.
func NewRegistry(tables ...*domain.RateTable) *Registry {
	r := &Registry{tables: make(map[int]*domain.RateTable, len(tables))}
	for _, t := range tables {
		if t != nil {
			r.tables[t.Year] = t
		}
	}
	return r
}

// Builtin returns the registry of embedded rate tables.
func Builtin() (*Registry, error) {
	entries, err := builtinFS.ReadDir("tables")
	if err != nil {
		return nil, fmt.Errorf("failed to list built-in rate tables: %w", err)
	}

	parser := config.NewInputParser()
	tables := make([]*domain.RateTable, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("tables/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in rate table %s: %w", e.Name(), err)
		}
		t, err := parser.ParseRateTable(data, "builtin/"+e.Name())
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewRegistry(tables...), nil
}

// LoadDir loads every *.yaml / *.yml file in dir on top of base (which may be
// nil). Files override base tables of the same year.
func LoadDir(dir string, base *Registry) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table directory %s: %w", dir, err)
	}

	var tables []*domain.RateTable
	if base != nil {
		for _, year := range base.Years() {
			tables = append(tables, base.tables[year])
		}
	}

	parser := config.NewInputParser()
	seen := make(map[int]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		t, err := parser.LoadRateTable(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[t.Year]; dup {
			return nil, fmt.Errorf("tax year %d defined in both %s and %s", t.Year, prev, name)
		}
		seen[t.Year] = name
		tables = append(tables, t)
	}
	return NewRegistry(tables...), nil
}

// Lookup returns the table for a tax year.
func (r *Registry) Lookup(year int) (*domain.RateTable, error) {
	t, ok := r.tables[year]
	if !ok {
		return nil, &domain.ConfigurationError{Year: year, Reason: "no rate table loaded"}
	}
	return t, nil
}

// Years lists the loaded tax years in ascending order.
func (r *Registry) Years() []int {
	years := make([]int, 0, len(r.tables))
	for y := range r.tables {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
