package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/loonengine/payroll-engine/internal/domain"
)

// Statement is what formatters render: one or more monthly results and,
// for a series, the year-to-date totals.
type Statement struct {
	Results []domain.PayrollResult   `json:"results"`
	Totals  *domain.CumulativeTotals `json:"totals,omitempty"`
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(st *Statement) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Statement) ([]byte, error)
}

func (ff FormatterFunc) Format(st *Statement) ([]byte, error) { return ff.F(st) }
func (ff FormatterFunc) Name() string                         { return ff.ID }

// WriteFormatted runs a formatter and writes the output to a timestamped
// file in dir.
func WriteFormatted(f Formatter, st *Statement, dir, ext string) (string, error) {
	data, err := f.Format(st)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("payroll_statement_%s.%s", time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter, resolving aliases.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"json-pretty": "json",
	"text":        "console",
	"table":       "console",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedResults(st *Statement) []domain.PayrollResult {
	results := append([]domain.PayrollResult(nil), st.Results...)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Year != results[j].Year {
			return results[i].Year < results[j].Year
		}
		return results[i].Month < results[j].Month
	})
	return results
}
