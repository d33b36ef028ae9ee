//go:build unit

package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	v := decimal.NewFromFloat(1234.567)
	got := FormatCurrency(v)
	want := "€1234.57"
	if got != want {
		t.Errorf("FormatCurrency(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.RequireFromString("0.0264")
	got := FormatPercentage(v)
	want := "2.64%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPeriod(t *testing.T) {
	if got := FormatPeriod(2025, 3); got != "2025-03" {
		t.Errorf("FormatPeriod = %q", got)
	}
}
