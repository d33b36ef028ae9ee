package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee.grossMonthlySalary", Constraint: "must be positive", Value: "0"},
		{Field: "period.month", Constraint: "must be between 1 and 12", Value: "13"},
	}

	assert.Equal(t, []string{"employee.grossMonthlySalary", "period.month"}, errs.Fields())
	assert.Equal(t,
		`validation failed: employee.grossMonthlySalary must be positive (got "0"); period.month must be between 1 and 12 (got "13")`,
		errs.Error())

	wrapped := fmt.Errorf("calculate: %w", errs)
	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.True(t, IsClientError(wrapped))

	var ve *ValidationError
	require.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "employee.grossMonthlySalary", ve.Field)
}

func TestValidationError_NoValue(t *testing.T) {
	err := &ValidationError{Field: "employee.taxTable", Constraint: "is required"}
	assert.Equal(t, "employee.taxTable is required", err.Error())
}

func TestConfigurationError(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &ConfigurationError{Year: 1999, Reason: "not loaded"})

	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.False(t, IsClientError(err))
	assert.Contains(t, err.Error(), "tax year 1999")
}

func TestInvariantViolation(t *testing.T) {
	err := &InvariantViolation{Field: "netMonthlySalary", Expected: "2000.00", Actual: "2000.01"}

	assert.True(t, errors.Is(err, ErrInvariant))
	assert.Equal(t, "invariant violated on netMonthlySalary: expected 2000.00, got 2000.01", err.Error())
}
