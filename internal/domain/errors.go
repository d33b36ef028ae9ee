package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrValidation marks malformed or out-of-range input. The caller fixes
	// the input; it is never retried automatically.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration marks a missing or broken rate table for a tax year.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvariant marks an internal consistency failure of the engine.
	ErrInvariant = errors.New("invariant violation")
)

// ValidationError describes one rejected field.
type ValidationError struct {
	Field      string // e.g. "employee.grossMonthlySalary"
	Constraint string // e.g. "must be positive"
	Value      string // offending value as entered, may be empty
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %s", e.Field, e.Constraint)
	}
	return fmt.Sprintf("%s %s (got %q)", e.Field, e.Constraint, e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ValidationErrors collects every field failure of one input.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, e := range v {
		errs = append(errs, e)
	}
	return errs
}

// Fields lists the rejected field names in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, e := range v {
		fields = append(fields, e.Field)
	}
	return fields
}

// ConfigurationError is returned when a tax year has no usable rate table.
type ConfigurationError struct {
	Year   int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no rate table for tax year %d: %s", e.Year, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// InvariantViolation signals that a computed result is internally
// inconsistent. It indicates a bug in the engine, never bad input.
type InvariantViolation struct {
	Field    string
	Expected string
	Actual   string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated on %s: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

func (e *InvariantViolation) Unwrap() error { return ErrInvariant }

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation)
}
