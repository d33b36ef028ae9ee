/*
dto.go - Request and response bodies of the HTTP API

Amounts travel as decimal strings ("3500.00") and dates as YYYY-MM-DD so no
precision is lost on the way in. Results are returned as the engine produced
them; their decimals marshal as strings as well.
*/
package api

import (
	"github.com/loonengine/payroll-engine/internal/config"
	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/internal/ledger"
)

// CalculateRequest is the body of POST /api/payroll/calculate.
type CalculateRequest struct {
	Employee     config.EmployeeData `json:"employee"`
	Company      domain.CompanyInput `json:"company"`
	Period       config.PeriodData   `json:"period"`
	TaxProration string              `json:"taxProration,omitempty"`
}

// RecordRequest is the body of POST /api/employees/{employeeID}/payroll. The
// employee id in the path wins over the body.
type RecordRequest struct {
	CalculateRequest
	Reason string `json:"reason,omitempty"`
}

// RecordResponse returns the stored record with the year-to-date totals
// through its month.
type RecordResponse struct {
	Record     ledger.Record           `json:"record"`
	YearToDate domain.CumulativeTotals `json:"yearToDate"`
}

// IdentifierRequest is the body of POST /api/identifiers/validate.
type IdentifierRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// RateTableSummaryDTO lists one loaded rate table.
type RateTableSummaryDTO struct {
	Year   int    `json:"year"`
	Source string `json:"source"`
}

// FieldIssueDTO is one rejected input field.
type FieldIssueDTO struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Value      string `json:"value,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details string          `json:"details,omitempty"`
	Issues  []FieldIssueDTO `json:"issues,omitempty"`
}
