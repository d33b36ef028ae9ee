/*
handlers.go - HTTP handlers of the payroll service

ENDPOINTS:

	POST   /api/payroll/calculate                 Calculate one period, store nothing
	POST   /api/employees/{employeeID}/payroll    Calculate and record a period
	GET    /api/employees/{employeeID}/payroll    Effective results of a year (?year=, &all=true for every version)
	GET    /api/employees/{employeeID}/ytd        Year-to-date totals (?year=, &month=)
	POST   /api/identifiers/validate              Check a BSN, RSIN, loonheffingennummer or KvK number
	GET    /api/ratetables                        Loaded tax years
	GET    /api/ratetables/{year}                 One rate table

ERROR HANDLING:
  - 400: Malformed JSON, unparsable amounts or dates, unknown identifier kind
  - 404: No rate table for the tax year
  - 409: Ledger version conflict
  - 422: Input rejected by validation, with one issue per field
  - 500: Invariant violation or storage failure
*/
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/loonengine/payroll-engine/internal/calculation"
	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/internal/identifier"
	"github.com/loonengine/payroll-engine/internal/ledger"
	"github.com/loonengine/payroll-engine/internal/ratetable"
	"github.com/rs/zerolog/hlog"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *calculation.Engine
	Ledger *ledger.Ledger
	Rates  *ratetable.Registry
}

// NewHandler creates a handler. The engine must use rates as its rate source.
func NewHandler(engine *calculation.Engine, l *ledger.Ledger, rates *ratetable.Registry) *Handler {
	return &Handler{Engine: engine, Ledger: l, Rates: rates}
}

// =============================================================================
// PAYROLL
// =============================================================================

// Calculate runs the engine for one period without recording the result.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body", err)
		return
	}

	result, err := h.calculate(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RecordPayroll calculates a period and appends it to the employee's ledger.
// Recording a month again stores a correction as the next version.
func (h *Handler) RecordPayroll(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body", err)
		return
	}
	req.Employee.EmployeeID = employeeID

	result, err := h.calculate(req.CalculateRequest)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rec, err := h.Ledger.Record(r.Context(), result, req.Reason)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	totals, err := h.Ledger.YearToDate(r.Context(), employeeID, rec.Year, rec.Month)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().
		Str("employee", employeeID).
		Int("year", rec.Year).
		Int("month", rec.Month).
		Int("version", rec.Version).
		Msg("payroll recorded")
	writeJSON(w, http.StatusCreated, RecordResponse{Record: rec, YearToDate: totals})
}

// ListPayroll returns the effective result of each recorded month, or every
// version with all=true.
func (h *Handler) ListPayroll(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, err := queryInt(r, "year", 0)
	if err != nil || year == 0 {
		h.fail(w, r, &domain.ValidationError{Field: "year", Constraint: "is required", Value: r.URL.Query().Get("year")})
		return
	}

	var records []ledger.Record
	if r.URL.Query().Get("all") == "true" {
		records, err = h.Ledger.History(r.Context(), employeeID, year)
	} else {
		records, err = h.Ledger.Effective(r.Context(), employeeID, year)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if records == nil {
		records = []ledger.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// YearToDate returns the totals of the effective results through a month
// (December when omitted).
func (h *Handler) YearToDate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, err := queryInt(r, "year", 0)
	if err != nil || year == 0 {
		h.fail(w, r, &domain.ValidationError{Field: "year", Constraint: "is required", Value: r.URL.Query().Get("year")})
		return
	}
	month, err := queryInt(r, "month", 12)
	if err != nil {
		h.fail(w, r, &domain.ValidationError{Field: "month", Constraint: "must be a number", Value: r.URL.Query().Get("month")})
		return
	}

	totals, err := h.Ledger.YearToDate(r.Context(), employeeID, year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (h *Handler) calculate(req CalculateRequest) (domain.PayrollResult, error) {
	emp, err := req.Employee.ToDomain()
	if err != nil {
		return domain.PayrollResult{}, badRequest{fmt.Errorf("employee: %w", err)}
	}
	period, err := req.Period.ToDomain()
	if err != nil {
		return domain.PayrollResult{}, badRequest{fmt.Errorf("period: %w", err)}
	}
	mode := domain.TaxProrationMode(req.TaxProration)
	if mode != "" && !mode.Valid() {
		return domain.PayrollResult{}, &domain.ValidationError{
			Field: "taxProration", Constraint: "must be 'nominal' or 'effective'", Value: req.TaxProration,
		}
	}
	return h.Engine.WithTaxProration(mode).Calculate(emp, req.Company, period)
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

// ValidateIdentifier checks a Dutch identifier. An invalid value is a normal
// 200 response with valid=false and a reason.
func (h *Handler) ValidateIdentifier(w http.ResponseWriter, r *http.Request) {
	var req IdentifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body", err)
		return
	}
	result, err := identifier.Validate(identifier.Kind(req.Kind), req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_kind", "unknown identifier kind", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// RATE TABLES
// =============================================================================

// ListRateTables lists the loaded tax years.
func (h *Handler) ListRateTables(w http.ResponseWriter, r *http.Request) {
	years := h.Rates.Years()
	out := make([]RateTableSummaryDTO, 0, len(years))
	for _, y := range years {
		rt, err := h.Rates.Lookup(y)
		if err != nil {
			continue
		}
		out = append(out, RateTableSummaryDTO{Year: rt.Year, Source: rt.Source})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRateTable returns the rate table of one tax year.
func (h *Handler) GetRateTable(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_year", "year must be a number", err)
		return
	}
	rt, err := h.Rates.Lookup(year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// =============================================================================
// HELPERS
// =============================================================================

// badRequest marks input that could not be decoded into domain values.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

// fail maps an error to its HTTP status and writes it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var br badRequest
	switch {
	case errors.As(err, &br):
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body", err)
	case errors.Is(err, domain.ErrValidation):
		resp := ErrorResponse{Error: "validation failed", Code: "validation_failed", Details: err.Error(), Issues: issues(err)}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, domain.ErrConfiguration):
		writeError(w, http.StatusNotFound, "rate_table_not_found", "no rate table for the tax year", err)
	case errors.Is(err, ledger.ErrDuplicateVersion):
		writeError(w, http.StatusConflict, "duplicate_version", "payroll version already recorded", err)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		code := "internal_error"
		if errors.Is(err, domain.ErrInvariant) {
			code = "invariant_violation"
		}
		writeError(w, http.StatusInternalServerError, code, "internal error", err)
	}
}

func issues(err error) []FieldIssueDTO {
	var many domain.ValidationErrors
	if errors.As(err, &many) {
		out := make([]FieldIssueDTO, 0, len(many))
		for _, v := range many {
			out = append(out, FieldIssueDTO{Field: v.Field, Constraint: v.Constraint, Value: v.Value})
		}
		return out
	}
	var one *domain.ValidationError
	if errors.As(err, &one) {
		return []FieldIssueDTO{{Field: one.Field, Constraint: one.Constraint, Value: one.Value}}
	}
	return nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string, err error) {
	resp := ErrorResponse{Error: message, Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
