/*
handlers.go - HTTP request handlers for the REST API

PURPOSE:
  Implements HTTP handlers for all API endpoints. Each handler parses the
  request, calls the store or report service, and writes a JSON response.

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Sales, shifts and employees
  - Reports: Period report generation
  - Records: JSON to record conversion (shared with file import)
  - Aggregator: Per-employee labor lookups

REQUEST FLOW:
  1. Parse HTTP request (path, query, body)
  2. Convert the body through the record factory
  3. Call the store or report service
  4. Serialize response

PERIOD PARAMETERS:
  ?from=YYYY-MM-DD&to=YYYY-MM-DD, both inclusive. A single bound means a
  single day. No bounds means the configured default period.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, reversed periods
  - 404: Record not found
  - 500: Storage errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/restaurant-engine/factory"
	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/report"
	"github.com/warp/restaurant-engine/roster"
)

// maxBodyBytes caps request bodies, imports included.
const maxBodyBytes = 10 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      generic.Store
	Reports    *report.Service
	Records    *factory.RecordFactory
	Aggregator roster.Aggregator

	logger *zap.Logger
	now    func() time.Time

	// Track currently loaded scenario
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler over store.
func NewHandler(store generic.Store, reports *report.Service, aggregator roster.Aggregator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:      store,
		Reports:    reports,
		Records:    factory.NewRecordFactory(),
		Aggregator: aggregator,
		logger:     logger.Named("api"),
		now:        time.Now,
	}
}

// =============================================================================
// SALE HANDLERS
// =============================================================================

// ListSales returns sales in the requested period, optionally for one employee.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	period, err := h.periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	var sales []generic.SaleRecord
	if emp := r.URL.Query().Get("employee_id"); emp != "" {
		sales, err = h.Store.QuerySalesByEmployee(r.Context(), period, emp)
	} else {
		sales, err = h.Store.QuerySales(r.Context(), period)
	}
	if err != nil {
		h.writeStoreError(w, r, "Failed to list sales", err)
		return
	}

	dtos := make([]SaleDTO, len(sales))
	for i, s := range sales {
		dtos[i] = toSaleDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSale returns a single sale.
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.Store.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, r, "Failed to get sale", err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleDTO(sale))
}

// CreateSale records one sale.
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sale, err := h.Records.SaleFromJSON(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sale", err)
		return
	}
	id, err := h.Store.InsertSale(r.Context(), sale)
	if err != nil {
		h.writeStoreError(w, r, "Failed to record sale", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// ImportSales records a JSON array of sales. Malformed entries are skipped
// and listed in the response.
func (h *Handler) ImportSales(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Records.ImportSales(r.Context(), h.Store, data)
	if err != nil {
		h.writeStoreError(w, r, "Failed to import sales", err)
		return
	}
	h.logger.Info("sales imported", zap.Int("imported", result.Imported), zap.Int("skipped", len(result.Skipped)))
	writeJSON(w, http.StatusOK, result)
}

// PurgeSales deletes sales in the requested period. Both bounds are required.
func (h *Handler) PurgeSales(w http.ResponseWriter, r *http.Request) {
	h.purge(w, r, "sales", h.Store.PurgeSales)
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns shifts clocked in during the requested period.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	period, err := h.periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	var shifts []generic.ShiftRecord
	if emp := r.URL.Query().Get("employee_id"); emp != "" {
		shifts, err = h.Store.QueryShiftsByEmployee(r.Context(), period, emp)
	} else {
		shifts, err = h.Store.QueryShifts(r.Context(), period)
	}
	if err != nil {
		h.writeStoreError(w, r, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetShift returns a single shift.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift, err := h.Store.GetShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, r, "Failed to get shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(shift))
}

// CreateShift records one shift. A missing hourly_rate is taken from the
// employee record.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	shift, err := h.Records.ShiftFromJSON(req, h.rateLookup(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}
	id, err := h.Store.InsertShift(r.Context(), shift)
	if err != nil {
		h.writeStoreError(w, r, "Failed to record shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// ImportShifts records a JSON array of shifts.
func (h *Handler) ImportShifts(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Records.ImportShifts(r.Context(), h.Store, data)
	if err != nil {
		h.writeStoreError(w, r, "Failed to import shifts", err)
		return
	}
	h.logger.Info("shifts imported", zap.Int("imported", result.Imported), zap.Int("skipped", len(result.Skipped)))
	writeJSON(w, http.StatusOK, result)
}

// PurgeShifts deletes shifts clocked in during the requested period.
func (h *Handler) PurgeShifts(w http.ResponseWriter, r *http.Request) {
	h.purge(w, r, "shifts", h.Store.PurgeShifts)
}

func (h *Handler) rateLookup(ctx context.Context) factory.RateLookup {
	return func(id string) (decimal.Decimal, bool) {
		emp, err := h.Store.GetEmployee(ctx, id)
		if err != nil {
			return decimal.Zero, false
		}
		return emp.HourlyRate, true
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.writeStoreError(w, r, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, r, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// CreateEmployee creates or updates an employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp := factory.EmployeeFromJSON(req)
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		h.writeStoreError(w, r, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployeeLabor returns one employee's hours and cost over the requested
// period. Overtime is computed over that employee's shifts in the period.
func (h *Handler) GetEmployeeLabor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	period, err := h.periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	if _, err := h.Store.GetEmployee(r.Context(), id); err != nil {
		h.writeStoreError(w, r, "Failed to get employee", err)
		return
	}
	shifts, err := h.Store.QueryShiftsByEmployee(r.Context(), period, id)
	if err != nil {
		h.writeStoreError(w, r, "Failed to list shifts", err)
		return
	}

	summary := h.Aggregator.Summarize(period, shifts)
	writeJSON(w, http.StatusOK, toEmployeeLaborDTO(period, id, summary.ByEmployee[id]))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetReport generates the combined report for the requested period.
// ?format=csv returns the CSV export instead of JSON.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	format := report.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		var err error
		if format, err = report.ParseFormat(f); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid format", err)
			return
		}
	}
	period, err := h.periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	rep, err := h.Reports.Generate(r.Context(), period)
	if err != nil {
		h.writeStoreError(w, r, "Failed to generate report", err)
		return
	}

	switch format {
	case report.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="report-%s_%s.csv"`,
				period.Start.Format(generic.DateLayout), period.End.Format(generic.DateLayout)))
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if err := report.Write(w, rep, format); err != nil {
		h.logger.Warn("report write failed", zap.Error(err))
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// periodFromQuery reads ?from and ?to. A single bound selects one day; none
// selects the configured default period.
func (h *Handler) periodFromQuery(r *http.Request) (generic.Period, error) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" && to == "" {
		return h.Reports.DefaultPeriod(h.now()), nil
	}
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	return parsePeriod(from, to)
}

func parsePeriod(from, to string) (generic.Period, error) {
	start, err := generic.ParseDate(from)
	if err != nil {
		return generic.Period{}, &generic.ValidationError{Field: "from", Message: err.Error()}
	}
	end, err := generic.ParseDate(to)
	if err != nil {
		return generic.Period{}, &generic.ValidationError{Field: "to", Message: err.Error()}
	}
	return generic.NewPeriod(start, end)
}

func (h *Handler) purge(w http.ResponseWriter, r *http.Request, what string, fn func(context.Context, generic.Period) (int64, error)) {
	q := r.URL.Query()
	if q.Get("from") == "" || q.Get("to") == "" {
		writeError(w, http.StatusBadRequest, "Purge requires from and to", nil)
		return
	}
	period, err := parsePeriod(q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	n, err := fn(r.Context(), period)
	if err != nil {
		h.writeStoreError(w, r, "Failed to purge "+what, err)
		return
	}
	h.logger.Info("records purged", zap.String("table", what), zap.Stringer("period", period), zap.Int64("deleted", n))
	writeJSON(w, http.StatusOK, PurgeResponse{
		From:    period.Start.Format(generic.DateLayout),
		To:      period.End.Format(generic.DateLayout),
		Deleted: n,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case generic.IsClientError(err):
		return http.StatusBadRequest
	case generic.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err), zap.String("request_id", middleware.GetReqID(r.Context())))
	}
	writeError(w, status, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
