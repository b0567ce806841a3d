/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	restaurant data for demos. Each scenario writes the demo roster, a run
	of POS sales and the matching shifts.

AVAILABLE SCENARIOS:

	single-day:     One trading day of sales and shifts
	typical-week:   Seven generated days
	busy-month:     Twenty-eight generated days, weekly report buckets
	overtime-week:  Generated sales with a scripted roster that pushes the
	                chef past the overtime threshold

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Save the demo roster
 3. Generate sales and shifts ending on end_date (default today)

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "typical-week", "end_date": "2025-03-16"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler
  - factory/sample.go: Menu, staff and generators
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/warp/restaurant-engine/factory"
	"github.com/warp/restaurant-engine/generic"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "single-day",
		Name:        "Single Day",
		Description: "One trading day of generated sales and shifts",
		Days:        1,
	},
	{
		ID:          "typical-week",
		Name:        "Typical Week",
		Description: "Seven days of generated sales and shifts for the full roster",
		Days:        7,
	},
	{
		ID:          "busy-month",
		Name:        "Busy Month",
		Description: "Twenty-eight days of generated trading",
		Days:        28,
	},
	{
		ID:          "overtime-week",
		Name:        "Overtime Week",
		Description: "The chef works five 9.5 hour shifts and crosses the overtime threshold",
		Days:        7,
	},
}

// scenarioSeed keeps demo data identical between loads.
const scenarioSeed = 42

// resetter is implemented by stores that can clear all data.
type resetter interface {
	Reset(ctx context.Context) error
}

var errResetUnsupported = errors.New("store does not support reset")

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns all available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if s, ok := findScenario(current); ok {
		writeJSON(w, http.StatusOK, s)
		return
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
}

// LoadScenario resets the database and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	scenario, ok := findScenario(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	end := generic.DateOf(h.now())
	if req.EndDate != "" {
		d, err := generic.ParseDate(req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date", err)
			return
		}
		end = d
	}

	ctx := r.Context()
	if err := h.reset(ctx); err != nil {
		h.writeStoreError(w, r, "Failed to reset database", err)
		return
	}

	var (
		result factory.SeedResult
		err    error
	)
	switch scenario.ID {
	case "overtime-week":
		result, err = h.loadOvertimeScenario(ctx, end)
	default:
		result, err = factory.NewSampleGenerator(scenarioSeed).Seed(ctx, h.Store, scenario.Days, end)
	}
	if err != nil {
		h.writeStoreError(w, r, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.mu.Lock()
	h.currentScenario = scenario.ID
	h.mu.Unlock()

	h.logger.Info("scenario loaded",
		zap.String("scenario", scenario.ID),
		zap.Stringer("period", result.Period),
		zap.Int("sales", result.Sales),
		zap.Int("shifts", result.Shifts),
	)
	writeJSON(w, http.StatusOK, LoadScenarioResponse{
		Scenario:  scenario.ID,
		From:      result.Period.Start.Format(generic.DateLayout),
		To:        result.Period.End.Format(generic.DateLayout),
		Employees: result.Employees,
		Sales:     result.Sales,
		Shifts:    result.Shifts,
	})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.reset(r.Context()); err != nil {
		h.writeStoreError(w, r, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) reset(ctx context.Context) error {
	rs, ok := h.Store.(resetter)
	if !ok {
		return errResetUnsupported
	}
	if err := rs.Reset(ctx); err != nil {
		return err
	}
	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()
	return nil
}

func findScenario(id string) (ScenarioDTO, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return ScenarioDTO{}, false
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadOvertimeScenario writes a week of generated sales and a scripted roster:
// the chef works 08:00-17:30 on five consecutive days (47.5h), two servers
// work 8h shifts on four days.
func (h *Handler) loadOvertimeScenario(ctx context.Context, end time.Time) (factory.SeedResult, error) {
	period := generic.LastNDays(7, end)
	result := factory.SeedResult{Period: period}

	staff := factory.Staff()
	byID := make(map[string]generic.Employee, len(staff))
	for _, emp := range staff {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return result, err
		}
		byID[emp.ID] = emp
		result.Employees++
	}

	gen := factory.NewSampleGenerator(scenarioSeed)
	var shifts []generic.ShiftRecord
	for i, day := range period.Days() {
		ids, err := h.Store.InsertSales(ctx, gen.Sales(day))
		if err != nil {
			return result, err
		}
		result.Sales += len(ids)

		if i < 5 {
			shifts = append(shifts, scriptedShift(byID["EMP002"], day, 8, 0, 9*time.Hour+30*time.Minute))
		}
		if i < 4 {
			shifts = append(shifts,
				scriptedShift(byID["EMP003"], day, 11, 0, 8*time.Hour),
				scriptedShift(byID["EMP004"], day, 14, 30, 8*time.Hour),
			)
		}
	}

	ids, err := h.Store.InsertShifts(ctx, shifts)
	if err != nil {
		return result, err
	}
	result.Shifts = len(ids)
	return result, nil
}

func scriptedShift(emp generic.Employee, day time.Time, hour, minute int, length time.Duration) generic.ShiftRecord {
	in := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return generic.ShiftRecord{
		EmployeeID: emp.ID,
		ClockIn:    in,
		ClockOut:   in.Add(length),
		HourlyRate: emp.HourlyRate,
	}
}
