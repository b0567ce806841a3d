/*
scenarios_test.go - Tests for demo scenario loading

Each scenario must load without error and produce a report whose numbers
hang together.
*/
package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_AllScenariosLoadWithoutError(t *testing.T) {
	for _, s := range scenarios {
		t.Run(s.ID, func(t *testing.T) {
			// GIVEN: A fresh database
			_, router := setupTestHandler(t)

			// WHEN: Loading the scenario
			rec := do(t, router, http.MethodPost, "/api/scenarios/load",
				`{"scenario_id": "`+s.ID+`", "end_date": "2025-03-16"}`)

			// THEN: It loads the full roster and the requested days of sales
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			resp := decode[LoadScenarioResponse](t, rec)
			assert.Equal(t, "2025-03-16", resp.To)
			assert.Equal(t, 8, resp.Employees)
			assert.GreaterOrEqual(t, resp.Sales, 80*s.Days)
			assert.Positive(t, resp.Shifts)

			current := decode[ScenarioDTO](t, do(t, router, http.MethodGet, "/api/scenarios/current", ""))
			assert.Equal(t, s.ID, current.ID)
		})
	}
}

func TestScenario_ReloadReplacesData(t *testing.T) {
	_, router := setupTestHandler(t)
	body := `{"scenario_id": "single-day", "end_date": "2025-03-16"}`

	first := decode[LoadScenarioResponse](t, do(t, router, http.MethodPost, "/api/scenarios/load", body))
	second := decode[LoadScenarioResponse](t, do(t, router, http.MethodPost, "/api/scenarios/load", body))

	// Same seed, same data, and the reset means no duplicates.
	assert.Equal(t, first, second)
	sales := decode[[]SaleDTO](t, do(t, router, http.MethodGet, "/api/sales?from=2025-03-16", ""))
	assert.Len(t, sales, second.Sales)
}

func TestScenario_OvertimeWeek(t *testing.T) {
	// GIVEN: The overtime scenario (chef: five 9.5h shifts = 47.5h at 25.00)
	_, router := setupTestHandler(t)
	rec := do(t, router, http.MethodPost, "/api/scenarios/load",
		`{"scenario_id": "overtime-week", "end_date": "2025-03-16"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// WHEN: Reading the chef's labor for the week
	rec = do(t, router, http.MethodGet, "/api/employees/EMP002/labor?from=2025-03-10&to=2025-03-16", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	labor := decode[EmployeeLaborDTO](t, rec)

	// THEN: 7.5h are overtime; with the default multiplier 1.0 cost is hours x rate
	assert.Equal(t, 5, labor.Shifts)
	assert.Equal(t, "47.50", labor.TotalHours)
	assert.Equal(t, "7.50", labor.OvertimeHours)
	assert.Equal(t, "1187.50", labor.TotalCost)
}

func TestScenario_Unknown(t *testing.T) {
	_, router := setupTestHandler(t)

	rec := do(t, router, http.MethodPost, "/api/scenarios/load", `{"scenario_id": "nope"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetDatabase(t *testing.T) {
	_, router := setupTestHandler(t)
	seedDay(t, router)

	rec := do(t, router, http.MethodPost, "/api/scenarios/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)

	employees := decode[[]EmployeeDTO](t, do(t, router, http.MethodGet, "/api/employees", ""))
	assert.Empty(t, employees)
}
