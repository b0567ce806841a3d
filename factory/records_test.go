package factory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/generic/store"
)

func TestParseSales(t *testing.T) {
	f := NewRecordFactory()
	data := []byte(`[
		{"sale_date": "2024-01-15", "sale_time": "12:30:00", "item_name": "Burger Deluxe", "item_category": "Main", "quantity": 2, "unit_price": 18.50, "employee_id": "EMP003"},
		{"timestamp": "2024-01-15T20:05:00Z", "item_name": "Latte", "quantity": 1, "unit_price": "4.80"},
		{"sale_date": "2024-01-15", "sale_time": "13:00", "item_name": "Latte", "unit_price": 4.80},
		{"sale_date": "2024-01-15", "sale_time": "13:00", "item_name": "Latte", "quantity": -1, "unit_price": 4.80}
	]`)

	sales, skipped, err := f.ParseSales(data)
	require.NoError(t, err)

	require.Len(t, sales, 2)
	assert.Equal(t, time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC), sales[0].Timestamp)
	assert.Equal(t, "Main", sales[0].Category)
	assert.True(t, sales[0].LineTotal().Equal(decimal.RequireFromString("37")))
	assert.True(t, sales[1].UnitPrice.Equal(decimal.RequireFromString("4.8")))

	require.Len(t, skipped, 2)
	assert.Equal(t, 2, skipped[0].Index)
	assert.Contains(t, skipped[0].Reason, "quantity")
	assert.Equal(t, 3, skipped[1].Index)
}

func TestParseSales_MalformedDocument(t *testing.T) {
	_, _, err := NewRecordFactory().ParseSales([]byte(`{"not": "an array"}`))
	assert.ErrorIs(t, err, generic.ErrValidation)
}

func TestShiftFromJSON_CrossesMidnightWithBreaks(t *testing.T) {
	rate := decimal.RequireFromString("24.00")
	shift, err := NewRecordFactory().ShiftFromJSON(ShiftJSON{
		EmployeeID:   "EMP006",
		ShiftDate:    "2024-01-15",
		StartTime:    "6:00 PM",
		EndTime:      "02:00",
		HourlyRate:   &rate,
		BreakMinutes: 15,
		MealBreaks:   []MealBreakJSON{{Duration: 15}},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 16, 2, 0, 0, 0, time.UTC), shift.ClockOut)
	assert.Equal(t, 30, shift.BreakMinutes)
	assert.True(t, shift.Hours().Equal(decimal.RequireFromString("7.5")))
}

func TestImportShifts_RateFromEmployee(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.SaveEmployee(ctx, generic.Employee{ID: "EMP001", Name: "Alice Johnson", HourlyRate: decimal.RequireFromString("28.50"), Active: true}))

	data := []byte(`[
		{"employee_id": "EMP001", "employee_name": "Alice Johnson", "shift_date": "2024-01-15", "start_time": "09:00", "end_time": "17:30"},
		{"employee_id": "EMP404", "shift_date": "2024-01-15", "start_time": "09:00", "end_time": "17:30"},
		{"employee_id": "EMP001", "shift_date": "2024-01-16", "start_time": "09:00"}
	]`)

	result, err := NewRecordFactory().ImportShifts(ctx, mem, data)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Skipped, 2)
	assert.Contains(t, result.Skipped[0].Reason, "EMP404")

	shift, err := mem.GetShift(ctx, result.IDs[0])
	require.NoError(t, err)
	assert.True(t, shift.HourlyRate.Equal(decimal.RequireFromString("28.5")))
}

func TestImportSales_NothingValid(t *testing.T) {
	mem := store.NewMemory()

	result, err := NewRecordFactory().ImportSales(context.Background(), mem, []byte(`[{"item_name": ""}]`))
	require.NoError(t, err)

	assert.Zero(t, result.Imported)
	assert.Len(t, result.Skipped, 1)
}

func TestParseEmployees_ActiveDefault(t *testing.T) {
	employees, err := NewRecordFactory().ParseEmployees([]byte(`[
		{"employee_id": "EMP001", "name": "Alice Johnson", "position": "Manager", "hourly_rate": 28.5},
		{"employee_id": "EMP009", "name": "Ivy Chen", "hourly_rate": "21", "active": false}
	]`))
	require.NoError(t, err)

	require.Len(t, employees, 2)
	assert.True(t, employees[0].Active)
	assert.False(t, employees[1].Active)
}
