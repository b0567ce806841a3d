package report_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/generic/mocks"
	"github.com/warp/restaurant-engine/generic/store"
	"github.com/warp/restaurant-engine/pos"
	"github.com/warp/restaurant-engine/report"
	"github.com/warp/restaurant-engine/roster"
)

var (
	day    = generic.Date(2025, 3, 10)
	period = generic.SingleDay(day)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixtures() ([]generic.SaleRecord, []generic.ShiftRecord) {
	sales := []generic.SaleRecord{
		{Timestamp: day.Add(12 * time.Hour), ItemName: "Burger", Quantity: 3, UnitPrice: dec("5.00")},
		{Timestamp: day.Add(13 * time.Hour), ItemName: "Burger", Quantity: 2, UnitPrice: dec("5.00")},
	}
	shifts := []generic.ShiftRecord{
		{EmployeeID: "EMP001", ClockIn: day.Add(9 * time.Hour), ClockOut: day.Add(17*time.Hour + 30*time.Minute), HourlyRate: dec("15.00")},
	}
	return sales, shifts
}

func build(t *testing.T) report.Report {
	t.Helper()
	sales, shifts := fixtures()
	r, err := report.Build(period, pos.Summarize(period, sales), roster.NewAggregator().Summarize(period, shifts))
	require.NoError(t, err)
	return r
}

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// =============================================================================
// BUILD
// =============================================================================

func TestBuild_Margin(t *testing.T) {
	r := build(t)

	assert.True(t, r.Totals.Revenue.Equal(dec("25")))
	assert.True(t, r.Totals.LaborCost.Equal(dec("127.5")))
	assert.True(t, r.Totals.Margin.Equal(dec("-102.5")))
	assert.Nil(t, r.Details)
}

func TestBuild_Idempotent(t *testing.T) {
	a, b := build(t), build(t)

	if diff := cmp.Diff(a, b, decimalComparer); diff != "" {
		t.Errorf("Build not idempotent (-first +second):\n%s", diff)
	}

	var ja, jb bytes.Buffer
	require.NoError(t, report.WriteJSON(&ja, a))
	require.NoError(t, report.WriteJSON(&jb, b))
	assert.Equal(t, ja.String(), jb.String())
}

func TestBuild_MismatchedPeriods(t *testing.T) {
	other := generic.SingleDay(day.AddDate(0, 0, 1))

	_, err := report.Build(period, pos.Summarize(other, nil), roster.NewAggregator().Summarize(period, nil))

	var verr *generic.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "period", verr.Field)
}

func TestBuild_EmptyPeriod(t *testing.T) {
	r, err := report.Build(period, pos.Summarize(period, nil), roster.NewAggregator().Summarize(period, nil))
	require.NoError(t, err)

	assert.Empty(t, r.Sales.ByItem)
	assert.True(t, r.Totals.Revenue.IsZero())
	assert.True(t, r.Totals.Margin.IsZero())
	assert.True(t, r.LaborPercent().IsZero())
}

// =============================================================================
// RENDERERS
// =============================================================================

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, build(t)))

	want := "section,name,quantity,revenue,hours,overtime_hours,labor_cost,margin\n" +
		"sales,Burger,5,25.00,,,,\n" +
		"labor,EMP001,,,8.50,0.00,127.50,\n" +
		"totals,total,5,25.00,8.50,,127.50,-102.50\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_LexicographicRows(t *testing.T) {
	sales := []generic.SaleRecord{
		{Timestamp: day, ItemName: "Latte", Quantity: 1, UnitPrice: dec("4.80")},
		{Timestamp: day, ItemName: "Beef Steak", Quantity: 1, UnitPrice: dec("35")},
	}
	shifts := []generic.ShiftRecord{
		{EmployeeID: "EMP008", ClockIn: day, ClockOut: day.Add(time.Hour), HourlyRate: dec("20")},
		{EmployeeID: "EMP002", ClockIn: day, ClockOut: day.Add(time.Hour), HourlyRate: dec("25")},
	}
	r, err := report.Build(period, pos.Summarize(period, sales), roster.NewAggregator().Summarize(period, shifts))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, r))
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))

	require.Len(t, lines, 6)
	assert.True(t, bytes.HasPrefix(lines[1], []byte("sales,Beef Steak,")))
	assert.True(t, bytes.HasPrefix(lines[2], []byte("sales,Latte,")))
	assert.True(t, bytes.HasPrefix(lines[3], []byte("labor,EMP002,")))
	assert.True(t, bytes.HasPrefix(lines[4], []byte("labor,EMP008,")))
	assert.True(t, bytes.HasPrefix(lines[5], []byte("totals,")))
}

func TestWriteJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, build(t)))

	out := buf.String()
	assert.Contains(t, out, `"start": "2025-03-10"`)
	assert.Contains(t, out, `"Burger": {`)
	assert.Contains(t, out, `"total_quantity": 5`)
	assert.Contains(t, out, `"total_revenue": "25.00"`)
	assert.Contains(t, out, `"margin": "-102.50"`)
	assert.NotContains(t, out, `"details"`)

	// With details from the service
	ctx := context.Background()
	mem := store.NewMemory()
	sales, shifts := fixtures()
	sales[0].EmployeeID = "EMP003"
	_, err := mem.InsertSales(ctx, sales)
	require.NoError(t, err)
	_, err = mem.InsertShifts(ctx, shifts)
	require.NoError(t, err)
	generatedAt := time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC)
	svc := report.NewService(mem, roster.NewAggregator(), report.WithClock(func() time.Time { return generatedAt }))

	r, err := svc.Generate(ctx, generic.LastNDays(7, day))
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, report.WriteJSON(&buf, r))

	out = buf.String()
	assert.Contains(t, out, `"generated_at": "2025-03-11T06:00:00Z"`)
	assert.Contains(t, out, `"period_days": 7`)
	assert.Contains(t, out, `"active_days": 1`)
	assert.Contains(t, out, `"active_sales_employees": 1`)
	assert.Contains(t, out, `"total_shifts": 1`)
	assert.Contains(t, out, `"avg_hours_per_shift": "8.50"`)
	assert.Contains(t, out, `"active_employees": 1`)
	assert.Contains(t, out, `"overtime_employees": []`)
}

func TestRenderedMarginMatchesRoundedTotals(t *testing.T) {
	// GIVEN revenue 1.006 and labor cost 0.004 (one minute at 0.24)
	sales := []generic.SaleRecord{{Timestamp: day, ItemName: "Tasting", Quantity: 1, UnitPrice: dec("1.006")}}
	shifts := []generic.ShiftRecord{{EmployeeID: "EMP001", ClockIn: day, ClockOut: day.Add(time.Minute), HourlyRate: dec("0.24")}}
	r, err := report.Build(period, pos.Summarize(period, sales), roster.NewAggregator().Summarize(period, shifts))
	require.NoError(t, err)

	// WHEN rendered
	var j, c bytes.Buffer
	require.NoError(t, report.WriteJSON(&j, r))
	require.NoError(t, report.WriteCSV(&c, r))

	// THEN the printed margin is 1.01 - 0.00, not round(1.002)
	assert.True(t, r.Totals.Margin.Equal(dec("1.002")))
	assert.Contains(t, j.String(), `"revenue": "1.01"`)
	assert.Contains(t, j.String(), `"labor_cost": "0.00"`)
	assert.Contains(t, j.String(), `"margin": "1.01"`)
	assert.Contains(t, c.String(), "totals,total,1,1.01,0.02,,0.00,1.01\n")
}

func TestParseFormat(t *testing.T) {
	f, err := report.ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, report.FormatCSV, f)

	_, err = report.ParseFormat("xml")
	assert.ErrorIs(t, err, generic.ErrValidation)
}

// =============================================================================
// SERVICE
// =============================================================================

func TestService_Generate(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	sales, shifts := fixtures()
	_, err := mem.InsertSales(ctx, sales)
	require.NoError(t, err)
	_, err = mem.InsertShifts(ctx, shifts)
	require.NoError(t, err)
	require.NoError(t, mem.SaveEmployee(ctx, generic.Employee{ID: "EMP001", Name: "Alice Johnson", Position: "Manager", HourlyRate: dec("28.50")}))

	svc := report.NewService(mem, roster.NewAggregator(), report.WithRestaurantName("Dummy Bistro"))
	r, err := svc.Generate(ctx, period)
	require.NoError(t, err)

	assert.True(t, r.Totals.Revenue.Equal(dec("25")))
	require.NotNil(t, r.Details)
	assert.Equal(t, "Dummy Bistro", r.Details.RestaurantName)
	require.Len(t, r.Details.Positions, 1)
	assert.Equal(t, "Manager", r.Details.Positions[0].Position)
	assert.Len(t, r.Details.SalesBuckets, 1)

	// Building from the same records again is bit-identical.
	direct := build(t)
	if diff := cmp.Diff(direct.Totals, r.Totals, decimalComparer); diff != "" {
		t.Errorf("totals differ (-build +service):\n%s", diff)
	}
}

func TestService_Default_Weekly(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	_, err := mem.InsertSale(ctx, generic.SaleRecord{Timestamp: day.AddDate(0, 0, -6), ItemName: "Latte", Quantity: 1, UnitPrice: dec("4.80")})
	require.NoError(t, err)
	_, err = mem.InsertSale(ctx, generic.SaleRecord{Timestamp: day.AddDate(0, 0, -7), ItemName: "Latte", Quantity: 1, UnitPrice: dec("4.80")})
	require.NoError(t, err)

	svc := report.NewService(mem, roster.NewAggregator(), report.WithDefaultPeriod(generic.PeriodWeekly))
	r, err := svc.Default(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 7, r.Period.Len())
	assert.Equal(t, day, r.Period.End)
	assert.Equal(t, 1, r.Sales.Transactions)
}

func TestService_Generate_PropagatesStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	storeErr := &generic.StorageError{Op: "query shifts", Err: errors.New("disk I/O error")}

	mockStore.EXPECT().QuerySales(gomock.Any(), period).Return([]generic.SaleRecord{}, nil)
	mockStore.EXPECT().QueryShifts(gomock.Any(), period).Return(nil, storeErr)

	_, err := report.NewService(mockStore, roster.NewAggregator()).Generate(context.Background(), period)

	assert.Same(t, storeErr, err)
	assert.ErrorIs(t, err, generic.ErrStorage)
}

func TestService_Generate_InvalidPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)

	_, err := report.NewService(mockStore, roster.NewAggregator()).
		Generate(context.Background(), generic.Period{Start: day, End: day.AddDate(0, 0, -1)})

	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}
