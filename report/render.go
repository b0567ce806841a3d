package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/pos"
	"github.com/warp/restaurant-engine/roster"
)

// Sorted map keys keep JSON output byte-stable across runs.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format selects a renderer.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "json" or "csv", case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", &generic.ValidationError{Field: "format", Message: fmt.Sprintf("unknown format %q (want json or csv)", s)}
}

// Write renders r in the given format.
func Write(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r)
	default:
		return WriteJSON(w, r)
	}
}

// =============================================================================
// JSON
// =============================================================================

type periodJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type itemJSON struct {
	TotalQuantity int64  `json:"total_quantity"`
	TotalRevenue  string `json:"total_revenue"`
}

type laborJSON struct {
	Name          string `json:"name,omitempty"`
	TotalHours    string `json:"total_hours"`
	OvertimeHours string `json:"overtime_hours"`
	TotalCost     string `json:"total_cost"`
}

type totalsJSON struct {
	Revenue   string `json:"revenue"`
	LaborCost string `json:"labor_cost"`
	Margin    string `json:"margin"`
}

type detailsJSON struct {
	RestaurantName     string                 `json:"restaurant_name,omitempty"`
	GeneratedAt        string                 `json:"generated_at"`
	PeriodDays         int                    `json:"period_days"`
	Transactions       int                    `json:"transactions"`
	ActiveDays         int                    `json:"active_days"`
	SalesEmployees     int                    `json:"active_sales_employees"`
	ItemsSold          int64                  `json:"items_sold"`
	AverageTransaction string                 `json:"avg_transaction"`
	LaborPercent       string                 `json:"labor_percent"`
	TotalShifts        int                    `json:"total_shifts"`
	AvgHoursPerShift   string                 `json:"avg_hours_per_shift"`
	ActiveEmployees    int                    `json:"active_employees"`
	OvertimeEmployees  []string               `json:"overtime_employees"`
	TopItems           []pos.TopItem          `json:"top_items"`
	Categories         []pos.CategoryTotal    `json:"categories"`
	Hours              []pos.HourTotal        `json:"hourly_breakdown"`
	SalesBuckets       []pos.Bucket           `json:"sales_buckets"`
	LaborBuckets       []roster.Bucket        `json:"labor_buckets"`
	Positions          []roster.PositionTotal `json:"position_breakdown"`
}

type reportJSON struct {
	Period       periodJSON           `json:"period"`
	SalesSummary map[string]itemJSON  `json:"sales_summary"`
	LaborSummary map[string]laborJSON `json:"labor_summary"`
	GrandTotals  totalsJSON           `json:"grand_totals"`
	Details      *detailsJSON         `json:"details,omitempty"`
}

// toJSON maps the report onto its serialized shape. Money is fixed to two
// decimals, hours to two decimals.
func toJSON(r Report) reportJSON {
	out := reportJSON{
		Period: periodJSON{
			Start: r.Period.Start.Format(generic.DateLayout),
			End:   r.Period.End.Format(generic.DateLayout),
		},
		SalesSummary: make(map[string]itemJSON, len(r.Sales.ByItem)),
		LaborSummary: make(map[string]laborJSON, len(r.Labor.ByEmployee)),
		GrandTotals: totalsJSON{
			Revenue:   money(r.Totals.Revenue),
			LaborCost: money(r.Totals.LaborCost),
			Margin:    r.Totals.RenderedMargin().StringFixed(2),
		},
	}

	for name, item := range r.Sales.ByItem {
		out.SalesSummary[name] = itemJSON{TotalQuantity: item.TotalQuantity, TotalRevenue: money(item.TotalRevenue)}
	}
	for id, emp := range r.Labor.ByEmployee {
		var name string
		if r.Details != nil {
			name = r.Details.EmployeeNames[id]
		}
		out.LaborSummary[id] = laborJSON{
			Name:          name,
			TotalHours:    hours(emp.TotalHours),
			OvertimeHours: hours(emp.OvertimeHours),
			TotalCost:     money(emp.TotalCost),
		}
	}

	if d := r.Details; d != nil {
		overtime := []string{}
		for _, emp := range r.Labor.Employees() {
			if emp.HasOvertime() {
				overtime = append(overtime, emp.EmployeeID)
			}
		}
		out.Details = &detailsJSON{
			RestaurantName:     d.RestaurantName,
			GeneratedAt:        d.GeneratedAt.UTC().Format(time.RFC3339),
			PeriodDays:         d.PeriodDays,
			Transactions:       r.Sales.Transactions,
			ActiveDays:         d.ActiveDays,
			SalesEmployees:     d.SalesEmployees,
			ItemsSold:          r.Sales.ItemsSold,
			AverageTransaction: money(d.AverageTransaction),
			LaborPercent:       r.LaborPercent().StringFixed(2),
			TotalShifts:        r.Labor.Shifts,
			AvgHoursPerShift:   hours(r.Labor.AverageHoursPerShift()),
			ActiveEmployees:    len(r.Labor.ByEmployee),
			OvertimeEmployees:  overtime,
			TopItems:           d.TopItems,
			Categories:         d.Categories,
			Hours:              d.Hours,
			SalesBuckets:       d.SalesBuckets,
			LaborBuckets:       d.LaborBuckets,
			Positions:          d.Positions,
		}
	}
	return out
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	data, err := json.MarshalIndent(toJSON(r), "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// =============================================================================
// CSV
// =============================================================================

// CSVHeader is the first row of every CSV report.
var CSVHeader = []string{"section", "name", "quantity", "revenue", "hours", "overtime_hours", "labor_cost", "margin"}

// WriteCSV writes one "sales" row per item (name order), one "labor" row per
// employee (id order) and a final "totals" row.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)

	rows := [][]string{CSVHeader}
	for _, item := range r.Sales.Items() {
		rows = append(rows, []string{
			"sales", item.ItemName, strconv.FormatInt(item.TotalQuantity, 10), money(item.TotalRevenue), "", "", "", "",
		})
	}
	for _, emp := range r.Labor.Employees() {
		rows = append(rows, []string{
			"labor", emp.EmployeeID, "", "", hours(emp.TotalHours), hours(emp.OvertimeHours), money(emp.TotalCost), "",
		})
	}
	rows = append(rows, []string{
		"totals", "total", strconv.FormatInt(r.Sales.ItemsSold, 10), money(r.Totals.Revenue),
		hours(r.Labor.TotalHours), "", money(r.Totals.LaborCost), r.Totals.RenderedMargin().StringFixed(2),
	})

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func money(d decimal.Decimal) string { return generic.Money(d).StringFixed(2) }

func hours(d decimal.Decimal) string { return d.Round(2).StringFixed(2) }
