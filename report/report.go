/*
report.go - Unified sales/labor report

PURPOSE:
  Combines a POS summary and a labor summary for the same period into one
  Report with grand totals. Build is pure: identical inputs give an identical
  Report, with no I/O and no hidden state.

GRAND TOTALS:
  revenue    = POS grand revenue
  labor_cost = roster grand cost
  margin     = revenue - labor_cost   (may be negative)

  Renderers print margin as rounded revenue minus rounded labor cost, so the
  three printed figures always add up to the cent.

VALIDATION:
  Build only checks that both summaries cover the requested period.

SEE ALSO:
  - service.go: Store → aggregators → Build
  - render.go: JSON and CSV output
*/
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/pos"
	"github.com/warp/restaurant-engine/roster"
)

// GrandTotals are the report-wide sums.
type GrandTotals struct {
	Revenue   decimal.Decimal
	LaborCost decimal.Decimal
	Margin    decimal.Decimal
}

// Report is built on demand and never persisted.
type Report struct {
	Period generic.Period
	Sales  pos.SalesSummary
	Labor  roster.LaborSummary
	Totals GrandTotals

	// Details is optional drill-down filled in by Service; Build leaves it nil.
	Details *Details
}

// Details carries the breakdowns shown alongside the main report.
type Details struct {
	RestaurantName     string
	GeneratedAt        time.Time
	PeriodDays         int
	ActiveDays         int // days with at least one sale
	SalesEmployees     int // employees with attributed sales
	AverageTransaction decimal.Decimal
	TopItems           []pos.TopItem
	Categories         []pos.CategoryTotal
	Hours              []pos.HourTotal
	SalesBuckets       []pos.Bucket
	LaborBuckets       []roster.Bucket
	Positions          []roster.PositionTotal
	EmployeeNames      map[string]string // employee id -> name
}

// Build merges the two summaries. Both must cover period.
func Build(period generic.Period, sales pos.SalesSummary, labor roster.LaborSummary) (Report, error) {
	if err := period.Validate(); err != nil {
		return Report{}, err
	}
	if !sales.Period.Equal(period) || !labor.Period.Equal(period) {
		return Report{}, &generic.ValidationError{
			Field: "period",
			Message: fmt.Sprintf("summaries cover %s (sales) and %s (labor), want %s",
				sales.Period, labor.Period, period),
		}
	}

	revenue := sales.GrandRevenue
	cost := labor.GrandCost

	return Report{
		Period: period,
		Sales:  sales,
		Labor:  labor,
		Totals: GrandTotals{
			Revenue:   revenue,
			LaborCost: cost,
			Margin:    revenue.Sub(cost),
		},
	}, nil
}

// RenderedMargin is the margin as printed: rounded revenue minus rounded
// labor cost.
func (t GrandTotals) RenderedMargin() decimal.Decimal {
	return generic.Money(t.Revenue).Sub(generic.Money(t.LaborCost))
}

// LaborPercent is labor cost as a percentage of revenue, zero without revenue.
func (r Report) LaborPercent() decimal.Decimal {
	if !r.Totals.Revenue.IsPositive() {
		return decimal.Zero
	}
	return r.Totals.LaborCost.Div(r.Totals.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
}
