/*
summary.go - POS aggregation over sale records

PURPOSE:
  Turns the sales returned by a store query into per-item totals and a grand
  revenue figure. Pure functions: no I/O, no shared state, safe to call from
  concurrent report requests.

AGGREGATION:
  Sales are grouped by item name (exact, case-sensitive). Each group sums the
  quantity and quantity x unit price. Grand revenue is the sum over all groups.
  Decimal addition is exact, so the result does not depend on input order.

RENDER ORDER:
  The summary holds a map; anything rendered from it goes through Items(),
  which sorts by item name ascending.

EXAMPLE:
  Burger 3 x 5.00 and Burger 2 x 5.00 in the same period
  → Items()[0] = {Burger, 5, 25.00}, GrandRevenue = 25.00

SEE ALSO:
  - breakdown.go: Category, hourly and top-item breakdowns
  - bucket.go: Daily/weekly time buckets
  - report/report.go: Combines this with the labor summary
*/
package pos

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/restaurant-engine/generic"
)

// ItemTotal is the aggregate for one menu item.
type ItemTotal struct {
	ItemName      string          `json:"item_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// SalesSummary is the POS side of a report.
type SalesSummary struct {
	Period       generic.Period
	ByItem       map[string]ItemTotal
	GrandRevenue decimal.Decimal

	// Transactions counts sale records, ItemsSold sums their quantities.
	Transactions int
	ItemsSold    int64
}

// Summarize aggregates sales for period. Records outside period are not
// filtered here; the store query already scoped them.
func Summarize(period generic.Period, sales []generic.SaleRecord) SalesSummary {
	summary := SalesSummary{
		Period:       period,
		ByItem:       make(map[string]ItemTotal),
		GrandRevenue: decimal.Zero,
	}

	for _, sale := range sales {
		line := sale.LineTotal()

		item := summary.ByItem[sale.ItemName]
		item.ItemName = sale.ItemName
		item.TotalQuantity += int64(sale.Quantity)
		item.TotalRevenue = item.TotalRevenue.Add(line)
		summary.ByItem[sale.ItemName] = item

		summary.GrandRevenue = summary.GrandRevenue.Add(line)
		summary.Transactions++
		summary.ItemsSold += int64(sale.Quantity)
	}

	return summary
}

// Items returns the per-item totals sorted by item name.
func (s SalesSummary) Items() []ItemTotal {
	items := make([]ItemTotal, 0, len(s.ByItem))
	for _, item := range s.ByItem {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ItemName < items[j].ItemName
	})
	return items
}

// AverageTransaction is grand revenue per sale record, zero when there are none.
func (s SalesSummary) AverageTransaction() decimal.Decimal {
	if s.IsEmpty() {
		return decimal.Zero
	}
	return generic.Money(s.GrandRevenue.Div(decimal.NewFromInt(int64(s.Transactions))))
}

// IsEmpty reports whether no sales were aggregated.
func (s SalesSummary) IsEmpty() bool { return s.Transactions == 0 }
