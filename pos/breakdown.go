package pos

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/restaurant-engine/generic"
)

// UncategorizedLabel groups sales recorded without a category.
const UncategorizedLabel = "Uncategorized"

// CategoryTotal aggregates sales sharing a menu category.
type CategoryTotal struct {
	Category     string          `json:"category"`
	Transactions int             `json:"transactions"`
	Quantity     int64           `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// HourTotal aggregates sales rung up during one hour of the day (UTC).
type HourTotal struct {
	Hour         int             `json:"hour"`
	Transactions int             `json:"transactions"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopItem is one entry of the best-seller list.
type TopItem struct {
	ItemName string `json:"item"`
	Quantity int64  `json:"quantity"`
}

// ByCategory groups sales by category, sorted by category name.
func ByCategory(sales []generic.SaleRecord) []CategoryTotal {
	groups := make(map[string]CategoryTotal)
	for _, sale := range sales {
		name := sale.Category
		if name == "" {
			name = UncategorizedLabel
		}
		group := groups[name]
		group.Category = name
		group.Transactions++
		group.Quantity += int64(sale.Quantity)
		group.Revenue = group.Revenue.Add(sale.LineTotal())
		groups[name] = group
	}

	result := make([]CategoryTotal, 0, len(groups))
	for _, group := range groups {
		result = append(result, group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result
}

// ByHour groups sales by hour of day. Only hours with sales are returned,
// in ascending order.
func ByHour(sales []generic.SaleRecord) []HourTotal {
	var hours [24]HourTotal
	for _, sale := range sales {
		h := sale.Timestamp.UTC().Hour()
		hours[h].Hour = h
		hours[h].Transactions++
		hours[h].Revenue = hours[h].Revenue.Add(sale.LineTotal())
	}

	result := []HourTotal{}
	for _, h := range hours {
		if h.Transactions > 0 {
			result = append(result, h)
		}
	}
	return result
}

// TopItems returns the n best-selling items by quantity. Ties break on item
// name ascending. n <= 0 returns every item.
func (s SalesSummary) TopItems(n int) []TopItem {
	items := s.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalQuantity > items[j].TotalQuantity
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}

	top := make([]TopItem, len(items))
	for i, item := range items {
		top[i] = TopItem{ItemName: item.ItemName, Quantity: item.TotalQuantity}
	}
	return top
}

// ActiveDays counts the distinct UTC days with at least one sale.
func ActiveDays(sales []generic.SaleRecord) int {
	days := make(map[time.Time]struct{})
	for _, sale := range sales {
		days[generic.DateOf(sale.Timestamp)] = struct{}{}
	}
	return len(days)
}

// ActiveEmployees counts the distinct employees sales are attributed to.
// Unattributed sales are not counted.
func ActiveEmployees(sales []generic.SaleRecord) int {
	ids := make(map[string]struct{})
	for _, sale := range sales {
		if sale.EmployeeID != "" {
			ids[sale.EmployeeID] = struct{}{}
		}
	}
	return len(ids)
}
