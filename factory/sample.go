package factory

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/restaurant-engine/generic"
)

// =============================================================================
// SAMPLE DATA - Demo menu, staff and day generators
// =============================================================================

// MenuItem is one entry of the demo menu.
type MenuItem struct {
	Name     string
	Category string
	Price    decimal.Decimal
}

// PositionProfile drives shift generation for a job position.
type PositionProfile struct {
	MinHours     float64
	MaxHours     float64
	EarliestHour int
	LatestHour   int
}

// Menu returns the demo menu.
func Menu() []MenuItem {
	item := func(name, category, price string) MenuItem {
		return MenuItem{Name: name, Category: category, Price: decimal.RequireFromString(price)}
	}
	return []MenuItem{
		item("Burger Deluxe", "Main", "18.50"),
		item("Chicken Caesar Salad", "Salad", "16.00"),
		item("Fish & Chips", "Main", "22.00"),
		item("Margherita Pizza", "Pizza", "20.00"),
		item("Beef Steak", "Main", "35.00"),
		item("Pasta Carbonara", "Pasta", "19.50"),
		item("Greek Salad", "Salad", "14.50"),
		item("Cappuccino", "Beverage", "4.50"),
		item("Latte", "Beverage", "4.80"),
		item("Fresh Orange Juice", "Beverage", "6.50"),
		item("House Wine (Glass)", "Alcohol", "9.50"),
		item("Beer (Pint)", "Alcohol", "7.50"),
		item("Chocolate Cake", "Dessert", "8.50"),
		item("Ice Cream Sundae", "Dessert", "7.00"),
	}
}

// Staff returns the demo roster.
func Staff() []generic.Employee {
	emp := func(id, name, position, rate string) generic.Employee {
		return generic.Employee{ID: id, Name: name, Position: position, HourlyRate: decimal.RequireFromString(rate), Active: true}
	}
	return []generic.Employee{
		emp("EMP001", "Alice Johnson", "Manager", "28.50"),
		emp("EMP002", "Bob Smith", "Chef", "25.00"),
		emp("EMP003", "Carol Davis", "Server", "22.50"),
		emp("EMP004", "David Wilson", "Server", "22.50"),
		emp("EMP005", "Emma Brown", "Kitchen Hand", "20.00"),
		emp("EMP006", "Frank Miller", "Bartender", "24.00"),
		emp("EMP007", "Grace Taylor", "Server", "22.50"),
		emp("EMP008", "Henry Lee", "Kitchen Hand", "20.00"),
	}
}

// Positions returns the shift profile per position.
func Positions() map[string]PositionProfile {
	return map[string]PositionProfile{
		"Manager":      {MinHours: 7, MaxHours: 9, EarliestHour: 8, LatestHour: 11},
		"Chef":         {MinHours: 6, MaxHours: 8, EarliestHour: 9, LatestHour: 12},
		"Server":       {MinHours: 4, MaxHours: 8, EarliestHour: 10, LatestHour: 15},
		"Kitchen Hand": {MinHours: 4, MaxHours: 7, EarliestHour: 10, LatestHour: 15},
		"Bartender":    {MinHours: 5, MaxHours: 8, EarliestHour: 10, LatestHour: 15},
	}
}

// SampleGenerator produces plausible sales and shifts. The same seed yields
// the same records.
type SampleGenerator struct {
	rng       *rand.Rand
	menu      []MenuItem
	staff     []generic.Employee
	positions map[string]PositionProfile
}

// NewSampleGenerator creates a generator seeded with seed.
func NewSampleGenerator(seed int64) *SampleGenerator {
	return &SampleGenerator{
		rng:       rand.New(rand.NewSource(seed)),
		menu:      Menu(),
		staff:     Staff(),
		positions: Positions(),
	}
}

// Staff returns the roster the generator schedules.
func (g *SampleGenerator) Staff() []generic.Employee { return g.staff }

// Sales generates one day of POS transactions: 80-120 on weekdays, 120-180
// on weekends, rung up between 09:00 and 22:59.
func (g *SampleGenerator) Sales(day time.Time) []generic.SaleRecord {
	day = generic.DateOf(day)
	n := 80 + g.rng.Intn(41)
	if isWeekend(day) {
		n = 120 + g.rng.Intn(61)
	}

	sales := make([]generic.SaleRecord, 0, n)
	for i := 0; i < n; i++ {
		item := g.menu[g.rng.Intn(len(g.menu))]
		at := day.Add(time.Duration(9+g.rng.Intn(14))*time.Hour +
			time.Duration(g.rng.Intn(60))*time.Minute +
			time.Duration(g.rng.Intn(60))*time.Second)

		sales = append(sales, generic.SaleRecord{
			Timestamp:  at,
			ItemName:   item.Name,
			Category:   item.Category,
			Quantity:   g.quantity(),
			UnitPrice:  item.Price,
			EmployeeID: fmt.Sprintf("EMP%03d", 1+g.rng.Intn(len(g.staff))),
		})
	}
	return sales
}

// quantity is 1, 2 or 3 with weights 80/15/5.
func (g *SampleGenerator) quantity() int {
	switch r := g.rng.Intn(100); {
	case r < 80:
		return 1
	case r < 95:
		return 2
	default:
		return 3
	}
}

// Shifts generates one day of shifts for the employees scheduled that day.
func (g *SampleGenerator) Shifts(day time.Time) []generic.ShiftRecord {
	day = generic.DateOf(day)

	var shifts []generic.ShiftRecord
	for _, emp := range g.staff {
		if !g.works(emp, day) {
			continue
		}
		profile, ok := g.positions[emp.Position]
		if !ok {
			continue
		}

		hours := profile.MinHours + g.rng.Float64()*(profile.MaxHours-profile.MinHours)
		length := time.Duration(hours*60) * time.Minute
		start := day.Add(time.Duration(profile.EarliestHour+g.rng.Intn(profile.LatestHour-profile.EarliestHour+1))*time.Hour +
			time.Duration(15*g.rng.Intn(4))*time.Minute)

		shifts = append(shifts, generic.ShiftRecord{
			EmployeeID: emp.ID,
			ClockIn:    start,
			ClockOut:   start.Add(length),
			HourlyRate: emp.HourlyRate,
		})
	}
	return shifts
}

// works decides whether emp is rostered on day. Managers work most days,
// full-time floor and kitchen staff most weekdays, everyone else about half.
func (g *SampleGenerator) works(emp generic.Employee, day time.Time) bool {
	p := g.rng.Float64()
	switch {
	case emp.Position == "Manager":
		return p < 0.85
	case isWeekend(day):
		return p < 0.8
	case emp.Position == "Chef" || emp.Position == "Server":
		return p < 0.7
	default:
		return p < 0.5
	}
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Period    generic.Period `json:"-"`
	Employees int            `json:"employees"`
	Sales     int            `json:"sales"`
	Shifts    int            `json:"shifts"`
}

// Seed writes the demo roster and the given number of days of sales and
// shifts ending on end.
func (g *SampleGenerator) Seed(ctx context.Context, store generic.Store, days int, end time.Time) (SeedResult, error) {
	period := generic.LastNDays(days, end)
	result := SeedResult{Period: period}

	for _, emp := range g.staff {
		if err := store.SaveEmployee(ctx, emp); err != nil {
			return result, err
		}
		result.Employees++
	}

	for _, day := range period.Days() {
		ids, err := store.InsertSales(ctx, g.Sales(day))
		if err != nil {
			return result, err
		}
		result.Sales += len(ids)

		shifts := g.Shifts(day)
		if len(shifts) == 0 {
			continue
		}
		ids, err = store.InsertShifts(ctx, shifts)
		if err != nil {
			return result, err
		}
		result.Shifts += len(ids)
	}
	return result, nil
}
