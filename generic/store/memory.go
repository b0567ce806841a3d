// Package store provides Store implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/warp/restaurant-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	sales     []generic.SaleRecord  // ordered by Timestamp, then ID
	shifts    []generic.ShiftRecord // ordered by ClockIn, then ID
	employees map[string]generic.Employee
}

var _ generic.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{employees: make(map[string]generic.Employee)}
}

// InsertSale validates and appends a single sale.
func (m *Memory) InsertSale(_ context.Context, sale generic.SaleRecord) (string, error) {
	if err := generic.ValidateSale(sale); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertSaleLocked(sale), nil
}

// InsertSales validates the whole batch before writing any of it.
func (m *Memory) InsertSales(_ context.Context, sales []generic.SaleRecord) ([]string, error) {
	for _, s := range sales {
		if err := generic.ValidateSale(s); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, m.insertSaleLocked(s))
	}
	return ids, nil
}

func (m *Memory) insertSaleLocked(sale generic.SaleRecord) string {
	sale.ID = uuid.NewString()
	sale.Timestamp = sale.Timestamp.UTC()
	sale.CreatedAt = time.Now().UTC()

	// Binary search for insertion point keeps the slice ordered.
	i := sort.Search(len(m.sales), func(i int) bool {
		return saleAfter(m.sales[i], sale)
	})
	m.sales = append(m.sales, generic.SaleRecord{})
	copy(m.sales[i+1:], m.sales[i:])
	m.sales[i] = sale
	return sale.ID
}

// InsertShift validates and appends a single shift.
func (m *Memory) InsertShift(_ context.Context, shift generic.ShiftRecord) (string, error) {
	if err := generic.ValidateShift(shift); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertShiftLocked(shift), nil
}

// InsertShifts validates the whole batch before writing any of it.
func (m *Memory) InsertShifts(_ context.Context, shifts []generic.ShiftRecord) ([]string, error) {
	for _, s := range shifts {
		if err := generic.ValidateShift(s); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(shifts))
	for _, s := range shifts {
		ids = append(ids, m.insertShiftLocked(s))
	}
	return ids, nil
}

func (m *Memory) insertShiftLocked(shift generic.ShiftRecord) string {
	shift.ID = uuid.NewString()
	shift.ClockIn = shift.ClockIn.UTC()
	shift.ClockOut = shift.ClockOut.UTC()
	shift.CreatedAt = time.Now().UTC()

	i := sort.Search(len(m.shifts), func(i int) bool {
		return shiftAfter(m.shifts[i], shift)
	})
	m.shifts = append(m.shifts, generic.ShiftRecord{})
	copy(m.shifts[i+1:], m.shifts[i:])
	m.shifts[i] = shift
	return shift.ID
}

func (m *Memory) GetSale(_ context.Context, id string) (generic.SaleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return generic.SaleRecord{}, fmt.Errorf("sale %s: %w", id, generic.ErrRecordNotFound)
}

func (m *Memory) GetShift(_ context.Context, id string) (generic.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return generic.ShiftRecord{}, fmt.Errorf("shift %s: %w", id, generic.ErrRecordNotFound)
}

func (m *Memory) QuerySales(ctx context.Context, period generic.Period) ([]generic.SaleRecord, error) {
	return m.QuerySalesByEmployee(ctx, period, "")
}

func (m *Memory) QuerySalesByEmployee(_ context.Context, period generic.Period, employeeID string) ([]generic.SaleRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []generic.SaleRecord{}
	for _, s := range m.sales {
		if period.Contains(s.Timestamp) && (employeeID == "" || s.EmployeeID == employeeID) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *Memory) QueryShifts(ctx context.Context, period generic.Period) ([]generic.ShiftRecord, error) {
	return m.QueryShiftsByEmployee(ctx, period, "")
}

func (m *Memory) QueryShiftsByEmployee(_ context.Context, period generic.Period, employeeID string) ([]generic.ShiftRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []generic.ShiftRecord{}
	for _, s := range m.shifts {
		if period.Contains(s.ClockIn) && (employeeID == "" || s.EmployeeID == employeeID) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *Memory) PurgeSales(_ context.Context, period generic.Period) (int64, error) {
	if err := period.Validate(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.sales[:0]
	var removed int64
	for _, s := range m.sales {
		if period.Contains(s.Timestamp) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.sales = kept
	return removed, nil
}

func (m *Memory) PurgeShifts(_ context.Context, period generic.Period) (int64, error) {
	if err := period.Validate(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.shifts[:0]
	var removed int64
	for _, s := range m.shifts {
		if period.Contains(s.ClockIn) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.shifts = kept
	return removed, nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (m *Memory) SaveEmployee(_ context.Context, emp generic.Employee) error {
	if err := generic.ValidateEmployee(emp); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.employees[emp.ID]; ok {
		emp.CreatedAt = existing.CreatedAt
	} else {
		emp.CreatedAt = time.Now().UTC()
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, id string) (generic.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	emp, ok := m.employees[id]
	if !ok {
		return generic.Employee{}, fmt.Errorf("employee %s: %w", id, generic.ErrRecordNotFound)
	}
	return emp, nil
}

// ListEmployees returns employees ordered by name, then id.
func (m *Memory) ListEmployees(_ context.Context) ([]generic.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func saleAfter(a, b generic.SaleRecord) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID > b.ID
}

func shiftAfter(a, b generic.ShiftRecord) bool {
	if !a.ClockIn.Equal(b.ClockIn) {
		return a.ClockIn.After(b.ClockIn)
	}
	return a.ID > b.ID
}

// Reset clears all data.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales = nil
	m.shifts = nil
	m.employees = make(map[string]generic.Employee)
	return nil
}
