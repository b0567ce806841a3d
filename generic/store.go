/*
store.go - Persistence interface for sales, shifts and employees

PURPOSE:
  Defines the interface between the aggregation logic and the database.
  Aggregators only ever read through this interface; the CLI and HTTP
  layers write through it.

KEY INTERFACES:
  RecordStore:   Sale and shift persistence (insert, lookup, range query, purge)
  EmployeeStore: Roster master data (upsert, lookup, list)
  Store:         Both of the above, what the services depend on

IMMUTABILITY CONTRACT:
  Records are created on ingest and never updated. The only way to remove
  them is an explicit purge over a period.

  - Insert*(): validates, assigns a fresh id, persists
  - Query*():  ordered by timestamp (sales) or clock-in (shifts), ascending
  - Purge*():  explicit deletion over a period

IDS:
  Insert ignores any ID on the input record and returns the id it assigned.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite (production)
  - generic/store/memory.go: In-memory for testing

SEE ALSO:
  - validate.go: Invariants enforced on insert
  - period.go: Query scoping
*/
package generic

import "context"

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/warp/restaurant-engine/generic Store

// =============================================================================
// RECORD STORE - Sales and shifts
// =============================================================================

type RecordStore interface {
	// InsertSale validates and persists a sale. Returns the assigned id.
	InsertSale(ctx context.Context, sale SaleRecord) (string, error)

	// InsertSales persists a batch atomically. Either all succeed or none do.
	InsertSales(ctx context.Context, sales []SaleRecord) ([]string, error)

	// InsertShift validates and persists a shift. Returns the assigned id.
	InsertShift(ctx context.Context, shift ShiftRecord) (string, error)

	// InsertShifts persists a batch atomically.
	InsertShifts(ctx context.Context, shifts []ShiftRecord) ([]string, error)

	// GetSale returns ErrRecordNotFound for an unknown id.
	GetSale(ctx context.Context, id string) (SaleRecord, error)

	// GetShift returns ErrRecordNotFound for an unknown id.
	GetShift(ctx context.Context, id string) (ShiftRecord, error)

	// QuerySales returns sales with timestamp in period, ordered by timestamp.
	QuerySales(ctx context.Context, period Period) ([]SaleRecord, error)

	// QuerySalesByEmployee narrows QuerySales to one employee.
	QuerySalesByEmployee(ctx context.Context, period Period, employeeID string) ([]SaleRecord, error)

	// QueryShifts returns shifts whose clock-in falls in period, ordered by clock-in.
	QueryShifts(ctx context.Context, period Period) ([]ShiftRecord, error)

	// QueryShiftsByEmployee narrows QueryShifts to one employee.
	QueryShiftsByEmployee(ctx context.Context, period Period, employeeID string) ([]ShiftRecord, error)

	// PurgeSales deletes sales in period and returns how many were removed.
	PurgeSales(ctx context.Context, period Period) (int64, error)

	// PurgeShifts deletes shifts whose clock-in falls in period.
	PurgeShifts(ctx context.Context, period Period) (int64, error)
}

// =============================================================================
// EMPLOYEE STORE - Roster master data (upsert semantics)
// =============================================================================

type EmployeeStore interface {
	SaveEmployee(ctx context.Context, emp Employee) error
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
}

// Store is everything the services need.
type Store interface {
	RecordStore
	EmployeeStore
}
