/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements generic.Store (sales, shifts, employees) on an embedded SQLite
  database file. This is the only place that knows about SQL.

INTERFACES IMPLEMENTED:
  generic.RecordStore:   Sale and shift persistence
  generic.EmployeeStore: Roster master data

IMMUTABILITY:
  - No UPDATE statements on sales or shifts
  - DELETE only through the explicit Purge* methods
  - Employees are upserted (master data, not ledger records)

KEY TABLES:
  sales:     One row per POS line, line_total denormalized for ad-hoc SQL
  shifts:    One row per clocked shift
  employees: Roster master data

INDEXES:
  - idx_sales_ts / idx_shifts_clock_in: Period queries (hot path)
  - idx_sales_employee_ts / idx_shifts_employee_clock_in: Per-employee queries

TIMESTAMPS:
  Stored as fixed-width UTC text (nanosecond precision) so that lexicographic
  order in SQLite equals chronological order.

CONCURRENCY:
  Uses sync.RWMutex and a single open connection. Writes are serialized,
  which is all the single-writer model needs.

QUERIES:
  Built with squirrel; the default "?" placeholder format matches SQLite.

USAGE:
  store, err := sqlite.New("./data/restaurant.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  id, err := store.InsertSale(ctx, sale)

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/restaurant-engine/generic"
)

// timestampLayout is fixed width; RFC3339Nano trims trailing zeros and would
// break text ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	saleColumns     = []string{"id", "ts", "item_name", "category", "quantity", "unit_price", "employee_id", "created_at"}
	shiftColumns    = []string{"id", "employee_id", "clock_in", "clock_out", "hourly_rate", "break_minutes", "created_at"}
	employeeColumns = []string{"id", "name", "position", "hourly_rate", "active", "created_at"}
)

// Store implements generic.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ generic.Store = (*Store)(nil)

// New opens (creating if needed) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, generic.NewStorageError("create database directory", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, generic.NewStorageError("open database", err)
	}
	// One connection: ":memory:" databases are per-connection, and writes are
	// serialized anyway.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, generic.NewStorageError("migrate database", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sales (
		id TEXT PRIMARY KEY,
		ts TEXT NOT NULL,
		item_name TEXT NOT NULL,
		category TEXT,
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		unit_price TEXT NOT NULL,
		line_total TEXT NOT NULL,
		employee_id TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sales_ts
		ON sales(ts);
	CREATE INDEX IF NOT EXISTS idx_sales_employee_ts
		ON sales(employee_id, ts) WHERE employee_id IS NOT NULL;

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		clock_in TEXT NOT NULL,
		clock_out TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		break_minutes INTEGER NOT NULL DEFAULT 0 CHECK (break_minutes >= 0),
		created_at TEXT NOT NULL,
		CHECK (clock_out >= clock_in)
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_clock_in
		ON shifts(clock_in);
	CREATE INDEX IF NOT EXISTS idx_shifts_employee_clock_in
		ON shifts(employee_id, clock_in);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position TEXT,
		hourly_rate TEXT NOT NULL DEFAULT '0',
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// SALES
// =============================================================================

// InsertSale validates and persists a sale under a fresh id.
func (s *Store) InsertSale(ctx context.Context, sale generic.SaleRecord) (string, error) {
	if err := generic.ValidateSale(sale); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	if err := insertSale(ctx, s.db, id, sale); err != nil {
		return "", generic.NewStorageError("insert sale", err)
	}
	return id, nil
}

// InsertSales validates every sale, then writes them in one SQL transaction.
func (s *Store) InsertSales(ctx context.Context, sales []generic.SaleRecord) ([]string, error) {
	for _, sale := range sales {
		if err := generic.ValidateSale(sale); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(sales))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, sale := range sales {
			id := uuid.NewString()
			if err := insertSale(ctx, tx, id, sale); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, generic.NewStorageError("insert sales", err)
	}
	return ids, nil
}

func insertSale(ctx context.Context, db execer, id string, sale generic.SaleRecord) error {
	query, args, err := sq.Insert("sales").
		Columns("id", "ts", "item_name", "category", "quantity", "unit_price", "line_total", "employee_id", "created_at").
		Values(
			id,
			formatTime(sale.Timestamp),
			sale.ItemName,
			nullString(sale.Category),
			sale.Quantity,
			sale.UnitPrice.String(),
			sale.LineTotal().String(),
			nullString(sale.EmployeeID),
			formatTime(time.Now()),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = db.ExecContext(ctx, query, args...)
	return err
}

// GetSale returns a sale by id.
func (s *Store) GetSale(ctx context.Context, id string) (generic.SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sales, err := s.querySales(ctx, sq.Select(saleColumns...).From("sales").Where(sq.Eq{"id": id}))
	if err != nil {
		return generic.SaleRecord{}, generic.NewStorageError("get sale", err)
	}
	if len(sales) == 0 {
		return generic.SaleRecord{}, fmt.Errorf("sale %s: %w", id, generic.ErrRecordNotFound)
	}
	return sales[0], nil
}

// QuerySales returns sales in period ordered by timestamp.
func (s *Store) QuerySales(ctx context.Context, period generic.Period) ([]generic.SaleRecord, error) {
	return s.QuerySalesByEmployee(ctx, period, "")
}

// QuerySalesByEmployee returns sales in period; an empty employeeID matches all.
func (s *Store) QuerySalesByEmployee(ctx context.Context, period generic.Period, employeeID string) ([]generic.SaleRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	from, until := period.Bounds()
	builder := sq.Select(saleColumns...).
		From("sales").
		Where(sq.GtOrEq{"ts": formatTime(from)}).
		Where(sq.Lt{"ts": formatTime(until)}).
		OrderBy("ts ASC", "id ASC")
	if employeeID != "" {
		builder = builder.Where(sq.Eq{"employee_id": employeeID})
	}

	sales, err := s.querySales(ctx, builder)
	if err != nil {
		return nil, generic.NewStorageError("query sales", err)
	}
	return sales, nil
}

// PurgeSales deletes every sale in period.
func (s *Store) PurgeSales(ctx context.Context, period generic.Period) (int64, error) {
	return s.purge(ctx, "sales", "ts", period)
}

func (s *Store) querySales(ctx context.Context, builder sq.SelectBuilder) ([]generic.SaleRecord, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []generic.SaleRecord{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func scanSale(rows *sql.Rows) (generic.SaleRecord, error) {
	var (
		sale       generic.SaleRecord
		ts         string
		category   sql.NullString
		employeeID sql.NullString
		createdAt  string
	)

	err := rows.Scan(&sale.ID, &ts, &sale.ItemName, &category, &sale.Quantity,
		&sale.UnitPrice, &employeeID, &createdAt)
	if err != nil {
		return sale, fmt.Errorf("failed to scan sale: %w", err)
	}

	if sale.Timestamp, err = parseTime(ts); err != nil {
		return sale, err
	}
	sale.Category = category.String
	sale.EmployeeID = employeeID.String
	sale.CreatedAt, _ = parseTime(createdAt)
	return sale, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

// InsertShift validates and persists a shift under a fresh id.
func (s *Store) InsertShift(ctx context.Context, shift generic.ShiftRecord) (string, error) {
	if err := generic.ValidateShift(shift); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	if err := insertShift(ctx, s.db, id, shift); err != nil {
		return "", generic.NewStorageError("insert shift", err)
	}
	return id, nil
}

// InsertShifts validates every shift, then writes them in one SQL transaction.
func (s *Store) InsertShifts(ctx context.Context, shifts []generic.ShiftRecord) ([]string, error) {
	for _, shift := range shifts {
		if err := generic.ValidateShift(shift); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(shifts))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, shift := range shifts {
			id := uuid.NewString()
			if err := insertShift(ctx, tx, id, shift); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, generic.NewStorageError("insert shifts", err)
	}
	return ids, nil
}

func insertShift(ctx context.Context, db execer, id string, shift generic.ShiftRecord) error {
	query, args, err := sq.Insert("shifts").
		Columns(shiftColumns...).
		Values(
			id,
			shift.EmployeeID,
			formatTime(shift.ClockIn),
			formatTime(shift.ClockOut),
			shift.HourlyRate.String(),
			shift.BreakMinutes,
			formatTime(time.Now()),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = db.ExecContext(ctx, query, args...)
	return err
}

// GetShift returns a shift by id.
func (s *Store) GetShift(ctx context.Context, id string) (generic.ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shifts, err := s.queryShifts(ctx, sq.Select(shiftColumns...).From("shifts").Where(sq.Eq{"id": id}))
	if err != nil {
		return generic.ShiftRecord{}, generic.NewStorageError("get shift", err)
	}
	if len(shifts) == 0 {
		return generic.ShiftRecord{}, fmt.Errorf("shift %s: %w", id, generic.ErrRecordNotFound)
	}
	return shifts[0], nil
}

// QueryShifts returns shifts whose clock-in falls in period, ordered by clock-in.
func (s *Store) QueryShifts(ctx context.Context, period generic.Period) ([]generic.ShiftRecord, error) {
	return s.QueryShiftsByEmployee(ctx, period, "")
}

// QueryShiftsByEmployee narrows QueryShifts to one employee when employeeID is set.
func (s *Store) QueryShiftsByEmployee(ctx context.Context, period generic.Period, employeeID string) ([]generic.ShiftRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	from, until := period.Bounds()
	builder := sq.Select(shiftColumns...).
		From("shifts").
		Where(sq.GtOrEq{"clock_in": formatTime(from)}).
		Where(sq.Lt{"clock_in": formatTime(until)}).
		OrderBy("clock_in ASC", "id ASC")
	if employeeID != "" {
		builder = builder.Where(sq.Eq{"employee_id": employeeID})
	}

	shifts, err := s.queryShifts(ctx, builder)
	if err != nil {
		return nil, generic.NewStorageError("query shifts", err)
	}
	return shifts, nil
}

// PurgeShifts deletes every shift whose clock-in falls in period.
func (s *Store) PurgeShifts(ctx context.Context, period generic.Period) (int64, error) {
	return s.purge(ctx, "shifts", "clock_in", period)
}

func (s *Store) queryShifts(ctx context.Context, builder sq.SelectBuilder) ([]generic.ShiftRecord, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []generic.ShiftRecord{}
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

func scanShift(rows *sql.Rows) (generic.ShiftRecord, error) {
	var (
		shift             generic.ShiftRecord
		clockIn, clockOut string
		createdAt         string
	)

	err := rows.Scan(&shift.ID, &shift.EmployeeID, &clockIn, &clockOut,
		&shift.HourlyRate, &shift.BreakMinutes, &createdAt)
	if err != nil {
		return shift, fmt.Errorf("failed to scan shift: %w", err)
	}

	if shift.ClockIn, err = parseTime(clockIn); err != nil {
		return shift, err
	}
	if shift.ClockOut, err = parseTime(clockOut); err != nil {
		return shift, err
	}
	shift.CreatedAt, _ = parseTime(createdAt)
	return shift, nil
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

// SaveEmployee inserts or updates an employee.
func (s *Store) SaveEmployee(ctx context.Context, emp generic.Employee) error {
	if err := generic.ValidateEmployee(emp); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query, args, err := sq.Insert("employees").
		Columns(employeeColumns...).
		Values(emp.ID, emp.Name, nullString(emp.Position), emp.HourlyRate.String(), emp.Active, formatTime(time.Now())).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			position = excluded.position,
			hourly_rate = excluded.hourly_rate,
			active = excluded.active`).
		ToSql()
	if err != nil {
		return generic.NewStorageError("save employee", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return generic.NewStorageError("save employee", err)
}

// GetEmployee retrieves an employee by id.
func (s *Store) GetEmployee(ctx context.Context, id string) (generic.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees, err := s.queryEmployees(ctx, sq.Select(employeeColumns...).From("employees").Where(sq.Eq{"id": id}))
	if err != nil {
		return generic.Employee{}, generic.NewStorageError("get employee", err)
	}
	if len(employees) == 0 {
		return generic.Employee{}, fmt.Errorf("employee %s: %w", id, generic.ErrRecordNotFound)
	}
	return employees[0], nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]generic.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees, err := s.queryEmployees(ctx, sq.Select(employeeColumns...).From("employees").OrderBy("name ASC", "id ASC"))
	if err != nil {
		return nil, generic.NewStorageError("list employees", err)
	}
	return employees, nil
}

func (s *Store) queryEmployees(ctx context.Context, builder sq.SelectBuilder) ([]generic.Employee, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []generic.Employee{}
	for rows.Next() {
		var (
			emp       generic.Employee
			position  sql.NullString
			rate      string
			createdAt string
		)
		if err := rows.Scan(&emp.ID, &emp.Name, &position, &rate, &emp.Active, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		emp.Position = position.String
		emp.HourlyRate = generic.MustParseDecimal(rate)
		emp.CreatedAt, _ = parseTime(createdAt)
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"sales", "shifts", "employees"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return generic.NewStorageError("reset "+table, err)
		}
	}
	return nil
}

func (s *Store) purge(ctx context.Context, table, column string, period generic.Period) (int64, error) {
	if err := period.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, until := period.Bounds()
	query, args, err := sq.Delete(table).
		Where(sq.GtOrEq{column: formatTime(from)}).
		Where(sq.Lt{column: formatTime(until)}).
		ToSql()
	if err != nil {
		return 0, generic.NewStorageError("purge "+table, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, generic.NewStorageError("purge "+table, err)
	}
	n, err := res.RowsAffected()
	return n, generic.NewStorageError("purge "+table, err)
}

// withTx runs fn inside a SQL transaction, rolling back on error.
// Callers hold s.mu.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
