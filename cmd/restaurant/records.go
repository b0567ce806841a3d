package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/restaurant-engine/config"
	"github.com/warp/restaurant-engine/factory"
	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/roster"
	"github.com/warp/restaurant-engine/store/sqlite"
)

// =============================================================================
// SETUP
// =============================================================================

func (c *cli) setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Write the default configuration and create the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.DefaultPath
			}
			created, err := config.WriteDefault(path)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created configuration %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration %s already exists\n", path)
			}

			c.configPath = path
			if err := c.load(); err != nil {
				return err
			}
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", c.cfg.DBPath)
			return nil
		},
	}
}

// =============================================================================
// SALES
// =============================================================================

func (c *cli) saleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Record POS sales",
	}

	var (
		sj       factory.SaleJSON
		quantity int
		price    string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record one sale",
		Example: `  restaurant sale add --item "Burger Deluxe" --category Main --quantity 2 --price 18.50
  restaurant sale add --item Latte --price 4.80 --at 2024-01-15T08:30:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			unitPrice, err := parseMoney("price", price)
			if err != nil {
				return err
			}
			sj.Quantity = &quantity
			sj.UnitPrice = &unitPrice
			if sj.Timestamp == "" {
				sj.Timestamp = time.Now().UTC().Format(time.RFC3339)
			}

			sale, err := factory.NewRecordFactory().SaleFromJSON(sj)
			if err != nil {
				return err
			}

			return c.withStore(func(ctx context.Context, store *sqlite.Store) error {
				id, err := store.InsertSale(ctx, sale)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded sale %s: %d x %s = %s\n",
					id, sale.Quantity, sale.ItemName, generic.Money(sale.LineTotal()).StringFixed(2))
				return nil
			})
		},
	}
	add.Flags().StringVar(&sj.ItemName, "item", "", "item name")
	add.Flags().StringVar(&sj.ItemCategory, "category", "", "item category")
	add.Flags().IntVar(&quantity, "quantity", 1, "quantity sold")
	add.Flags().StringVar(&price, "price", "", "unit price")
	add.Flags().StringVar(&sj.EmployeeID, "employee", "", "employee who rang up the sale")
	add.Flags().StringVar(&sj.Timestamp, "at", "", "sale time, RFC 3339 or \"2006-01-02 15:04\" (default now)")
	_ = add.MarkFlagRequired("item")
	_ = add.MarkFlagRequired("price")

	cmd.AddCommand(add)
	return cmd
}

// =============================================================================
// SHIFTS
// =============================================================================

func (c *cli) shiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Record roster shifts",
	}

	var (
		sj   factory.ShiftJSON
		rate string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record one shift",
		Long: `Records one shift. An end time before the start time means the shift
crosses midnight. Without --rate the employee's hourly rate is used.`,
		Example: `  restaurant shift add --employee EMP003 --date 2024-01-15 --start 09:00 --end 17:30
  restaurant shift add --employee EMP006 --start "6:00 PM" --end 02:00 --break 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate != "" {
				r, err := parseMoney("rate", rate)
				if err != nil {
					return err
				}
				sj.HourlyRate = &r
			}
			if sj.ShiftDate == "" {
				sj.ShiftDate = generic.Today().Format(generic.DateLayout)
			}

			return c.withStore(func(ctx context.Context, store *sqlite.Store) error {
				lookup := func(id string) (decimal.Decimal, bool) {
					emp, err := store.GetEmployee(ctx, id)
					if err != nil {
						return decimal.Zero, false
					}
					return emp.HourlyRate, true
				}
				shift, err := factory.NewRecordFactory().ShiftFromJSON(sj, lookup)
				if err != nil {
					return err
				}
				id, err := store.InsertShift(ctx, shift)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded shift %s: %s %s hours at %s\n",
					id, shift.EmployeeID, roster.WorkedHours(shift.ClockIn, shift.ClockOut, shift.BreakMinutes).StringFixed(2),
					shift.HourlyRate.StringFixed(2))
				return nil
			})
		},
	}
	add.Flags().StringVar(&sj.EmployeeID, "employee", "", "employee id")
	add.Flags().StringVar(&sj.ShiftDate, "date", "", "shift date (default today)")
	add.Flags().StringVar(&sj.StartTime, "start", "", "clock-in time, e.g. 09:00")
	add.Flags().StringVar(&sj.EndTime, "end", "", "clock-out time, e.g. 17:30")
	add.Flags().StringVar(&rate, "rate", "", "hourly rate (default: the employee's rate)")
	add.Flags().IntVar(&sj.BreakMinutes, "break", 0, "unpaid break minutes")
	for _, f := range []string{"employee", "start", "end"} {
		_ = add.MarkFlagRequired(f)
	}

	cmd.AddCommand(add)
	return cmd
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (c *cli) employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Maintain the employee roster",
	}

	var (
		ej       factory.EmployeeJSON
		rate     string
		inactive bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create or update an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseMoney("rate", rate)
			if err != nil {
				return err
			}
			ej.HourlyRate = r
			active := !inactive
			ej.Active = &active
			emp := factory.EmployeeFromJSON(ej)

			return c.withStore(func(ctx context.Context, store *sqlite.Store) error {
				if err := store.SaveEmployee(ctx, emp); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved employee %s (%s)\n", emp.ID, emp.Name)
				return nil
			})
		},
	}
	add.Flags().StringVar(&ej.ID, "id", "", "employee id, e.g. EMP001")
	add.Flags().StringVar(&ej.Name, "name", "", "full name")
	add.Flags().StringVar(&ej.Position, "position", "", "job position")
	add.Flags().StringVar(&rate, "rate", "", "default hourly rate")
	add.Flags().BoolVar(&inactive, "inactive", false, "mark the employee inactive")
	for _, f := range []string{"id", "name", "rate"} {
		_ = add.MarkFlagRequired(f)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(ctx context.Context, store *sqlite.Store) error {
				employees, err := store.ListEmployees(ctx)
				if err != nil {
					return err
				}
				return printEmployees(cmd.OutOrStdout(), employees)
			})
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func printEmployees(w io.Writer, employees []generic.Employee) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPOSITION\tRATE\tACTIVE")
	for _, e := range employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", e.ID, e.Name, e.Position, e.HourlyRate.StringFixed(2), e.Active)
	}
	return tw.Flush()
}

// =============================================================================
// IMPORT
// =============================================================================

func (c *cli) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk load records from a JSON array file",
		Long: `Loads a JSON array of records. Malformed records are skipped and
reported; the valid ones are stored in a single transaction.`,
	}

	records := factory.NewRecordFactory()
	importer := func(kind string, fn func(context.Context, *sqlite.Store, []byte) (factory.ImportResult, error)) *cobra.Command {
		return &cobra.Command{
			Use:   kind + " <file>",
			Short: "Import " + kind,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read %s: %w", args[0], err)
				}
				return c.withStore(func(ctx context.Context, store *sqlite.Store) error {
					result, err := fn(ctx, store, data)
					if err != nil {
						return err
					}
					for _, s := range result.Skipped {
						c.logger.Warn("record skipped", zap.String("kind", kind), zap.Int("index", s.Index), zap.String("reason", s.Reason))
						fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s #%d: %s\n", kind, s.Index, s.Reason)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s, skipped %d\n", result.Imported, kind, len(result.Skipped))
					return nil
				})
			},
		}
	}

	cmd.AddCommand(
		importer("sales", func(ctx context.Context, store *sqlite.Store, data []byte) (factory.ImportResult, error) {
			return records.ImportSales(ctx, store, data)
		}),
		importer("shifts", func(ctx context.Context, store *sqlite.Store, data []byte) (factory.ImportResult, error) {
			return records.ImportShifts(ctx, store, data)
		}),
		importer("employees", func(ctx context.Context, store *sqlite.Store, data []byte) (factory.ImportResult, error) {
			employees, err := records.ParseEmployees(data)
			if err != nil {
				return factory.ImportResult{}, err
			}
			result := factory.ImportResult{IDs: []string{}}
			for i, emp := range employees {
				if err := store.SaveEmployee(ctx, emp); err != nil {
					if !generic.IsClientError(err) {
						return result, err
					}
					result.Skipped = append(result.Skipped, factory.Skipped{Index: i, Reason: err.Error()})
					continue
				}
				result.IDs = append(result.IDs, emp.ID)
				result.Imported++
			}
			return result, nil
		}),
	)
	return cmd
}

// =============================================================================
// SEED
// =============================================================================

func (c *cli) seedCmd() *cobra.Command {
	var (
		days int
		seed int64
		end  string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write generated demo sales, shifts and staff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			endDay := generic.Today()
			if end != "" {
				d, err := generic.ParseDate(end)
				if err != nil {
					return &generic.ValidationError{Field: "end", Message: err.Error()}
				}
				endDay = d
			}

			return c.withStore(func(ctx context.Context, store *sqlite.Store) error {
				result, err := factory.NewSampleGenerator(seed).Seed(ctx, store, days, endDay)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s: %d employees, %d sales, %d shifts\n",
					result.Period, result.Employees, result.Sales, result.Shifts)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "number of days to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().StringVar(&end, "end", "", "last generated day (default today)")
	return cmd
}

// =============================================================================
// HELPERS
// =============================================================================

// withStore opens the database, runs fn and closes it.
func (c *cli) withStore(fn func(context.Context, *sqlite.Store) error) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(context.Background(), store)
}

func parseMoney(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &generic.ValidationError{Field: field, Message: fmt.Sprintf("not a number: %q", s)}
	}
	return d, nil
}
