package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/report"
	"github.com/warp/restaurant-engine/store/sqlite"
)

// =============================================================================
// REPORT
// =============================================================================

func (c *cli) reportCmd() *cobra.Command {
	var (
		from, to string
		days     int
		format   string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Combined sales and labor report for a period",
		Long: `Aggregates sales and shifts over a closed period of days and prints
revenue per item, hours and cost per employee, and the grand totals.

Period selection, first match wins:
  --days N         the N days ending on --to (default today)
  --from/--to      explicit bounds, a single bound means one day
  (none)           the configured default_period ending today`,
		Example: `  restaurant report --from 2024-01-01 --to 2024-01-07
  restaurant report --days 30 --format csv --output reports/january.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			return c.withStore(func(ctx context.Context, store *sqlite.Store) error {
				svc := c.reportService(store)
				period, err := resolvePeriod(from, to, days, svc.DefaultPeriod(generic.Today()))
				if err != nil {
					return err
				}

				rep, err := svc.Generate(ctx, period)
				if err != nil {
					return err
				}
				return writeReport(cmd.OutOrStdout(), output, rep, f)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "number of days ending on --to")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// resolvePeriod applies the flag precedence documented on the report command.
func resolvePeriod(from, to string, days int, fallback generic.Period) (generic.Period, error) {
	if days < 0 {
		return generic.Period{}, &generic.ValidationError{Field: "days", Message: "must be positive"}
	}
	if days > 0 {
		end := generic.Today()
		if to != "" {
			d, err := generic.ParseDate(to)
			if err != nil {
				return generic.Period{}, &generic.ValidationError{Field: "to", Message: err.Error()}
			}
			end = d
		}
		return generic.LastNDays(days, end), nil
	}

	if from == "" && to == "" {
		return fallback, nil
	}
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	return parsePeriodFlags(from, to)
}

func parsePeriodFlags(from, to string) (generic.Period, error) {
	start, err := generic.ParseDate(from)
	if err != nil {
		return generic.Period{}, &generic.ValidationError{Field: "from", Message: err.Error()}
	}
	end, err := generic.ParseDate(to)
	if err != nil {
		return generic.Period{}, &generic.ValidationError{Field: "to", Message: err.Error()}
	}
	return generic.NewPeriod(start, end)
}

func writeReport(stdout io.Writer, output string, rep report.Report, f report.Format) error {
	if output == "" {
		return report.Write(stdout, rep, f)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := report.Write(file, rep, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	fmt.Fprintf(stdout, "Report written to %s\n", output)
	return nil
}

// =============================================================================
// PURGE
// =============================================================================

func (c *cli) purgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete records in a period",
	}

	purger := func(kind string, fn func(*sqlite.Store) func(context.Context, generic.Period) (int64, error)) *cobra.Command {
		var from, to string
		sub := &cobra.Command{
			Use:   kind,
			Short: "Delete " + kind + " between --from and --to (inclusive)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				period, err := parsePeriodFlags(from, to)
				if err != nil {
					return err
				}
				return c.withStore(func(ctx context.Context, store *sqlite.Store) error {
					n, err := fn(store)(ctx, period)
					if err != nil {
						return err
					}
					c.logger.Info("records purged", zap.String("kind", kind), zap.Stringer("period", period), zap.Int64("deleted", n))
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d %s in %s\n", n, kind, period)
					return nil
				})
			},
		}
		sub.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
		sub.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
		_ = sub.MarkFlagRequired("from")
		_ = sub.MarkFlagRequired("to")
		return sub
	}

	cmd.AddCommand(
		purger("sales", func(s *sqlite.Store) func(context.Context, generic.Period) (int64, error) { return s.PurgeSales }),
		purger("shifts", func(s *sqlite.Store) func(context.Context, generic.Period) (int64, error) { return s.PurgeShifts }),
	)
	return cmd
}
