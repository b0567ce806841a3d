/*
main.go - Command-line entry point

PURPOSE:
  The restaurant CLI: ingest POS sales and roster shifts, maintain the
  employee list, and produce combined sales/labor reports. `serve` runs the
  same operations behind the HTTP API.

STARTUP SEQUENCE:
  1. Parse flags (cobra)
  2. Load and validate configuration (config.Load)
  3. Build the zap logger (log_level, --verbose forces debug)
  4. Open the SQLite store on demand in each command

COMMANDS:
  setup                          write default config, create the database
  sale add                       record one sale
  shift add                      record one shift
  employee add | list            maintain the roster
  import sales|shifts|employees  bulk load a JSON array file
  seed                           write generated demo data
  report                         combined report for a period (json | csv)
  purge sales|shifts             delete records in a period
  serve                          HTTP API and scheduled exports

EXIT STATUS:
  0 on success, 1 on any error. Errors are printed to stderr.

SEE ALSO:
  - config/config.go: Configuration keys
  - report/service.go: Report generation
  - api/server.go: HTTP routes used by serve
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/restaurant-engine/config"
	"github.com/warp/restaurant-engine/pkg/logger"
	"github.com/warp/restaurant-engine/report"
	"github.com/warp/restaurant-engine/store/sqlite"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// cli carries the state shared by every command of one invocation.
type cli struct {
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "restaurant",
		Short: "Restaurant POS and roster reporting",
		Long: `Records point-of-sale transactions and staff shifts in a local SQLite
database and reports revenue, labor cost and margin over any period of days.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// setup creates the configuration it would otherwise load.
			if cmd.Name() == "setup" {
				return nil
			}
			return c.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "configuration file (default "+config.DefaultPath+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		c.setupCmd(),
		c.saleCmd(),
		c.shiftCmd(),
		c.employeeCmd(),
		c.importCmd(),
		c.seedCmd(),
		c.reportCmd(),
		c.purgeCmd(),
		c.serveCmd(),
	)
	return root
}

// load reads the configuration and builds the logger.
func (c *cli) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.LogLevel
	if c.verbose {
		level = "debug"
	}
	c.logger, err = logger.New(level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// openStore opens the configured database.
func (c *cli) openStore() (*sqlite.Store, error) {
	c.logger.Debug("opening database", zap.String("path", c.cfg.DBPath))
	return sqlite.New(c.cfg.DBPath)
}

// reportService builds the report service over store.
func (c *cli) reportService(store *sqlite.Store) *report.Service {
	return report.NewService(store, c.cfg.Aggregator(),
		report.WithDefaultPeriod(c.cfg.DefaultPeriod),
		report.WithRestaurantName(c.cfg.RestaurantName),
		report.WithLogger(logger.Named(c.logger, "report")),
	)
}
