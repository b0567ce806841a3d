package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/restaurant-engine/api"
	"github.com/warp/restaurant-engine/pkg/logger"
)

// shutdownTimeout bounds the wait for in-flight requests on SIGINT/SIGTERM.
const shutdownTimeout = 30 * time.Second

func (c *cli) serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serves the HTTP API on --port (default: the configured port). When
report_schedule is set, the default report is also exported on that schedule.

On SIGINT/SIGTERM the server stops accepting connections, waits up to 30s
for active requests, stops the scheduler and closes the database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				c.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	return cmd
}

// serve runs the API until ctx is cancelled.
func (c *cli) serve(ctx context.Context) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	reports := c.reportService(store)
	handler := api.NewHandler(store, reports, c.cfg.Aggregator(), c.logger)

	if c.cfg.ReportSchedule != "" {
		scheduler, err := api.NewReportScheduler(reports, c.cfg.ReportSchedule, c.cfg.ExportDir,
			c.cfg.RestaurantName, logger.Named(c.logger, "export"))
		if err != nil {
			return err
		}
		if err := scheduler.Start(); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", c.cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("server starting",
			zap.Int("port", c.cfg.Server.Port),
			zap.String("api", fmt.Sprintf("http://localhost:%d/api", c.cfg.Server.Port)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	c.logger.Info("server stopped")
	return nil
}
