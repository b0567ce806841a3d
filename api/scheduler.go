/*
scheduler.go - Scheduled report export

PURPOSE:
  Periodically generates the report for the configured default period and
  writes it as JSON to the export directory.

DESIGN:
  - robfig/cron drives the schedule (standard 5-field spec, UTC)
  - Each run writes <export_dir>/<restaurant>-report-<start>_<end>.json,
    replacing the file of an earlier run over the same period
  - Overlapping runs are skipped
  - Failures are logged, never fatal

USAGE:
  scheduler, err := NewReportScheduler(reports, "0 23 * * *", "reports", "Dummy Bistro", logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - report/service.go: Default report generation
  - config/config.go: report_schedule, export_dir
*/
package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/report"
)

// runTimeout bounds a single scheduled export.
const runTimeout = 2 * time.Minute

// ReportScheduler exports the default report on a cron schedule.
type ReportScheduler struct {
	Reports   *report.Service
	ExportDir string
	Spec      string

	prefix string
	cron   *cron.Cron
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	running bool
}

// NewReportScheduler validates spec and creates a stopped scheduler.
func NewReportScheduler(reports *report.Service, spec, exportDir, restaurantName string, logger *zap.Logger) (*ReportScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, &generic.ConfigurationError{Key: "report_schedule", Reason: err.Error(), Err: err}
	}

	return &ReportScheduler{
		Reports:   reports,
		ExportDir: exportDir,
		Spec:      spec,
		prefix:    fileSlug(restaurantName),
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.Named("scheduler"),
		now:    time.Now,
	}, nil
}

// Start begins the schedule. Calling Start twice is a no-op.
func (rs *ReportScheduler) Start() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.running {
		return nil
	}
	if len(rs.cron.Entries()) == 0 {
		if _, err := rs.cron.AddFunc(rs.Spec, rs.run); err != nil {
			return &generic.ConfigurationError{Key: "report_schedule", Reason: err.Error(), Err: err}
		}
	}
	rs.cron.Start()
	rs.running = true

	rs.logger.Info("started", zap.String("schedule", rs.Spec), zap.String("export_dir", rs.ExportDir))
	return nil
}

// Stop halts the schedule and waits for a running export to finish.
func (rs *ReportScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.running {
		return
	}
	<-rs.cron.Stop().Done()
	rs.running = false
	rs.logger.Info("stopped")
}

func (rs *ReportScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := rs.RunNow(ctx); err != nil {
		rs.logger.Error("report export failed", zap.Error(err))
	}
}

// RunNow generates and writes the default report immediately and returns
// the file path.
func (rs *ReportScheduler) RunNow(ctx context.Context) (string, error) {
	rep, err := rs.Reports.Default(ctx, rs.now())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(rs.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(rs.ExportDir, ExportFileName(rs.prefix, rep.Period))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := report.WriteJSON(f, rep); err != nil {
		f.Close()
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}

	rs.logger.Info("report exported",
		zap.String("path", path),
		zap.String("revenue", rep.Totals.Revenue.StringFixed(2)),
		zap.String("labor_cost", rep.Totals.LaborCost.StringFixed(2)),
	)
	return path, nil
}

// ExportFileName is <prefix>-report-<start>_<end>.json.
func ExportFileName(prefix string, period generic.Period) string {
	return fmt.Sprintf("%s-report-%s_%s.json", prefix,
		period.Start.Format(generic.DateLayout), period.End.Format(generic.DateLayout))
}

// fileSlug lowercases name and collapses anything but letters and digits
// into single dashes. An empty result becomes "restaurant".
func fileSlug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "restaurant"
	}
	return slug
}
