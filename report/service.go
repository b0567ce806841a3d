package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/pos"
	"github.com/warp/restaurant-engine/roster"
)

// topItemsLimit matches the five best sellers shown in a daily summary.
const topItemsLimit = 5

// Service loads records for a period and builds the report.
type Service struct {
	store          generic.Store
	aggregator     roster.Aggregator
	defaultPeriod  generic.PeriodType
	restaurantName string
	logger         *zap.Logger
	now            func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithDefaultPeriod sets the window used by Default.
func WithDefaultPeriod(pt generic.PeriodType) Option {
	return func(s *Service) { s.defaultPeriod = pt }
}

// WithRestaurantName labels generated reports.
func WithRestaurantName(name string) Option {
	return func(s *Service) { s.restaurantName = name }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the source of the generated_at timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a report service over store.
func NewService(store generic.Store, aggregator roster.Aggregator, opts ...Option) *Service {
	s := &Service{
		store:         store,
		aggregator:    aggregator,
		defaultPeriod: generic.PeriodDaily,
		logger:        zap.NewNop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPeriod returns the configured window ending on now's day.
func (s *Service) DefaultPeriod(now time.Time) generic.Period {
	return s.defaultPeriod.DefaultPeriod(now)
}

// Default generates the report for the configured default period.
func (s *Service) Default(ctx context.Context, now time.Time) (Report, error) {
	return s.Generate(ctx, s.DefaultPeriod(now))
}

// Generate queries sales and shifts for period and builds the report.
// Store errors are returned unchanged.
func (s *Service) Generate(ctx context.Context, period generic.Period) (Report, error) {
	if err := period.Validate(); err != nil {
		return Report{}, err
	}

	sales, err := s.store.QuerySales(ctx, period)
	if err != nil {
		return Report{}, err
	}
	shifts, err := s.store.QueryShifts(ctx, period)
	if err != nil {
		return Report{}, err
	}
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return Report{}, err
	}

	salesSummary := pos.Summarize(period, sales)
	laborSummary := s.aggregator.Summarize(period, shifts)

	r, err := Build(period, salesSummary, laborSummary)
	if err != nil {
		return Report{}, err
	}

	bucket := generic.PeriodDaily
	if period.Len() > 7*5 {
		bucket = generic.PeriodWeekly
	}
	r.Details = &Details{
		RestaurantName:     s.restaurantName,
		GeneratedAt:        s.now().UTC(),
		PeriodDays:         period.Len(),
		ActiveDays:         pos.ActiveDays(sales),
		SalesEmployees:     pos.ActiveEmployees(sales),
		AverageTransaction: salesSummary.AverageTransaction(),
		TopItems:           salesSummary.TopItems(topItemsLimit),
		Categories:         pos.ByCategory(sales),
		Hours:              pos.ByHour(sales),
		SalesBuckets:       pos.Buckets(sales, bucket),
		LaborBuckets:       s.aggregator.Buckets(shifts, bucket),
		Positions:          roster.ByPosition(shifts, employees),
		EmployeeNames:      make(map[string]string, len(employees)),
	}
	for _, e := range employees {
		r.Details.EmployeeNames[e.ID] = e.Name
	}

	s.logger.Debug("report generated",
		zap.Stringer("period", period),
		zap.Int("sales", len(sales)),
		zap.Int("shifts", len(shifts)),
		zap.String("revenue", r.Totals.Revenue.StringFixed(2)),
		zap.String("labor_cost", r.Totals.LaborCost.StringFixed(2)),
	)
	return r, nil
}
