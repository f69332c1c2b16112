package telemetry

import (
	"context"
	"database/sql"
	"time"

	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultSlowQueryThreshold = 200 * time.Millisecond
	queryStartKey             = "finapp2p:query_start"
)

// RegisterDBTracing installs the otelgorm plugin so every statement becomes a
// client span. Query variables are left out unless cfg.DBLogFullSQL is set.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, system string, tp trace.TracerProvider, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(system)}
	if tp != nil {
		opts = append(opts, otelgorm.WithTracerProvider(tp))
	}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", system),
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
	)
	return nil
}

// DBMetrics is a gorm plugin that counts and times statements and logs the
// slow ones.
type DBMetrics struct {
	queries   metric.Int64Counter
	duration  metric.Float64Histogram
	slow      metric.Int64Counter
	threshold time.Duration
	logger    *zap.Logger
}

// NewDBMetrics registers the statement instruments on meter. A zero threshold
// falls back to 200ms.
func NewDBMetrics(meter metric.Meter, threshold time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if threshold <= 0 {
		threshold = defaultSlowQueryThreshold
	}

	queries, err := meter.Int64Counter(
		"db_query_total",
		metric.WithDescription("Total number of database statements by operation"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Database statement latency in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5),
	)
	if err != nil {
		return nil, err
	}
	slow, err := meter.Int64Counter(
		"db_slow_query_total",
		metric.WithDescription("Database statements slower than the configured threshold"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, err
	}

	return &DBMetrics{
		queries:   queries,
		duration:  duration,
		slow:      slow,
		threshold: threshold,
		logger:    logger,
	}, nil
}

// Name implements gorm.Plugin
func (m *DBMetrics) Name() string {
	return "finapp2p:db_metrics"
}

// Initialize implements gorm.Plugin
func (m *DBMetrics) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op     string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, h := range hooks {
		if err := h.before("finapp2p_metrics:before_"+h.op, startTimer); err != nil {
			return err
		}
		if err := h.after("finapp2p_metrics:after_"+h.op, m.observe(h.op)); err != nil {
			return err
		}
	}
	return nil
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func (m *DBMetrics) observe(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)

		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		attrs := metric.WithAttributes(AttrDBOp.String(op), AttrDBTable.String(db.Statement.Table))
		m.queries.Add(ctx, 1, attrs)
		m.duration.Record(ctx, elapsed.Seconds(), attrs)

		if elapsed < m.threshold {
			return
		}
		m.slow.Add(ctx, 1, attrs)
		m.logger.Warn("Slow database query",
			zap.String("operation", op),
			zap.String("table", db.Statement.Table),
			zap.Duration("duration", elapsed),
			zap.Duration("threshold", m.threshold),
			zap.Int64("rows_affected", db.Statement.RowsAffected),
		)
	}
}

// ObservePool reports connection pool gauges for sqlDB on every collection.
// Unregister the returned registration before closing sqlDB.
func ObservePool(meter metric.Meter, sqlDB *sql.DB) (metric.Registration, error) {
	connections, err := meter.Int64ObservableGauge(
		"db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}
	maxOpen, err := meter.Int64ObservableGauge(
		"db_pool_connections_max",
		metric.WithDescription("Maximum number of open connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter(
		"db_pool_wait_total",
		metric.WithDescription("Connections waited for"),
		metric.WithUnit("{wait}"),
	)
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrPoolState.String("idle")))
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrPoolState.String("in_use")))
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, connections, maxOpen, waits)
}

var _ gorm.Plugin = (*DBMetrics)(nil)
