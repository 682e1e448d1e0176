package telemetry

import (
	"time"

	"github.com/shcya/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	queryStartKey        = "telemetry:query_start"
	defaultSlowThreshold = 200 * time.Millisecond
)

// AttrDBSlowQuery is set on query spans that took longer than the threshold
var AttrDBSlowQuery = attribute.Key("db.slow_query")

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled bool
	// LogFullSQL keeps bound variables in db.statement. Development only.
	LogFullSQL      bool
	SlowQueryThresh time.Duration
	// DBSystem is reported as db.name, e.g. "postgres" or "sqlite".
	DBSystem string
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// DBTracingConfigFrom derives database tracing settings from the telemetry
// section. Tracing needs both the global switch and the database switch.
func DBTracingConfigFrom(cfg config.TelemetryConfig, driver string) DBTracingConfig {
	return DBTracingConfig{
		Enabled:         cfg.Enabled && cfg.DBTraceEnabled,
		LogFullSQL:      cfg.DBLogFullSQL,
		SlowQueryThresh: cfg.DBSlowQueryThresh,
		DBSystem:        driver,
	}
}

// RegisterDBTracing installs the otelgorm plugin on db and marks spans of
// slow statements with db.slow_query=true.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = defaultSlowThreshold
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(cfg.DBSystem),
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(cfg.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerSlowQueryCallbacks(db, cfg.SlowQueryThresh); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
		zap.String("db_system", cfg.DBSystem),
	)
	return nil
}

// registerSlowQueryCallbacks runs inside the otelgorm span: the timer
// starts after otel:before:* and is read before otel:after:* ends the span.
func registerSlowQueryCallbacks(db *gorm.DB, threshold time.Duration) error {
	start := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	finish := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		begin, ok := v.(time.Time)
		if !ok || time.Since(begin) < threshold {
			return
		}
		span := trace.SpanFromContext(tx.Statement.Context)
		span.SetAttributes(AttrDBSlowQuery.Bool(true))
	}

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").After("otel:before:create").Register("telemetry:start_create", start); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Before("otel:after:create").Register("telemetry:finish_create", finish); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").After("otel:before:query").Register("telemetry:start_query", start); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Before("otel:after:query").Register("telemetry:finish_query", finish); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").After("otel:before:update").Register("telemetry:start_update", start); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Before("otel:after:update").Register("telemetry:finish_update", finish); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").After("otel:before:delete").Register("telemetry:start_delete", start); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("telemetry:finish_delete", finish); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").After("otel:before:row").Register("telemetry:start_row", start); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Before("otel:after:row").Register("telemetry:finish_row", finish); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").After("otel:before:raw").Register("telemetry:start_raw", start); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("telemetry:finish_raw", finish)
}
