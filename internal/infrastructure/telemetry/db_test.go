package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/finapp2p/backend/internal/infrastructure/persistence/models"
	"github.com/finapp2p/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestDBMetrics_CountsStatements(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	mp, reader := newManualMeterProvider(t)

	plugin, err := NewDBMetrics(mp.Meter(TracerName), time.Hour, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, db.Use(plugin))

	ctx := context.Background()
	model := models.PersonModel{PersonType: "pf", Name: "Ana", IsActive: true}
	model.ID = "p-1"
	require.NoError(t, db.WithContext(ctx).Create(&model).Error)
	var found []models.PersonModel
	require.NoError(t, db.WithContext(ctx).Find(&found).Error)
	require.Len(t, found, 1)

	rm := collect(t, reader)
	assert.EqualValues(t, 1, sumFor(t, rm, "db_query_total", AttrDBOp.String("create"), AttrDBTable.String("person")))
	assert.EqualValues(t, 1, sumFor(t, rm, "db_query_total", AttrDBOp.String("query"), AttrDBTable.String("person")))
	_, ok := findMetric(rm, "db_slow_query_total")
	assert.False(t, ok, "no statement should cross a one hour threshold")
}

func TestDBMetrics_LogsSlowQueries(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	mp, reader := newManualMeterProvider(t)
	core, logs := observer.New(zapcore.WarnLevel)

	plugin, err := NewDBMetrics(mp.Meter(TracerName), time.Nanosecond, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, db.Use(plugin))

	var found []models.PersonModel
	require.NoError(t, db.Find(&found).Error)

	slow := logs.FilterMessage("Slow database query").All()
	require.Len(t, slow, 1)
	assert.Equal(t, "query", slow[0].ContextMap()["operation"])
	assert.Equal(t, "person", slow[0].ContextMap()["table"])
	assert.EqualValues(t, 1, sumFor(t, collect(t, reader), "db_slow_query_total"))
}

func TestNewDBMetrics_DefaultThreshold(t *testing.T) {
	mp, _ := newManualMeterProvider(t)
	plugin, err := NewDBMetrics(mp.Meter(TracerName), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultSlowQueryThreshold, plugin.threshold)
	assert.Equal(t, "finapp2p:db_metrics", plugin.Name())
}

func TestObservePool(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	mp, reader := newManualMeterProvider(t)

	reg, err := ObservePool(mp.Meter(TracerName), sqlDB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Unregister() })

	rm := collect(t, reader)
	maxOpen, ok := gaugeFor(t, rm, "db_pool_connections_max")
	require.True(t, ok)
	assert.EqualValues(t, 1, maxOpen)
	_, ok = gaugeFor(t, rm, "db_pool_connections", AttrPoolState.String("idle"))
	assert.True(t, ok)
	_, ok = gaugeFor(t, rm, "db_pool_connections", AttrPoolState.String("in_use"))
	assert.True(t, ok)
}

func TestRegisterDBTracing(t *testing.T) {
	t.Run("disabled registers nothing", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		spans := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))

		require.NoError(t, RegisterDBTracing(db, config.TelemetryConfig{}, "sqlite", tp, nil))
		var found []models.PersonModel
		require.NoError(t, db.Find(&found).Error)
		assert.Empty(t, spans.Ended())
	})

	t.Run("enabled emits a span per statement", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		spans := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
		cfg := config.TelemetryConfig{DBTraceEnabled: true}

		require.NoError(t, RegisterDBTracing(db, cfg, "sqlite", tp, zaptest.NewLogger(t)))
		var found []models.PersonModel
		require.NoError(t, db.Find(&found).Error)

		ended := spans.Ended()
		require.NotEmpty(t, ended)
		assert.Equal(t, trace.SpanKindClient, ended[len(ended)-1].SpanKind())
	})
}
