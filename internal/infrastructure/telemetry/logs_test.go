package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/shcya/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type exportedRecord struct {
	body     string
	severity log.Severity
}

type memoryLogExporter struct {
	mu      sync.Mutex
	records []exportedRecord
}

func (e *memoryLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, exportedRecord{body: r.Body().AsString(), severity: r.Severity()})
	}
	return nil
}

func (e *memoryLogExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryLogExporter) ForceFlush(context.Context) error { return nil }

func (e *memoryLogExporter) Records() []exportedRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]exportedRecord(nil), e.records...)
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{"telemetry off", config.TelemetryConfig{LogExportEnabled: true}},
		{"log export off", config.TelemetryConfig{Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp, err := NewLoggerProvider(context.Background(), tt.cfg, zap.NewNop())
			require.NoError(t, err)
			assert.False(t, lp.IsEnabled())
			assert.False(t, lp.ZapCore("shcya", zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
			assert.NoError(t, lp.ForceFlush(context.Background()))
			assert.NoError(t, lp.Shutdown(context.Background()))
		})
	}
}

func TestLoggerProvider_ZapCoreExportsAtLevel(t *testing.T) {
	prev := global.GetLoggerProvider()
	t.Cleanup(func() { global.SetLoggerProvider(prev) })

	exporter := &memoryLogExporter{}
	cfg := enabledConfig()
	cfg.LogExportEnabled = true

	lp, err := NewLoggerProvider(context.Background(), cfg, zap.NewNop(), WithLogExporter(exporter))
	require.NoError(t, err)
	require.True(t, lp.IsEnabled())
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })

	core := lp.ZapCore("shcya", zapcore.WarnLevel)
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.WarnLevel))

	logger := zap.New(core).With(zap.String("form", "inquiry"))
	logger.Info("not exported")
	logger.Warn("notification failed")
	logger.Error("storage unavailable")
	require.NoError(t, lp.ForceFlush(context.Background()))

	records := exporter.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "notification failed", records[0].body)
	assert.Equal(t, log.SeverityWarn, records[0].severity)
	assert.Equal(t, "storage unavailable", records[1].body)
	assert.Equal(t, log.SeverityError, records[1].severity)
}

func TestLoggerProvider_NilZapCore(t *testing.T) {
	var lp *LoggerProvider
	assert.False(t, lp.ZapCore("shcya", zapcore.DebugLevel).Enabled(zapcore.FatalLevel))
}
