package observability

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/jwt-issuer/internal/config"
	"github.com/spec-kit/jwt-issuer/internal/events"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/jwt/issuer", "POST", 200, 2*time.Millisecond)
	m.RecordRequest("/jwt/issuer", "POST", 200, 4*time.Millisecond)
	m.RecordError("/jwt/issuer", "POST", "VALIDATION_FAILED")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/jwt/issuer|POST|200"])
	assert.InDelta(t, 3.0, snap.AvgLatencyMs["/jwt/issuer|POST|200"], 0.001)
	assert.Equal(t, int64(1), snap.Errors["/jwt/issuer|POST|VALIDATION_FAILED"])
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordOutcome(events.EventTokenIssued, "")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestMetricsCountsIssuanceEvents(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	m := NewMetrics()
	m.SubscribeTo(d)

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, events.NewEvent(events.EventTokenIssued, "app1", "u1")))
	rejected := events.NewEvent(events.EventIssuanceRejected, "app1", "")
	rejected.Code = "VALIDATION_FAILED"
	require.NoError(t, d.Publish(ctx, rejected))
	require.NoError(t, d.Publish(ctx, rejected))

	outcomes := m.Snapshot().Outcomes
	assert.Equal(t, int64(1), outcomes["token_issued"])
	assert.Equal(t, int64(2), outcomes["issuance_rejected|VALIDATION_FAILED"])
}

func TestNewLoggerWritesFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issuer.log")
	logger, err := NewLogger(config.LoggerConfig{Level: "debug", FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("file sink check")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file sink check")
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
