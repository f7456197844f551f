package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridlink/microgrid-client/retry"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "grpc://localhost:9090", cfg.ServerURL)
	assert.Equal(t, 60*time.Second, cfg.CallTimeout.Std())
	assert.Equal(t, 50, cfg.StreamBuffer)
	assert.Equal(t, "exponential", cfg.Retry.Policy)
	assert.Equal(t, 3*time.Second, cfg.Retry.Interval.Std())
	assert.Equal(t, time.Second, cfg.Retry.Initial.Std())
	assert.Equal(t, 60*time.Second, cfg.Retry.Max.Std())
	assert.Equal(t, 2.0, cfg.Retry.Multiplier)
	assert.Equal(t, time.Second, cfg.Retry.Jitter.Std())
	assert.Zero(t, cfg.Retry.MaxAttempts)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MICROGRID_SERVER_URL", "grpc://mg.example.com:4061?ssl=true")
	t.Setenv("MICROGRID_CALL_TIMEOUT", "15s")
	t.Setenv("MICROGRID_STREAM_BUFFER", "200")
	t.Setenv("MICROGRID_RETRY_POLICY", "fixed")
	t.Setenv("MICROGRID_RETRY_INTERVAL", "500ms")
	t.Setenv("MICROGRID_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("MICROGRID_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "grpc://mg.example.com:4061?ssl=true", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.CallTimeout.Std())
	assert.Equal(t, 200, cfg.StreamBuffer)
	assert.Equal(t, "fixed", cfg.Retry.Policy)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.Interval.Std())
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("MICROGRID_CALL_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_url: grpc://mg.example.com:4061?ssl=true
call_timeout: 30s
retry:
  policy: fixed
  interval: 5s
  max_attempts: 10
log:
  level: warn
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "grpc://mg.example.com:4061?ssl=true", cfg.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout.Std())
	assert.Equal(t, "fixed", cfg.Retry.Policy)
	assert.Equal(t, 5*time.Second, cfg.Retry.Interval.Std())
	assert.Equal(t, 10, cfg.Retry.MaxAttempts)
	assert.Equal(t, "warn", cfg.Log.Level)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, 50, cfg.StreamBuffer)
	assert.Equal(t, time.Second, cfg.Retry.Jitter.Std())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("call_timeout: [not, a, duration]"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestRetryConfigStrategy(t *testing.T) {
	fixed, err := RetryConfig{
		Policy:      "fixed",
		Interval:    Duration(2 * time.Second),
		Jitter:      Duration(time.Second),
		MaxAttempts: 4,
	}.Strategy()
	require.NoError(t, err)
	assert.Equal(t, retry.FixedInterval{
		Interval:    2 * time.Second,
		Jitter:      time.Second,
		MaxAttempts: 4,
	}, fixed)

	exp, err := Default().Retry.Strategy()
	require.NoError(t, err)
	assert.Equal(t, retry.ExponentialBackoff{
		Initial:    time.Second,
		Max:        60 * time.Second,
		Multiplier: 2,
		Jitter:     time.Second,
	}, exp)

	_, err = RetryConfig{Policy: "adaptive"}.Strategy()
	assert.Error(t, err)
}

func TestLogConfigBuild(t *testing.T) {
	logger, err := LogConfig{Level: "debug", Development: true}.Build()
	require.NoError(t, err)
	logger.Sync()

	_, err = LogConfig{Level: "loud"}.Build()
	assert.Error(t, err)
}
