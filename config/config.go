package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/gridlink/microgrid-client/internal/logging"
	"github.com/gridlink/microgrid-client/retry"
)

// Duration is a time.Duration that reads "3s" style strings from both
// environment variables and YAML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for envconfig.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (d *Duration) UnmarshalYAML(b []byte) error {
	var raw string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(raw))
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds everything needed to construct a microgrid client.
type Config struct {
	// ServerURL locates the microgrid API server, in the form
	// "grpc://host[:port][?ssl=bool]".
	ServerURL string `envconfig:"SERVER_URL" yaml:"server_url" default:"grpc://localhost:9090"`

	// CallTimeout bounds every unary call.
	CallTimeout Duration `envconfig:"CALL_TIMEOUT" yaml:"call_timeout" default:"60s"`

	// StreamBuffer is the per-subscription delivery buffer capacity.
	StreamBuffer int `envconfig:"STREAM_BUFFER" yaml:"stream_buffer" default:"50"`

	Retry RetryConfig `yaml:"retry"`
	Log   LogConfig   `yaml:"log"`
}

// RetryConfig selects and tunes the stream reconnection strategy.
type RetryConfig struct {
	// Policy is "fixed" or "exponential".
	Policy string `envconfig:"RETRY_POLICY" yaml:"policy" default:"exponential"`

	// Interval is the wait between attempts for the fixed policy.
	Interval Duration `envconfig:"RETRY_INTERVAL" yaml:"interval" default:"3s"`

	// Initial and Max bound the wait for the exponential policy.
	Initial Duration `envconfig:"RETRY_INITIAL" yaml:"initial" default:"1s"`
	Max     Duration `envconfig:"RETRY_MAX" yaml:"max" default:"60s"`

	// Multiplier scales the exponential wait after every failure.
	Multiplier float64 `envconfig:"RETRY_MULTIPLIER" yaml:"multiplier" default:"2"`

	// Jitter is the upper bound of the random addition to every wait.
	Jitter Duration `envconfig:"RETRY_JITTER" yaml:"jitter" default:"1s"`

	// MaxAttempts and MaxElapsed stop retrying; zero means unlimited.
	MaxAttempts int      `envconfig:"RETRY_MAX_ATTEMPTS" yaml:"max_attempts" default:"0"`
	MaxElapsed  Duration `envconfig:"RETRY_MAX_ELAPSED" yaml:"max_elapsed" default:"0s"`
}

// LogConfig tunes logger construction.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" yaml:"level" default:"info"`
	Development bool   `envconfig:"LOG_DEV" yaml:"development" default:"false"`
}

// Load reads configuration from MICROGRID_* environment variables, falling
// back to the documented defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("microgrid", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		ServerURL:    "grpc://localhost:9090",
		CallTimeout:  Duration(60 * time.Second),
		StreamBuffer: 50,
		Retry: RetryConfig{
			Policy:     "exponential",
			Interval:   Duration(3 * time.Second),
			Initial:    Duration(1 * time.Second),
			Max:        Duration(60 * time.Second),
			Multiplier: 2,
			Jitter:     Duration(1 * time.Second),
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadFile reads a YAML configuration file over the defaults. Fields absent
// from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Strategy builds the retry strategy the config describes.
func (r RetryConfig) Strategy() (retry.Strategy, error) {
	switch r.Policy {
	case "fixed":
		return retry.FixedInterval{
			Interval:    r.Interval.Std(),
			Jitter:      r.Jitter.Std(),
			MaxAttempts: r.MaxAttempts,
			MaxElapsed:  r.MaxElapsed.Std(),
		}, nil
	case "exponential":
		return retry.ExponentialBackoff{
			Initial:     r.Initial.Std(),
			Max:         r.Max.Std(),
			Multiplier:  r.Multiplier,
			Jitter:      r.Jitter.Std(),
			MaxAttempts: r.MaxAttempts,
			MaxElapsed:  r.MaxElapsed.Std(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown retry policy %q", r.Policy)
	}
}

// Build constructs the configured logger.
func (l LogConfig) Build() (*zap.Logger, error) {
	return logging.New(logging.Options{Level: l.Level, Development: l.Development})
}
