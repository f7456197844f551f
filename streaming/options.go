package streaming

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gridlink/microgrid-client/internal/monitoring"
)

// DefaultBufferSize is the per-subscription delivery buffer capacity used
// when WithBufferSize is not given.
const DefaultBufferSize = 50

type settings struct {
	logger  *zap.Logger
	bufSize int
	metrics *monitoring.Metrics
}

func defaultSettings() settings {
	return settings{
		logger:  zap.NewNop(),
		bufSize: DefaultBufferSize,
	}
}

// Option configures a Registry or a standalone Broadcaster.
type Option func(*settings)

// WithLogger sets the logger used by pump goroutines.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBufferSize sets the per-subscription delivery buffer capacity.
// When a subscription's buffer is full, its oldest buffered item is dropped
// to make room; other subscriptions are unaffected. Values below 1 are
// clamped to 1.
func WithBufferSize(n int) Option {
	return func(s *settings) {
		if n < 1 {
			n = 1
		}
		s.bufSize = n
	}
}

// WithRegisterer enables Prometheus instrumentation, registering the
// streaming instruments with reg. Use a distinct registerer per Registry;
// the instruments are partitioned by stream key internally.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *settings) {
		if reg != nil {
			s.metrics = monitoring.New(reg)
		}
	}
}
