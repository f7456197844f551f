package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the streaming core. A nil
// *Metrics is valid and turns every recording method into a no-op.
type Metrics struct {
	BroadcastersActive  prometheus.Gauge
	SubscriptionsActive *prometheus.GaugeVec
	Reconnects          *prometheus.CounterVec
	ItemsDelivered      *prometheus.CounterVec
	ItemsDropped        *prometheus.CounterVec
	TerminalFailures    *prometheus.CounterVec
}

// New registers the streaming instruments with reg and returns them.
// Call once per registry; instruments are partitioned by stream key label.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BroadcastersActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "microgrid_stream_broadcasters_active",
			Help: "Number of live stream broadcasters",
		}),
		SubscriptionsActive: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "microgrid_stream_subscriptions_active",
			Help: "Number of active subscriptions per stream",
		}, []string{"stream"}),
		Reconnects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "microgrid_stream_reconnects_total",
			Help: "Total number of upstream reconnection attempts",
		}, []string{"stream"}),
		ItemsDelivered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "microgrid_stream_items_delivered_total",
			Help: "Total items delivered to subscriptions",
		}, []string{"stream"}),
		ItemsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "microgrid_stream_items_dropped_total",
			Help: "Total items dropped due to full subscription buffers",
		}, []string{"stream"}),
		TerminalFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "microgrid_stream_terminal_failures_total",
			Help: "Total streams abandoned after the retry strategy gave up",
		}, []string{"stream"}),
	}
}

// BroadcasterStarted records a new live broadcaster.
func (m *Metrics) BroadcasterStarted() {
	if m != nil {
		m.BroadcastersActive.Inc()
	}
}

// BroadcasterStopped records a torn-down broadcaster.
func (m *Metrics) BroadcasterStopped() {
	if m != nil {
		m.BroadcastersActive.Dec()
	}
}

// SubscriptionAdded records a new subscription on a stream.
func (m *Metrics) SubscriptionAdded(stream string) {
	if m != nil {
		m.SubscriptionsActive.WithLabelValues(stream).Inc()
	}
}

// SubscriptionRemoved records a closed subscription on a stream.
func (m *Metrics) SubscriptionRemoved(stream string) {
	if m != nil {
		m.SubscriptionsActive.WithLabelValues(stream).Dec()
	}
}

// Reconnect records an upstream reconnection attempt.
func (m *Metrics) Reconnect(stream string) {
	if m != nil {
		m.Reconnects.WithLabelValues(stream).Inc()
	}
}

// Delivered records one item delivered to one subscription.
func (m *Metrics) Delivered(stream string) {
	if m != nil {
		m.ItemsDelivered.WithLabelValues(stream).Inc()
	}
}

// Dropped records one item dropped from a full subscription buffer.
func (m *Metrics) Dropped(stream string) {
	if m != nil {
		m.ItemsDropped.WithLabelValues(stream).Inc()
	}
}

// TerminalFailure records a stream abandoned by its retry strategy.
func (m *Metrics) TerminalFailure(stream string) {
	if m != nil {
		m.TerminalFailures.WithLabelValues(stream).Inc()
	}
}
