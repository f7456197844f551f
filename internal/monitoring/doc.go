// Package monitoring provides Prometheus instrumentation for the
// streaming core: broadcaster and subscription lifecycles, reconnection
// attempts, delivery and drop counts, and terminal failures.
//
// Instruments are registered against a caller-supplied
// prometheus.Registerer so embedding applications and tests control
// registration. A nil *Metrics disables instrumentation entirely.
package monitoring
