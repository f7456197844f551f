// Package metrics defines the measurement model of the microgrid API:
// metric identifiers, inclusive bounds, and metric samples (plain or
// aggregated) as they arrive on component data streams.
package metrics
