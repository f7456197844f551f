package metrics

import "time"

// AggregatedValue carries a server-side aggregation of an underlying metric
// over unnamed sub-components (e.g. phases or battery blocks), together
// with the raw values it was computed from.
type AggregatedValue struct {
	Avg       float64
	Min       float64
	Max       float64
	RawValues []float64
}

// Sample is one measurement of one metric of one component.
type Sample struct {
	// SampledAt is when the measurement was taken.
	SampledAt time.Time

	// Metric identifies the measured quantity.
	Metric Metric

	// Value is the measured value. For aggregate metrics it mirrors
	// Aggregated.Avg.
	Value float64

	// Aggregated is non-nil when the server reported an aggregation
	// rather than a single reading.
	Aggregated *AggregatedValue

	// Bounds are the limits the metric must respect at sampling time.
	// When more than one set is present the admissible region is their
	// union.
	Bounds []Bounds

	// Connection names the sub-component connection the sample refers to,
	// if any.
	Connection string
}
