// Package retry provides pluggable reconnection strategies for streams.
//
// A Strategy is consulted after every stream failure with the current
// outage State and answers "wait this long, then try again" or "give up".
// Strategies are stateless; the per-outage attempt counter and start time
// travel in the State value owned by the component doing the retrying, so
// one Strategy can serve many independent streams without shared counters.
//
// Built-in strategies:
//   - FixedInterval: constant wait with optional jitter
//   - ExponentialBackoff: multiplicative wait growth with a cap
//
// Both support bounding by attempt count and by total outage duration.
package retry
