package retry

import (
	"math"
	"time"
)

// Defaults applied by the constructors when a field is left zero.
const (
	DefaultInterval        = 3 * time.Second
	DefaultJitter          = 1 * time.Second
	DefaultInitialInterval = 1 * time.Second
	DefaultMaxInterval     = 60 * time.Second
	DefaultMultiplier      = 2.0
)

// FixedInterval retries with a constant wait between attempts, plus an
// optional random jitter to avoid thundering reconnects.
type FixedInterval struct {
	// Interval is the base wait between attempts.
	Interval time.Duration

	// Jitter is the upper bound of a uniformly random addition to every
	// wait. Zero disables jitter.
	Jitter time.Duration

	// MaxAttempts stops retrying once this many consecutive failures have
	// been observed. Zero means retry forever.
	MaxAttempts int

	// MaxElapsed stops retrying once the outage has lasted this long.
	// Zero means no time limit.
	MaxElapsed time.Duration
}

// NewFixedInterval returns a FixedInterval with the default interval and
// jitter and no attempt or time limit.
func NewFixedInterval() FixedInterval {
	return FixedInterval{Interval: DefaultInterval, Jitter: DefaultJitter}
}

// NextDelay implements Strategy.
func (f FixedInterval) NextDelay(s State) (time.Duration, bool) {
	if exhausted(s, f.MaxAttempts, f.MaxElapsed) {
		return 0, false
	}
	interval := f.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return interval + jitter(f.Jitter), true
}

// ExponentialBackoff doubles (by Multiplier) the wait after every
// consecutive failure, capped at Max, plus an optional random jitter.
type ExponentialBackoff struct {
	// Initial is the wait after the first failure.
	Initial time.Duration

	// Max caps the computed wait.
	Max time.Duration

	// Multiplier scales the wait after every failure. Values <= 1 fall
	// back to DefaultMultiplier.
	Multiplier float64

	// Jitter is the upper bound of a uniformly random addition to every
	// wait. Zero disables jitter.
	Jitter time.Duration

	// MaxAttempts stops retrying once this many consecutive failures have
	// been observed. Zero means retry forever.
	MaxAttempts int

	// MaxElapsed stops retrying once the outage has lasted this long.
	// Zero means no time limit.
	MaxElapsed time.Duration
}

// NewExponentialBackoff returns an ExponentialBackoff with the default
// initial interval, cap, multiplier and jitter, and no attempt limit.
func NewExponentialBackoff() ExponentialBackoff {
	return ExponentialBackoff{
		Initial:    DefaultInitialInterval,
		Max:        DefaultMaxInterval,
		Multiplier: DefaultMultiplier,
		Jitter:     DefaultJitter,
	}
}

// NextDelay implements Strategy.
func (e ExponentialBackoff) NextDelay(s State) (time.Duration, bool) {
	if exhausted(s, e.MaxAttempts, e.MaxElapsed) {
		return 0, false
	}

	initial := e.Initial
	if initial <= 0 {
		initial = DefaultInitialInterval
	}
	max := e.Max
	if max <= 0 {
		max = DefaultMaxInterval
	}
	multiplier := e.Multiplier
	if multiplier <= 1 {
		multiplier = DefaultMultiplier
	}

	exp := s.Attempt - 1
	if exp < 0 {
		exp = 0
	}
	wait := float64(initial) * math.Pow(multiplier, float64(exp))
	if wait > float64(max) {
		wait = float64(max)
	}
	return time.Duration(wait) + jitter(e.Jitter), true
}
