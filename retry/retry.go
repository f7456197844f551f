package retry

import (
	"math/rand/v2"
	"time"
)

// State tracks a single outage of a stream. The zero value means no outage
// is in progress. The owner increments Attempt on every consecutive failure
// and resets the whole state to zero as soon as an item is received again.
type State struct {
	// Attempt is the number of consecutive failures observed so far,
	// including the one currently being handled.
	Attempt int

	// FirstFailure is when the current outage began.
	FirstFailure time.Time
}

// Elapsed returns how long the current outage has lasted.
func (s State) Elapsed() time.Duration {
	if s.FirstFailure.IsZero() {
		return 0
	}
	return time.Since(s.FirstFailure)
}

// Strategy decides how long to wait before the next reconnection attempt.
//
// NextDelay returns the wait duration and true to retry, or false to give
// up. Implementations must be pure with respect to the passed State: all
// mutable outage bookkeeping lives in the State owned by the caller, so a
// single Strategy value is safe to share across any number of streams.
type Strategy interface {
	NextDelay(s State) (time.Duration, bool)
}

// exhausted reports whether the attempt or elapsed-time budget is spent.
// Zero budgets mean unlimited.
func exhausted(s State, maxAttempts int, maxElapsed time.Duration) bool {
	if maxAttempts > 0 && s.Attempt >= maxAttempts {
		return true
	}
	if maxElapsed > 0 && s.Elapsed() >= maxElapsed {
		return true
	}
	return false
}

// jitter returns a uniformly random duration in [0, max).
func jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(max)))
}
