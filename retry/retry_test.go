package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateElapsed(t *testing.T) {
	assert.Equal(t, time.Duration(0), State{}.Elapsed())

	s := State{Attempt: 1, FirstFailure: time.Now().Add(-time.Second)}
	assert.GreaterOrEqual(t, s.Elapsed(), time.Second)
}

func TestFixedIntervalDelay(t *testing.T) {
	strategy := FixedInterval{Interval: 100 * time.Millisecond}

	for attempt := 1; attempt <= 5; attempt++ {
		delay, ok := strategy.NextDelay(State{Attempt: attempt, FirstFailure: time.Now()})
		require.True(t, ok, "attempt %d", attempt)
		assert.Equal(t, 100*time.Millisecond, delay)
	}
}

func TestFixedIntervalJitterBounds(t *testing.T) {
	strategy := FixedInterval{Interval: 100 * time.Millisecond, Jitter: 50 * time.Millisecond}

	for i := 0; i < 100; i++ {
		delay, ok := strategy.NextDelay(State{Attempt: 1, FirstFailure: time.Now()})
		require.True(t, ok)
		assert.GreaterOrEqual(t, delay, 100*time.Millisecond)
		assert.Less(t, delay, 150*time.Millisecond)
	}
}

func TestFixedIntervalMaxAttempts(t *testing.T) {
	strategy := FixedInterval{Interval: time.Millisecond, MaxAttempts: 3}

	_, ok := strategy.NextDelay(State{Attempt: 2, FirstFailure: time.Now()})
	assert.True(t, ok)

	_, ok = strategy.NextDelay(State{Attempt: 3, FirstFailure: time.Now()})
	assert.False(t, ok, "attempt budget must be spent after 3 failures")
}

func TestFixedIntervalMaxElapsed(t *testing.T) {
	strategy := FixedInterval{Interval: time.Millisecond, MaxElapsed: time.Minute}

	fresh := State{Attempt: 1, FirstFailure: time.Now()}
	_, ok := strategy.NextDelay(fresh)
	assert.True(t, ok)

	old := State{Attempt: 1, FirstFailure: time.Now().Add(-2 * time.Minute)}
	_, ok = strategy.NextDelay(old)
	assert.False(t, ok)
}

func TestFixedIntervalDefaults(t *testing.T) {
	strategy := NewFixedInterval()
	assert.Equal(t, DefaultInterval, strategy.Interval)
	assert.Equal(t, DefaultJitter, strategy.Jitter)
	assert.Zero(t, strategy.MaxAttempts)

	// A zero interval falls back to the default instead of hot-looping.
	delay, ok := FixedInterval{}.NextDelay(State{Attempt: 1, FirstFailure: time.Now()})
	require.True(t, ok)
	assert.Equal(t, DefaultInterval, delay)
}

func TestExponentialBackoffSchedule(t *testing.T) {
	strategy := ExponentialBackoff{
		Initial:    100 * time.Millisecond,
		Max:        time.Second,
		Multiplier: 2,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, time.Second}, // capped
		{9, time.Second}, // still capped
	}
	for _, tt := range tests {
		delay, ok := strategy.NextDelay(State{Attempt: tt.attempt, FirstFailure: time.Now()})
		require.True(t, ok, "attempt %d", tt.attempt)
		assert.Equal(t, tt.want, delay, "attempt %d", tt.attempt)
	}
}

func TestExponentialBackoffMaxAttempts(t *testing.T) {
	strategy := ExponentialBackoff{Initial: time.Millisecond, Max: time.Second, Multiplier: 2, MaxAttempts: 2}

	_, ok := strategy.NextDelay(State{Attempt: 1, FirstFailure: time.Now()})
	assert.True(t, ok)

	_, ok = strategy.NextDelay(State{Attempt: 2, FirstFailure: time.Now()})
	assert.False(t, ok)
}

func TestExponentialBackoffDefaults(t *testing.T) {
	strategy := NewExponentialBackoff()
	assert.Equal(t, DefaultInitialInterval, strategy.Initial)
	assert.Equal(t, DefaultMaxInterval, strategy.Max)
	assert.Equal(t, DefaultMultiplier, strategy.Multiplier)

	// Zero fields fall back to defaults instead of producing zero waits.
	delay, ok := ExponentialBackoff{Jitter: -1}.NextDelay(State{Attempt: 1, FirstFailure: time.Now()})
	require.True(t, ok)
	assert.Equal(t, DefaultInitialInterval, delay)
}

func TestStrategiesAreShareable(t *testing.T) {
	// One strategy value serves independent outages: the delay depends
	// only on the State passed in, never on call history.
	strategy := ExponentialBackoff{Initial: 10 * time.Millisecond, Max: time.Second, Multiplier: 2}

	a1, _ := strategy.NextDelay(State{Attempt: 3, FirstFailure: time.Now()})
	b, _ := strategy.NextDelay(State{Attempt: 1, FirstFailure: time.Now()})
	a2, _ := strategy.NextDelay(State{Attempt: 3, FirstFailure: time.Now()})

	assert.Equal(t, a1, a2)
	assert.Equal(t, 10*time.Millisecond, b)
}
