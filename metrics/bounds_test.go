package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsValidate(t *testing.T) {
	tests := []struct {
		name    string
		bounds  Bounds
		wantErr bool
	}{
		{"zero", Bounds{}, false},
		{"ordered", Bounds{Lower: 20, Upper: 80}, false},
		{"equal ends", Bounds{Lower: 50, Upper: 50}, false},
		{"unbounded", Unbounded(), false},
		{"inverted", Bounds{Lower: 80, Upper: 20}, true},
		{"nan lower", Bounds{Lower: math.NaN(), Upper: 1}, true},
		{"nan upper", Bounds{Lower: 0, Upper: math.NaN()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bounds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Lower: 20, Upper: 80}
	assert.True(t, b.Contains(20))
	assert.True(t, b.Contains(50))
	assert.True(t, b.Contains(80))
	assert.False(t, b.Contains(19.999))
	assert.False(t, b.Contains(80.001))

	assert.True(t, Unbounded().Contains(math.MaxFloat64))
	assert.True(t, Unbounded().Contains(-math.MaxFloat64))
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "ac_active_power", MetricACActivePower.String())
	assert.Equal(t, "battery_soc_pct", MetricBatterySoCPct.String())
	assert.Equal(t, "metric(999)", Metric(999).String())
}
