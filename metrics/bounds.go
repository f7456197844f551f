package metrics

import (
	"fmt"
	"math"
)

// Bounds is an inclusive [Lower, Upper] range for a metric. Use -Inf or
// +Inf to leave a side unbounded.
type Bounds struct {
	Lower float64
	Upper float64
}

// Unbounded returns bounds that admit every value.
func Unbounded() Bounds {
	return Bounds{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Validate reports whether the bounds are well formed: no NaN and
// Lower <= Upper.
func (b Bounds) Validate() error {
	if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) {
		return fmt.Errorf("bounds must not contain NaN: %v", b)
	}
	if b.Lower > b.Upper {
		return fmt.Errorf("bounds lower %g exceeds upper %g", b.Lower, b.Upper)
	}
	return nil
}

// Contains reports whether v lies within the bounds, both ends inclusive.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g, %g]", b.Lower, b.Upper)
}
