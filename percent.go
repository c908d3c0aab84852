package folio

import (
	"fmt"
	"math"
)

// Percent is a percentage: 4.5 is 4.5%.
type Percent float64

func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }

// SignedString prints the sign of non zero values, e.g. "+4.50%", and "-" for
// a change that rounds to zero.
func (p Percent) SignedString() string {
	if math.Abs(float64(p)) < 0.005 {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", float64(p))
}

// Change is the relative change from one value to another. It is zero when
// from is zero.
func Change(from, to float64) Percent {
	if from == 0 {
		return 0
	}
	return Percent((to - from) / from * 100)
}

// Growth is the change from prev to cur relative to the magnitude of prev, so
// that a smaller loss is a positive growth. It is undefined when prev is zero.
func Growth(prev, cur float64) (Percent, bool) {
	if prev == 0 {
		return 0, false
	}
	return Percent((cur - prev) / math.Abs(prev) * 100), true
}
