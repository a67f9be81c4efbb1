package analysis

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins matches the bin count used for feature distribution plots.
const DefaultBins = 50

// Bin is one histogram bucket covering [Lo, Hi). The last bin also
// includes Hi.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram buckets values into bins of equal width between the smallest
// and largest value. NaNs are ignored. When every value is equal the range
// is widened by half a unit each way.
func Histogram(values []float64, bins int) ([]Bin, error) {
	if bins < 1 {
		return nil, fmt.Errorf("bins must be positive, got %d", bins)
	}

	present := dropNaN(values)
	if len(present) == 0 {
		return nil, nil
	}
	slices.Sort(present)

	lo, hi := present[0], present[len(present)-1]
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram bins are half-open; nudge the top edge so hi lands
	// in the last bin.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, present, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: int(counts[i])}
	}
	out[bins-1].Hi = hi
	return out, nil
}
