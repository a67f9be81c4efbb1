// Package analysis computes summary statistics and correlations over a
// cleaned feature table.
package analysis

import (
	"math"

	"github.com/jfmyers9/soundstats/pkg/frame"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of one numeric column.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64 // Sample standard deviation; NaN with fewer than two values
	Min    float64
	Max    float64
}

// Describe summarizes each of the named columns. Null and non-numeric
// cells are not counted. A column with no numeric values gets NaN for
// every statistic except Count.
func Describe(f *frame.Frame, columns []string) ([]Summary, error) {
	selected, err := f.Select(columns...)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(columns))
	for _, c := range selected.Columns() {
		values, _ := selected.Floats(c)
		summaries = append(summaries, summarize(c, values))
	}
	return summaries, nil
}

func summarize(column string, values []float64) Summary {
	present := dropNaN(values)
	s := Summary{
		Column: column,
		Count:  len(present),
		Mean:   math.NaN(),
		Std:    math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
	if s.Count == 0 {
		return s
	}

	s.Mean, s.Std = stat.MeanStdDev(present, nil)
	if s.Count < 2 {
		s.Std = math.NaN()
	}
	s.Min = floats.Min(present)
	s.Max = floats.Max(present)
	return s
}

// dropNaN returns the non-NaN values, in order.
func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
