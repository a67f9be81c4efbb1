package analysis

import (
	"cmp"
	"math"
	"slices"

	"github.com/jfmyers9/soundstats/pkg/frame"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Matrix is a square Pearson correlation matrix.
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the correlation between columns a and b, or NaN if either is
// not in the matrix.
func (m *Matrix) At(a, b string) float64 {
	i, j := slices.Index(m.Columns, a), slices.Index(m.Columns, b)
	if i < 0 || j < 0 {
		return math.NaN()
	}
	return m.Values[i][j]
}

// Pair is an ordered pair of column names.
type Pair struct {
	A, B string
}

// PairCorrelation is one cell of a correlation matrix.
type PairCorrelation struct {
	Pair
	R float64
}

// Label returns the pair as "a__b".
func (p PairCorrelation) Label() string {
	return p.A + "__" + p.B
}

// Correlation returns the pairwise Pearson correlation of the named
// columns. String columns are left out of the matrix. Each pair uses only the rows where both values are
// present; a pair with no variance correlates as NaN.
func Correlation(f *frame.Frame, columns []string) (*Matrix, error) {
	selected, err := f.Select(columns...)
	if err != nil {
		return nil, err
	}

	var names []string
	var data [][]float64
	for _, c := range selected.Columns() {
		if !numeric(selected, c) {
			continue
		}
		values, _ := selected.Floats(c)
		names = append(names, c)
		data = append(data, values)
	}

	m := &Matrix{Columns: names, Values: make([][]float64, len(names))}
	for i := range names {
		m.Values[i] = make([]float64, len(names))
	}
	for i := range names {
		for j := 0; j <= i; j++ {
			r := pearson(data[i], data[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// numeric reports whether column holds numbers.
func numeric(f *frame.Frame, column string) bool {
	k, ok := f.Kind(column)
	return ok && k != frame.String
}

// pearson correlates x and y over the rows where both are present.
func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 || floats.Min(xs) == floats.Max(xs) || floats.Min(ys) == floats.Max(ys) {
		return math.NaN()
	}

	r := stat.Correlation(xs, ys, nil)
	// Rounding can push |r| just past 1.
	return max(-1, min(1, r))
}

// RedundantPairs returns the diagonal and lower-triangular pairs of a
// matrix over columns: (columns[i], columns[j]) for every j <= i. These
// either duplicate another cell or are trivially 1.
func RedundantPairs(columns []string) map[Pair]struct{} {
	pairs := make(map[Pair]struct{}, len(columns)*(len(columns)+1)/2)
	for i := range columns {
		for j := 0; j <= i; j++ {
			pairs[Pair{A: columns[i], B: columns[j]}] = struct{}{}
		}
	}
	return pairs
}

// Candidates returns the matrix cells left after removing redundant pairs,
// in row-major order.
func Candidates(m *Matrix) []PairCorrelation {
	redundant := RedundantPairs(m.Columns)

	var out []PairCorrelation
	for i, a := range m.Columns {
		for j, b := range m.Columns {
			p := Pair{A: a, B: b}
			if _, ok := redundant[p]; ok {
				continue
			}
			out = append(out, PairCorrelation{Pair: p, R: m.Values[i][j]})
		}
	}
	return out
}

// TopAbsCorrelations returns the n candidate pairs with the largest
// absolute correlation, strongest first. R holds the absolute value. Pairs
// whose correlation is undefined are skipped; ties keep row-major order.
func TopAbsCorrelations(m *Matrix, n int) []PairCorrelation {
	var ranked []PairCorrelation
	for _, c := range Candidates(m) {
		if math.IsNaN(c.R) {
			continue
		}
		c.R = math.Abs(c.R)
		ranked = append(ranked, c)
	}

	slices.SortStableFunc(ranked, func(a, b PairCorrelation) int {
		return cmp.Compare(b.R, a.R)
	})

	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
