package analysis

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// barWidth is the width of the longest histogram bar.
const barWidth = 40

// WriteSummaries writes one line per column with count, mean, std, min and
// max.
func WriteSummaries(w io.Writer, summaries []Summary) error {
	label := labelWidth(len("column"), summaries, func(s Summary) string { return s.Column })

	if _, err := fmt.Fprintf(w, "%s %6s %12s %12s %12s %12s\n",
		runewidth.FillRight("column", label), "count", "mean", "std", "min", "max"); err != nil {
		return err
	}
	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "%s %6d %12s %12s %12s %12s\n",
			runewidth.FillRight(s.Column, label), s.Count,
			number(s.Mean), number(s.Std), number(s.Min), number(s.Max)); err != nil {
			return err
		}
	}
	return nil
}

// WriteMatrix writes a correlation matrix as a grid with two decimals per
// cell.
func WriteMatrix(w io.Writer, m *Matrix) error {
	label := labelWidth(0, m.Columns, func(c string) string { return c })

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", label))
	for i := range m.Columns {
		fmt.Fprintf(&b, " %6s", fmt.Sprintf("[%d]", i))
	}
	b.WriteString("\n")

	for i, c := range m.Columns {
		b.WriteString(runewidth.FillRight(c, label))
		for j := range m.Columns {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				fmt.Fprintf(&b, " %6s", "-")
				continue
			}
			fmt.Fprintf(&b, " %6.2f", v)
		}
		fmt.Fprintf(&b, "  [%d]\n", i)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WritePairs writes ranked pair correlations, one "a__b  r" line each.
func WritePairs(w io.Writer, pairs []PairCorrelation) error {
	label := labelWidth(0, pairs, PairCorrelation.Label)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%s %.4f\n", runewidth.FillRight(p.Label(), label), p.R); err != nil {
			return err
		}
	}
	return nil
}

// WriteHistogram writes a titled text histogram with bars scaled to the
// fullest bin.
func WriteHistogram(w io.Writer, title string, bins []Bin) error {
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	if len(bins) == 0 {
		_, err := fmt.Fprintln(w, "  (no data)")
		return err
	}

	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}

	for _, b := range bins {
		bar := 0
		if peak > 0 {
			bar = int(math.Round(float64(b.Count) / float64(peak) * barWidth))
		}
		if _, err := fmt.Fprintf(w, "  %10s .. %-10s %5d %s\n",
			number(b.Lo), number(b.Hi), b.Count, strings.Repeat("#", bar)); err != nil {
			return err
		}
	}
	return nil
}

func labelWidth[T any](least int, items []T, label func(T) string) int {
	width := least
	for _, it := range items {
		width = max(width, runewidth.StringWidth(label(it)))
	}
	return width
}

func number(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}
