// Package cleaner reduces a raw feature table to the columns used for
// analysis.
package cleaner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jfmyers9/soundstats/pkg/frame"
)

const (
	// IDColumn holds the track identifier.
	IDColumn = "id"

	// DurationMsColumn is the raw track length in milliseconds.
	DurationMsColumn = "duration_ms"

	// DurationMinsColumn replaces DurationMsColumn in cleaned tables.
	DurationMinsColumn = "duration_mins"

	msPerMinute = 60_000.0
)

// FeatureColumns are the numeric columns kept by Clean, in output order.
// duration_ms is converted to duration_mins.
var FeatureColumns = []string{
	"popularity",
	"danceability",
	"energy",
	"loudness",
	"mode",
	"speechiness",
	"acousticness",
	"instrumentalness",
	"liveness",
	"valence",
	"tempo",
	DurationMsColumn,
}

// CleanedColumns returns the column layout of a cleaned table.
func CleanedColumns() []string {
	cols := []string{IDColumn}
	for _, c := range FeatureColumns {
		if c == DurationMsColumn {
			c = DurationMinsColumn
		}
		cols = append(cols, c)
	}
	return cols
}

// SchemaError is returned when the input table lacks required columns.
type SchemaError struct {
	Missing []string
}

// Error returns the error message.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("cleaner: input is missing columns: %s", strings.Join(e.Missing, ", "))
}

// Clean selects the identifier and feature columns, drops rows with a
// missing or non-numeric value in any of them, and converts duration from
// milliseconds to minutes.
//
// Clean does not modify f. Rows keep their relative order. The output no
// longer has duration_ms, so cleaning a cleaned table fails with a
// *SchemaError.
func Clean(f *frame.Frame) (*frame.Frame, error) {
	if f == nil {
		return nil, &SchemaError{Missing: append([]string{IDColumn}, FeatureColumns...)}
	}

	selected, err := f.Select(append([]string{IDColumn}, FeatureColumns...)...)
	if err != nil {
		var missing *frame.MissingColumnsError
		if errors.As(err, &missing) {
			return nil, &SchemaError{Missing: missing.Columns}
		}
		return nil, err
	}

	complete := selected.Filter(func(r frame.Row) bool {
		if _, ok := r.Text(IDColumn); !ok {
			return false
		}
		for _, c := range FeatureColumns {
			if _, ok := r.Float(c); !ok {
				return false
			}
		}
		return true
	})

	withMins := complete.WithColumn(DurationMinsColumn, frame.Float, func(r frame.Row) frame.Value {
		ms, _ := r.Float(DurationMsColumn)
		return ms / msPerMinute
	})

	return withMins.Drop(DurationMsColumn), nil
}
