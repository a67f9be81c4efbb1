package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jfmyers9/soundstats/pkg/frame"
)

// CSV writes a table to a CSV file, replacing it on every Write
type CSV struct {
	path string
}

// NewCSV returns a sink that writes to path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Write writes table with a header row.
func (c *CSV) Write(_ context.Context, table *frame.Frame) error {
	file, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}

	if err := WriteCSV(file, table); err != nil {
		_ = file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close csv file: %w", err)
	}
	return nil
}

// Close is a no-op; Write closes the file it opens.
func (c *CSV) Close() error {
	return nil
}

// WriteCSV writes table to w as CSV: a header of column names, then one
// record per row. Missing values are empty fields.
func WriteCSV(w io.Writer, table *frame.Frame) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Columns()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := 0; i < table.Len(); i++ {
		values := table.Row(i).Values()
		record := make([]string, len(values))
		for j, v := range values {
			record[j] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatCell(v frame.Value) string {
	if frame.IsNull(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	}
	return fmt.Sprint(v)
}
