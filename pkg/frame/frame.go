// Package frame provides a small column-labelled table for feature data.
//
// A Frame is a typed wrapper around a gota DataFrame. Every column has a
// Kind fixed when the column is created; cells that cannot be stored as
// that kind become missing values. Missing cells read back as nil.
//
// Operations that change shape return a new Frame and leave the receiver
// untouched.
package frame

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Value is a single cell. Cells hold strings, numbers or nil for a
// missing value.
type Value = any

// Kind is the storage type of a column.
type Kind int

const (
	// Float columns hold float64 cells.
	Float Kind = iota
	// Int columns hold int cells.
	Int
	// String columns hold string cells.
	String
)

func (k Kind) seriesType() series.Type {
	switch k {
	case Int:
		return series.Int
	case String:
		return series.String
	}
	return series.Float
}

func kindOf(t series.Type) Kind {
	switch t {
	case series.Int, series.Bool:
		return Int
	case series.String:
		return String
	}
	return Float
}

// String returns the kind name.
func (k Kind) String() string {
	return string(k.seriesType())
}

// Field names a column and its kind.
type Field struct {
	Name string
	Kind Kind
}

// Frame is an ordered set of typed columns over a list of rows.
type Frame struct {
	df     dataframe.DataFrame
	fields []Field
	cols   []series.Series
	index  map[string]int
}

// MissingColumnsError is returned when an operation names columns the
// frame does not have.
type MissingColumnsError struct {
	Columns []string
}

// Error returns the error message.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("frame: missing columns: %s", strings.Join(e.Columns, ", "))
}

// New returns an empty frame with the given columns. Repeated names are
// kept once, with the first kind given.
func New(fields ...Field) *Frame {
	fields = uniqueFields(fields)
	return build(fields, make([][]Value, len(fields)))
}

// FromRows builds a frame from rows whose values line up with fields.
func FromRows(fields []Field, rows [][]Value) (*Frame, error) {
	fields = uniqueFields(fields)
	columns := make([][]Value, len(fields))
	for i := range columns {
		columns[i] = make([]Value, 0, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(fields) {
			return nil, fmt.Errorf("frame: row %d has %d values, frame has %d columns", r, len(row), len(fields))
		}
		for i, v := range row {
			columns[i] = append(columns[i], v)
		}
	}
	return build(fields, columns), nil
}

// FromRecords builds a frame from column-to-value maps. Fields a record
// lacks are missing in that row; keys not named by fields are ignored.
func FromRecords(fields []Field, records []map[string]Value) *Frame {
	fields = uniqueFields(fields)
	columns := make([][]Value, len(fields))
	for i, fd := range fields {
		columns[i] = make([]Value, len(records))
		for r, rec := range records {
			columns[i][r] = rec[fd.Name]
		}
	}
	return build(fields, columns)
}

func uniqueFields(fields []Field) []Field {
	seen := make(map[string]struct{}, len(fields))
	out := make([]Field, 0, len(fields))
	for _, fd := range fields {
		if _, ok := seen[fd.Name]; ok {
			continue
		}
		seen[fd.Name] = struct{}{}
		out = append(out, fd)
	}
	return out
}

// build assembles a frame column by column. gota has no zero-column
// DataFrame, so that case keeps the zero value.
func build(fields []Field, columns [][]Value) *Frame {
	if len(fields) == 0 {
		return wrap(dataframe.DataFrame{})
	}
	list := make([]series.Series, len(fields))
	for i, fd := range fields {
		list[i] = newSeries(fd, columns[i])
	}
	return wrap(dataframe.New(list...))
}

func newSeries(fd Field, cells []Value) series.Series {
	values := make([]any, len(cells))
	for i, v := range cells {
		values[i] = normalize(v)
	}
	return series.New(values, fd.Kind.seriesType(), fd.Name)
}

// wrap indexes a DataFrame. Errors from gota here mean a column or row
// count was mismatched inside this package, so they panic.
func wrap(df dataframe.DataFrame) *Frame {
	if df.Err != nil {
		panic(fmt.Sprintf("frame: %v", df.Err))
	}
	f := &Frame{df: df, index: make(map[string]int, df.Ncol())}
	for i, name := range df.Names() {
		s := df.Col(name)
		f.cols = append(f.cols, s)
		f.fields = append(f.fields, Field{Name: name, Kind: kindOf(s.Type())})
		f.index[name] = i
	}
	return f
}

// normalize maps a cell onto the handful of Go types gota's elements
// accept; anything else would silently turn into a missing value.
func normalize(v Value) any {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return normalize(float64(n))
	case float64:
		if math.IsNaN(n) {
			return nil
		}
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if x, err := n.Float64(); err == nil {
			return x
		}
		return nil
	case string, bool:
		return n
	}
	return nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.fields))
	for i, fd := range f.fields {
		names[i] = fd.Name
	}
	return names
}

// Fields returns the columns with their kinds.
func (f *Frame) Fields() []Field {
	return slices.Clone(f.fields)
}

// Kind returns the kind of the named column.
func (f *Frame) Kind(name string) (Kind, bool) {
	i, ok := f.index[name]
	if !ok {
		return 0, false
	}
	return f.fields[i].Kind, true
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.fields) == 0 {
		return 0
	}
	return f.df.Nrow()
}

// Has reports whether the frame has a column called name.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Row returns row i. It panics if i is out of range.
func (f *Frame) Row(i int) Row {
	if i < 0 || i >= f.Len() {
		panic(fmt.Sprintf("frame: row %d out of range [0,%d)", i, f.Len()))
	}
	return Row{frame: f, i: i}
}

// Column returns a copy of the named column's cells, or nil and false if
// the frame has no such column.
func (f *Frame) Column(name string) ([]Value, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	s := f.cols[i]
	out := make([]Value, s.Len())
	for r := range out {
		out[r] = cell(s.Elem(r))
	}
	return out, true
}

// Floats returns the named column as float64s. Missing cells and every
// cell of a String column come back as NaN.
func (f *Frame) Floats(name string) ([]float64, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	if f.fields[i].Kind == String {
		out := make([]float64, f.Len())
		for r := range out {
			out[r] = math.NaN()
		}
		return out, true
	}
	return f.cols[i].Float(), true
}

// Select returns a frame with only the named columns, in the order given.
// If any are missing it returns a *MissingColumnsError naming all of them.
func (f *Frame) Select(columns ...string) (*Frame, error) {
	var missing []string
	for _, c := range columns {
		if !f.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	names := make([]string, 0, len(columns))
	for _, c := range columns {
		if !slices.Contains(names, c) {
			names = append(names, c)
		}
	}
	if len(names) == 0 {
		return build(nil, nil), nil
	}
	return wrap(f.df.Select(names)), nil
}

// Drop returns a frame without the named columns. Names the frame does not
// have are ignored.
func (f *Frame) Drop(columns ...string) *Frame {
	var present []string
	for _, c := range columns {
		if f.Has(c) && !slices.Contains(present, c) {
			present = append(present, c)
		}
	}
	switch len(present) {
	case len(f.fields):
		return build(nil, nil)
	case 0:
		return wrap(f.df.Copy())
	}
	return wrap(f.df.Drop(present))
}

// Filter returns a frame with the rows for which keep returns true.
func (f *Frame) Filter(keep func(Row) bool) *Frame {
	var rows []int
	for i := 0; i < f.Len(); i++ {
		if keep(Row{frame: f, i: i}) {
			rows = append(rows, i)
		}
	}
	return f.subset(rows)
}

func (f *Frame) subset(rows []int) *Frame {
	if len(f.fields) == 0 {
		return build(nil, nil)
	}
	if len(rows) == 0 {
		return build(f.fields, make([][]Value, len(f.fields)))
	}
	return wrap(f.df.Subset(rows))
}

// DropNull returns a frame without rows that have a missing value in any
// of the named columns, or in any column if none are named.
func (f *Frame) DropNull(columns ...string) *Frame {
	if len(columns) == 0 {
		columns = f.Columns()
	}
	return f.Filter(func(r Row) bool {
		for _, c := range columns {
			if IsNull(r.Get(c)) {
				return false
			}
		}
		return true
	})
}

// WithColumn returns a copy of the frame with a column of the given kind
// computed from each row. An existing column of the same name is replaced
// in place.
func (f *Frame) WithColumn(name string, kind Kind, fn func(Row) Value) *Frame {
	cells := make([]Value, f.Len())
	for i := range cells {
		cells[i] = fn(Row{frame: f, i: i})
	}
	fd := Field{Name: name, Kind: kind}
	if len(f.fields) == 0 {
		return build([]Field{fd}, [][]Value{cells})
	}
	return wrap(f.df.Mutate(newSeries(fd, cells)))
}

// Concat stacks frames vertically. The result has the union of their
// columns in first-seen order, each with the kind it first appeared with;
// cells a frame lacks are missing.
func Concat(frames ...*Frame) *Frame {
	var all []Field
	for _, f := range frames {
		if f != nil {
			all = append(all, f.fields...)
		}
	}
	all = uniqueFields(all)

	columns := make([][]Value, len(all))
	for _, f := range frames {
		if f == nil {
			continue
		}
		n := f.Len()
		for i, fd := range all {
			cells, ok := f.Column(fd.Name)
			if !ok {
				cells = make([]Value, n)
			}
			columns[i] = append(columns[i], cells...)
		}
	}
	for i := range columns {
		if columns[i] == nil {
			columns[i] = []Value{}
		}
	}
	return build(all, columns)
}

// Row is a read-only view of one frame row.
type Row struct {
	frame *Frame
	i     int
}

// Get returns the cell in column name, or nil if the cell is missing or
// there is no such column.
func (r Row) Get(name string) Value {
	c, ok := r.frame.index[name]
	if !ok {
		return nil
	}
	return cell(r.frame.cols[c].Elem(r.i))
}

// Float returns the cell in column name as a float64.
func (r Row) Float(name string) (float64, bool) {
	return ToFloat(r.Get(name))
}

// Text returns the cell in column name if it is a string.
func (r Row) Text(name string) (string, bool) {
	s, ok := r.Get(name).(string)
	return s, ok
}

// Values returns the row's cells in column order.
func (r Row) Values() []Value {
	out := make([]Value, len(r.frame.cols))
	for c, s := range r.frame.cols {
		out[c] = cell(s.Elem(r.i))
	}
	return out
}

func cell(e series.Element) Value {
	if e.IsNA() {
		return nil
	}
	v := e.Val()
	if x, ok := v.(float64); ok && math.IsNaN(x) {
		return nil
	}
	return v
}

// ToFloat converts a numeric cell to float64. It reports false for nil,
// NaN and non-numeric values.
func ToFloat(v Value) (float64, bool) {
	var x float64
	switch n := v.(type) {
	case float64:
		x = n
	case float32:
		x = float64(n)
	case int:
		x = float64(n)
	case int32:
		x = float64(n)
	case int64:
		x = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		x = f
	default:
		return 0, false
	}
	if math.IsNaN(x) {
		return 0, false
	}
	return x, true
}

// IsNull reports whether v is a missing value: nil or a NaN float.
func IsNull(v Value) bool {
	switch n := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(n)
	case float32:
		return math.IsNaN(float64(n))
	}
	return false
}
