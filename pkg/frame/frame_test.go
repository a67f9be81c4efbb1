package frame

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
	"testing"
)

var sampleFields = []Field{
	{Name: "id", Kind: String},
	{Name: "energy", Kind: Float},
	{Name: "tempo", Kind: Float},
}

func sample(t *testing.T) *Frame {
	t.Helper()

	f, err := FromRows(sampleFields, [][]Value{
		{"a", 0.5, 120.0},
		{"b", nil, 98.5},
		{"c", 0.9, math.NaN()},
	})
	if err != nil {
		t.Fatalf("failed to build frame: %v", err)
	}
	return f
}

func ids(t *testing.T, f *Frame) []string {
	t.Helper()

	cells, ok := f.Column("id")
	if !ok {
		t.Fatal("expected id column")
	}
	var out []string
	for _, c := range cells {
		out = append(out, c.(string))
	}
	return out
}

func TestNew_DeduplicatesColumns(t *testing.T) {
	f := New(Field{Name: "a"}, Field{Name: "b", Kind: Int}, Field{Name: "a", Kind: String})
	if got := f.Columns(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", got)
	}
	if k, _ := f.Kind("a"); k != Float {
		t.Errorf("expected first kind kept, got %v", k)
	}
	if f.Len() != 0 {
		t.Errorf("expected no rows, got %d", f.Len())
	}
}

func TestFromRows_LengthMismatch(t *testing.T) {
	_, err := FromRows([]Field{{Name: "a"}, {Name: "b"}}, [][]Value{{1.0, 2.0}, {1.0}})
	if err == nil {
		t.Error("expected error for short row")
	}
}

func TestFromRows_CellConversion(t *testing.T) {
	f, err := FromRows([]Field{
		{Name: "key", Kind: Int},
		{Name: "tempo", Kind: Float},
		{Name: "uri", Kind: String},
	}, [][]Value{
		{int64(3), "fast", "spotify:track:a"},
		{nil, float32(1.5), nil},
		{json.Number("7"), int64(120), ""},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		row    int
		column string
		want   Value
	}{
		{row: 0, column: "key", want: 3},
		{row: 0, column: "tempo", want: nil},
		{row: 0, column: "uri", want: "spotify:track:a"},
		{row: 1, column: "key", want: nil},
		{row: 1, column: "tempo", want: 1.5},
		{row: 1, column: "uri", want: nil},
		{row: 2, column: "key", want: 7},
		{row: 2, column: "tempo", want: 120.0},
		{row: 2, column: "uri", want: ""},
	}
	for _, tt := range tests {
		if got := f.Row(tt.row).Get(tt.column); got != tt.want {
			t.Errorf("row %d %s: expected %#v, got %#v", tt.row, tt.column, tt.want, got)
		}
	}
}

func TestFromRecords(t *testing.T) {
	f := FromRecords(sampleFields, []map[string]Value{
		{"id": "a"},
		{"id": "b", "tempo": 100.0, "energy": 0.2, "extra": true},
	})

	if got := f.Columns(); !slices.Equal(got, []string{"id", "energy", "tempo"}) {
		t.Errorf("expected [id energy tempo], got %v", got)
	}
	if v := f.Row(0).Get("tempo"); v != nil {
		t.Errorf("expected missing tempo, got %v", v)
	}
	if v, _ := f.Row(1).Float("tempo"); v != 100 {
		t.Errorf("expected tempo 100, got %v", v)
	}
}

func TestFrame_Select(t *testing.T) {
	f := sample(t)

	got, err := f.Select("tempo", "id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cols := got.Columns(); !slices.Equal(cols, []string{"tempo", "id"}) {
		t.Errorf("expected [tempo id], got %v", cols)
	}
	if got.Len() != 3 {
		t.Errorf("expected 3 rows, got %d", got.Len())
	}
	if id, _ := got.Row(1).Text("id"); id != "b" {
		t.Errorf("expected id b, got %q", id)
	}

	_, err = f.Select("id", "duration_ms", "popularity")
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingColumnsError, got %v", err)
	}
	if !slices.Equal(missing.Columns, []string{"duration_ms", "popularity"}) {
		t.Errorf("expected missing [duration_ms popularity], got %v", missing.Columns)
	}
}

func TestFrame_DropNull(t *testing.T) {
	f := sample(t)

	tests := []struct {
		name    string
		columns []string
		wantIDs []string
	}{
		{name: "all columns", wantIDs: []string{"a"}},
		{name: "energy only", columns: []string{"energy"}, wantIDs: []string{"a", "c"}},
		{name: "tempo only", columns: []string{"tempo"}, wantIDs: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.DropNull(tt.columns...)
			if gotIDs := ids(t, got); !slices.Equal(gotIDs, tt.wantIDs) {
				t.Errorf("expected %v, got %v", tt.wantIDs, gotIDs)
			}
		})
	}

	if f.Len() != 3 {
		t.Errorf("expected receiver untouched, got %d rows", f.Len())
	}
}

func TestFrame_Filter_NoRowsKeepsColumns(t *testing.T) {
	got := sample(t).Filter(func(Row) bool { return false })
	if got.Len() != 0 {
		t.Errorf("expected no rows, got %d", got.Len())
	}
	if cols := got.Columns(); !slices.Equal(cols, []string{"id", "energy", "tempo"}) {
		t.Errorf("expected columns kept, got %v", cols)
	}
}

func TestFrame_WithColumn(t *testing.T) {
	f := sample(t)

	got := f.WithColumn("double", Float, func(r Row) Value {
		x, ok := r.Float("tempo")
		if !ok {
			return nil
		}
		return x * 2
	})

	if !got.Has("double") || f.Has("double") {
		t.Fatal("expected new column on copy only")
	}
	if v, _ := got.Row(0).Float("double"); v != 240 {
		t.Errorf("expected 240, got %v", v)
	}
	if v := got.Row(2).Get("double"); v != nil {
		t.Errorf("expected nil for NaN tempo, got %v", v)
	}

	replaced := f.WithColumn("tempo", Int, func(Row) Value { return 1 })
	if cols := replaced.Columns(); !slices.Equal(cols, []string{"id", "energy", "tempo"}) {
		t.Errorf("expected tempo replaced in place, got %v", cols)
	}
	if k, _ := replaced.Kind("tempo"); k != Int {
		t.Errorf("expected Int tempo, got %v", k)
	}
}

func TestFrame_Drop(t *testing.T) {
	f := sample(t)

	got := f.Drop("energy", "unknown")
	if cols := got.Columns(); !slices.Equal(cols, []string{"id", "tempo"}) {
		t.Errorf("expected [id tempo], got %v", cols)
	}
	if got.Len() != f.Len() {
		t.Errorf("expected %d rows, got %d", f.Len(), got.Len())
	}

	if none := f.Drop("id", "energy", "tempo"); len(none.Columns()) != 0 || none.Len() != 0 {
		t.Errorf("expected empty frame, got %v with %d rows", none.Columns(), none.Len())
	}
}

func TestConcat(t *testing.T) {
	a, _ := FromRows([]Field{{Name: "id", Kind: String}, {Name: "energy"}}, [][]Value{{"a", 0.1}})
	b, _ := FromRows([]Field{{Name: "id", Kind: String}, {Name: "tempo"}}, [][]Value{
		{"b", 100.0},
		{"c", 101.0},
	})

	got := Concat(a, nil, b)
	if cols := got.Columns(); !slices.Equal(cols, []string{"id", "energy", "tempo"}) {
		t.Errorf("expected [id energy tempo], got %v", cols)
	}
	if got.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", got.Len())
	}
	if v := got.Row(0).Get("tempo"); v != nil {
		t.Errorf("expected nil tempo for first frame, got %v", v)
	}
	if gotIDs := ids(t, got); !slices.Equal(gotIDs, []string{"a", "b", "c"}) {
		t.Errorf("expected row order kept, got %v", gotIDs)
	}

	if empty := Concat(); empty.Len() != 0 || len(empty.Columns()) != 0 {
		t.Errorf("expected empty frame, got %v", empty.Columns())
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		want   float64
		wantOK bool
	}{
		{name: "float64", value: 1.5, want: 1.5, wantOK: true},
		{name: "int64", value: int64(180000), want: 180000, wantOK: true},
		{name: "int", value: 4, want: 4, wantOK: true},
		{name: "json number", value: json.Number("0.25"), want: 0.25, wantOK: true},
		{name: "nil", value: nil},
		{name: "nan", value: math.NaN()},
		{name: "string", value: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("expected ok %v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFrame_Floats(t *testing.T) {
	f := sample(t)

	got, ok := f.Floats("energy")
	if !ok {
		t.Fatal("expected energy column")
	}
	if got[0] != 0.5 || !math.IsNaN(got[1]) || got[2] != 0.9 {
		t.Errorf("unexpected floats %v", got)
	}

	ids, _ := f.Floats("id")
	for i, x := range ids {
		if !math.IsNaN(x) {
			t.Errorf("expected NaN for string cell %d, got %v", i, x)
		}
	}

	if _, ok := f.Floats("missing"); ok {
		t.Error("expected false for missing column")
	}
}
