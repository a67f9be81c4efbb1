package features

import (
	"testing"

	"github.com/jfmyers9/soundstats/pkg/frame"
	"github.com/jfmyers9/soundstats/pkg/spotify"
)

func ptr[T any](v T) *T { return &v }

func mustFrame(t *testing.T, records []spotify.AudioFeatures) *frame.Frame {
	t.Helper()

	table, err := ToFrame(records)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return table
}

func TestToFrame_NullsBecomeNil(t *testing.T) {
	records := []spotify.AudioFeatures{
		{ID: "a", Danceability: ptr(0.5), Key: ptr(int64(3)), DurationMs: ptr(int64(1000))},
		{ID: "b"},
	}

	table := mustFrame(t, records)
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}

	if v, ok := table.Row(0).Float("danceability"); !ok || v != 0.5 {
		t.Errorf("expected danceability 0.5, got %v", v)
	}
	if v := table.Row(0).Get("key"); v != 3 {
		t.Errorf("expected int key 3, got %#v", v)
	}
	if v := table.Row(1).Get("danceability"); v != nil {
		t.Errorf("expected nil danceability, got %v", v)
	}
}

func TestToFrame_RowMatchesFields(t *testing.T) {
	if got := len(row(spotify.AudioFeatures{})); got != len(Fields) {
		t.Fatalf("expected %d cells per row, got %d", len(Fields), got)
	}

	table := mustFrame(t, nil)
	if table.Len() != 0 {
		t.Errorf("expected no rows, got %d", table.Len())
	}
	for _, fd := range Fields {
		if k, ok := table.Kind(fd.Name); !ok || k != fd.Kind {
			t.Errorf("expected %s column of kind %v, got %v", fd.Name, fd.Kind, k)
		}
	}
}

func TestWithPopularity(t *testing.T) {
	table := mustFrame(t, []spotify.AudioFeatures{{ID: "a"}, {ID: "b"}})

	got := WithPopularity(table, map[string]int{"a": 70})
	if v, ok := got.Row(0).Float(PopularityColumn); !ok || v != 70 {
		t.Errorf("expected popularity 70, got %v", v)
	}
	if v := got.Row(1).Get(PopularityColumn); v != nil {
		t.Errorf("expected nil popularity for unknown track, got %v", v)
	}
	if table.Has(PopularityColumn) {
		t.Error("expected input table untouched")
	}
}
