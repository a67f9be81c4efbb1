package features

import (
	"fmt"

	"github.com/jfmyers9/soundstats/pkg/frame"
	"github.com/jfmyers9/soundstats/pkg/spotify"
)

// Fields is the layout of a raw feature table. It follows the field order
// of the API's audio-features object.
var Fields = []frame.Field{
	{Name: "danceability", Kind: frame.Float},
	{Name: "energy", Kind: frame.Float},
	{Name: "key", Kind: frame.Int},
	{Name: "loudness", Kind: frame.Float},
	{Name: "mode", Kind: frame.Int},
	{Name: "speechiness", Kind: frame.Float},
	{Name: "acousticness", Kind: frame.Float},
	{Name: "instrumentalness", Kind: frame.Float},
	{Name: "liveness", Kind: frame.Float},
	{Name: "valence", Kind: frame.Float},
	{Name: "tempo", Kind: frame.Float},
	{Name: "type", Kind: frame.String},
	{Name: "id", Kind: frame.String},
	{Name: "uri", Kind: frame.String},
	{Name: "track_href", Kind: frame.String},
	{Name: "analysis_url", Kind: frame.String},
	{Name: "duration_ms", Kind: frame.Int},
	{Name: "time_signature", Kind: frame.Int},
}

// PopularityColumn is added by WithPopularity.
const PopularityColumn = "popularity"

// ToFrame builds a raw feature table with one row per record, in order.
// JSON nulls become missing cells.
func ToFrame(records []spotify.AudioFeatures) (*frame.Frame, error) {
	rows := make([][]frame.Value, len(records))
	for i, r := range records {
		rows[i] = row(r)
	}
	f, err := frame.FromRows(Fields, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build feature table: %w", err)
	}
	return f, nil
}

// row lays out a record in Fields order.
func row(r spotify.AudioFeatures) []frame.Value {
	return []frame.Value{
		floatCell(r.Danceability),
		floatCell(r.Energy),
		intCell(r.Key),
		floatCell(r.Loudness),
		intCell(r.Mode),
		floatCell(r.Speechiness),
		floatCell(r.Acousticness),
		floatCell(r.Instrumentalness),
		floatCell(r.Liveness),
		floatCell(r.Valence),
		floatCell(r.Tempo),
		r.Type,
		r.ID,
		r.URI,
		r.TrackHref,
		r.AnalysisURL,
		intCell(r.DurationMs),
		intCell(r.TimeSignature),
	}
}

// WithPopularity returns f with a popularity column looked up by track id.
// Tracks missing from popularity get nil.
func WithPopularity(f *frame.Frame, popularity map[string]int) *frame.Frame {
	return f.WithColumn(PopularityColumn, frame.Int, func(r frame.Row) frame.Value {
		id, _ := r.Text("id")
		p, ok := popularity[id]
		if !ok {
			return nil
		}
		return p
	})
}

// Omitted returns the requested identifiers that have no row in f, in
// request order.
func Omitted(requested []string, f *frame.Frame) []string {
	present := make(map[string]struct{}, f.Len())
	for i := 0; i < f.Len(); i++ {
		if id, ok := f.Row(i).Text("id"); ok {
			present[id] = struct{}{}
		}
	}

	var missing []string
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func floatCell(v *float64) frame.Value {
	if v == nil {
		return nil
	}
	return *v
}

func intCell(v *int64) frame.Value {
	if v == nil {
		return nil
	}
	return *v
}
