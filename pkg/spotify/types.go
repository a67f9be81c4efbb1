package spotify

// Track is a catalog track. Popularity is only populated by the tracks
// endpoints; search results carry the identifier and name.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity *int   `json:"popularity,omitempty"`
}

// AudioFeatures is the audio-feature record for a single track.
//
// Numeric fields are pointers so a JSON null survives decoding and can be
// told apart from a zero value.
type AudioFeatures struct {
	ID               string   `json:"id"`
	Danceability     *float64 `json:"danceability"`
	Energy           *float64 `json:"energy"`
	Key              *int64   `json:"key"`
	Loudness         *float64 `json:"loudness"`
	Mode             *int64   `json:"mode"`
	Speechiness      *float64 `json:"speechiness"`
	Acousticness     *float64 `json:"acousticness"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Liveness         *float64 `json:"liveness"`
	Valence          *float64 `json:"valence"`
	Tempo            *float64 `json:"tempo"`
	DurationMs       *int64   `json:"duration_ms"`
	TimeSignature    *int64   `json:"time_signature"`
	Type             string   `json:"type"`
	URI              string   `json:"uri"`
	TrackHref        string   `json:"track_href"`
	AnalysisURL      string   `json:"analysis_url"`
}
