package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jfmyers9/soundstats/internal/cleaner"
	"github.com/jfmyers9/soundstats/internal/export"
	"github.com/jfmyers9/soundstats/pkg/spotify"
	"github.com/rs/zerolog"
)

// fakeAPI serves a catalog of n tracks for one artist across two search
// pages. Tracks listed in noFeatures have null audio features and the one
// in nullDance has a null danceability.
type fakeAPI struct {
	n          int
	noFeatures map[string]bool
	nullDance  string
	// tracksStatus, when set, fails every /tracks request with it.
	tracksStatus int

	featureCalls atomic.Int64
}

func (a *fakeAPI) id(i int) string {
	return fmt.Sprintf("trk%03d", i)
}

func (a *fakeAPI) handler(t *testing.T, serverURL func() string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			half := a.n / 2
			start, end, next := 0, half, fmt.Sprintf("%q", serverURL()+"/search?offset=1")
			if r.URL.Query().Get("offset") == "1" {
				start, end, next = half, a.n, "null"
			}
			var items []string
			for i := start; i < end; i++ {
				items = append(items, fmt.Sprintf(`{"id":%q,"name":"Song %d"}`, a.id(i), i))
			}
			// Every page repeats the first track.
			items = append(items, fmt.Sprintf(`{"id":%q,"name":"Song 0"}`, a.id(0)))
			_, _ = fmt.Fprintf(w, `{"tracks":{"items":[%s],"next":%s}}`, strings.Join(items, ","), next)

		case "/audio-features":
			a.featureCalls.Add(1)
			ids := strings.Split(r.URL.Query().Get("ids"), ",")
			entries := make([]string, len(ids))
			for i, id := range ids {
				switch {
				case a.noFeatures[id]:
					entries[i] = "null"
				case id == a.nullDance:
					entries[i] = fmt.Sprintf(`{"id":%q,"danceability":null,"energy":0.5,"loudness":-5,"mode":1,"speechiness":0.1,"acousticness":0.2,"instrumentalness":0,"liveness":0.1,"valence":0.3,"tempo":100,"duration_ms":180000}`, id)
				default:
					entries[i] = fmt.Sprintf(`{"id":%q,"danceability":0.6,"energy":0.5,"loudness":-5,"mode":1,"speechiness":0.1,"acousticness":0.2,"instrumentalness":0,"liveness":0.1,"valence":0.3,"tempo":100,"duration_ms":180000}`, id)
				}
			}
			_, _ = fmt.Fprintf(w, `{"audio_features":[%s]}`, strings.Join(entries, ","))

		case "/tracks":
			if a.tracksStatus != 0 {
				w.WriteHeader(a.tracksStatus)
				return
			}
			ids := strings.Split(r.URL.Query().Get("ids"), ",")
			entries := make([]string, len(ids))
			for i, id := range ids {
				entries[i] = fmt.Sprintf(`{"id":%q,"name":"x","popularity":42}`, id)
			}
			_, _ = fmt.Fprintf(w, `{"tracks":[%s]}`, strings.Join(entries, ","))

		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestPipeline(t *testing.T, api *fakeAPI, cfg Config) *Pipeline {
	t.Helper()

	var server *httptest.Server
	server = httptest.NewServer(api.handler(t, func() string { return server.URL }))
	t.Cleanup(server.Close)

	client, err := spotify.NewClient(spotify.Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.SetSession(spotify.NewStaticSession("test-token"))

	p, err := New(cfg, client, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}
	return p
}

func TestPipeline_Run(t *testing.T) {
	api := &fakeAPI{
		n:          250,
		noFeatures: map[string]bool{"trk005": true, "trk120": true},
		nullDance:  "trk200",
	}
	p := newTestPipeline(t, api, Config{})

	report, err := p.Run(context.Background(), "Radiohead")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Tracks) != 250 {
		t.Errorf("expected 250 unique tracks, got %d", len(report.Tracks))
	}
	if api.featureCalls.Load() != 3 {
		t.Errorf("expected 3 feature batches, got %d", api.featureCalls.Load())
	}
	if report.Raw.Len() != 248 {
		t.Errorf("expected 248 raw rows, got %d", report.Raw.Len())
	}
	if strings.Join(report.Omitted, ",") != "trk005,trk120" {
		t.Errorf("expected omitted [trk005 trk120], got %v", report.Omitted)
	}
	if report.Cleaned.Len() != 247 {
		t.Errorf("expected 247 cleaned rows, got %d", report.Cleaned.Len())
	}
	if got := report.Cleaned.Columns(); strings.Join(got, ",") != strings.Join(cleaner.CleanedColumns(), ",") {
		t.Errorf("unexpected cleaned columns %v", got)
	}
	if mins, _ := report.Cleaned.Row(0).Float(cleaner.DurationMinsColumn); mins != 3 {
		t.Errorf("expected 3 minutes, got %v", mins)
	}
	if pop, _ := report.Cleaned.Row(0).Float("popularity"); pop != 42 {
		t.Errorf("expected popularity 42, got %v", pop)
	}
	if report.Artist != "Radiohead" || report.RunID.String() == "" {
		t.Errorf("unexpected report identity %s %s", report.Artist, report.RunID)
	}
}

func TestPipeline_Run_Exports(t *testing.T) {
	api := &fakeAPI{n: 10}
	p := newTestPipeline(t, api, Config{BatchSize: 4})

	path := filepath.Join(t.TempDir(), "features.csv")
	sink := export.NewCSV(path)
	defer func() { _ = sink.Close() }()
	p.AddSink(sink)

	if _, err := p.Run(context.Background(), "Blur"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.featureCalls.Load() != 3 {
		t.Errorf("expected 3 batches of at most 4, got %d", api.featureCalls.Load())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 11 {
		t.Errorf("expected header and 10 exported rows, got %d lines", lines)
	}
}

func TestPipeline_Run_PopularityFailure(t *testing.T) {
	api := &fakeAPI{n: 4, tracksStatus: http.StatusBadGateway}
	p := newTestPipeline(t, api, Config{})

	_, err := p.Run(context.Background(), "Blur")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "failed to enrich popularity: ") {
		t.Errorf("expected popularity stage in error, got %q", err)
	}
	var transportErr *spotify.TransportError
	if !errors.As(err, &transportErr) || transportErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502 *TransportError, got %v", err)
	}
}

func TestPipeline_Run_SearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := spotify.NewClient(spotify.Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.SetSession(spotify.NewStaticSession("expired"))

	p, err := New(Config{}, client, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}

	_, err = p.Run(context.Background(), "Blur")
	var transportErr *spotify.TransportError
	if !errors.As(err, &transportErr) || transportErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 *TransportError, got %v", err)
	}
}

func TestNew_BatchSize(t *testing.T) {
	client, err := spotify.NewClient(spotify.Config{})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "default", size: 0},
		{name: "minimum", size: 1},
		{name: "maximum", size: 100},
		{name: "negative", size: -5, wantErr: true},
		{name: "too large", size: 101, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{BatchSize: tt.size}, client, zerolog.Nop())
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
