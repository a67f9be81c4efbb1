// Package pipeline runs a full artist collection: search, fetch, enrich
// and clean.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jfmyers9/soundstats/internal/cleaner"
	"github.com/jfmyers9/soundstats/internal/export"
	"github.com/jfmyers9/soundstats/internal/features"
	"github.com/jfmyers9/soundstats/pkg/frame"
	"github.com/jfmyers9/soundstats/pkg/spotify"
	"github.com/rs/zerolog"
)

// Config holds pipeline configuration
type Config struct {
	BatchSize int    // Identifiers per audio-features request (1-100)
	Market    string // Optional search market
}

// Report is the outcome of one run.
type Report struct {
	RunID     uuid.UUID
	Artist    string
	Tracks    []spotify.Track // Unique tracks found by search
	Raw       *frame.Frame    // Audio features with popularity attached
	Cleaned   *frame.Frame    // Output of cleaner.Clean
	Omitted   []string        // Track ids with no audio features
	StartedAt time.Time
}

// Pipeline coordinates search, feature fetching and cleaning
type Pipeline struct {
	config  Config
	client  *spotify.Client
	fetcher *features.Fetcher
	sinks   []export.Sink
	logger  zerolog.Logger
}

// New creates a Pipeline. The client must already hold a session.
func New(cfg Config, client *spotify.Client, logger zerolog.Logger) (*Pipeline, error) {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = spotify.MaxFeatureIDs
	}
	if cfg.BatchSize < 1 || cfg.BatchSize > spotify.MaxFeatureIDs {
		return nil, fmt.Errorf("batch size must be between 1 and %d, got %d", spotify.MaxFeatureIDs, cfg.BatchSize)
	}

	return &Pipeline{
		config:  cfg,
		client:  client,
		fetcher: features.NewFetcher(client, logger),
		logger:  logger.With().Str("component", "pipeline").Logger(),
	}, nil
}

// AddSink registers a sink that receives the cleaned table after each
// successful run.
func (p *Pipeline) AddSink(sink export.Sink) {
	p.sinks = append(p.sinks, sink)
}

// Run collects and cleans the audio features of every track by artist.
// Stages run in order and the first failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, artist string) (*Report, error) {
	report := &Report{
		RunID:     uuid.New(),
		Artist:    artist,
		StartedAt: time.Now(),
	}
	logger := p.logger.With().Str("run", report.RunID.String()).Str("artist", artist).Logger()

	logger.Info().Msg("Searching catalog")
	tracks, err := p.client.Search().TracksWithOptions(ctx, artist, spotify.SearchOptions{Market: p.config.Market})
	if err != nil {
		return nil, fmt.Errorf("failed to search tracks: %w", err)
	}
	report.Tracks = tracks
	logger.Info().Int("tracks", len(tracks)).Msg("Search complete")

	ids := spotify.IDs(tracks)
	batches, err := spotify.Chunk(ids, p.config.BatchSize)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("batches", len(batches)).Msg("Fetching audio features")
	raw, err := p.fetcher.FetchAll(ctx, batches)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audio features: %w", err)
	}

	report.Omitted = features.Omitted(ids, raw)
	if len(report.Omitted) > 0 {
		logger.Warn().Int("omitted", len(report.Omitted)).Msg("Tracks without audio features were dropped")
	}

	popularity, err := p.fetcher.Popularity(ctx, rowIDs(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to enrich popularity: %w", err)
	}
	report.Raw = features.WithPopularity(raw, popularity)

	cleaned, err := cleaner.Clean(report.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to clean features: %w", err)
	}
	report.Cleaned = cleaned
	logger.Info().
		Int("raw", report.Raw.Len()).
		Int("cleaned", cleaned.Len()).
		Msg("Run complete")

	for _, sink := range p.sinks {
		if err := sink.Write(ctx, cleaned); err != nil {
			return report, fmt.Errorf("failed to export features: %w", err)
		}
	}

	return report, nil
}

// rowIDs returns the track id of every row in a feature table.
func rowIDs(f *frame.Frame) []string {
	ids := make([]string, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		if id, ok := f.Row(i).Text("id"); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
