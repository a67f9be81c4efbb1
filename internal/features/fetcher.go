// Package features turns audio-feature lookups into feature tables.
package features

import (
	"context"
	"fmt"

	"github.com/jfmyers9/soundstats/pkg/frame"
	"github.com/jfmyers9/soundstats/pkg/spotify"
	"github.com/rs/zerolog"
)

// Fetcher wraps the Spotify client with table-shaped feature lookups
type Fetcher struct {
	client *spotify.Client
	logger zerolog.Logger
}

// NewFetcher creates a Fetcher. The client must already hold a session.
func NewFetcher(client *spotify.Client, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logger.With().Str("component", "fetcher").Logger(),
	}
}

// FetchOne returns a one-row table for a single track.
func (f *Fetcher) FetchOne(ctx context.Context, id string) (*frame.Frame, error) {
	record, err := f.client.Features().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch features for %s: %w", id, err)
	}
	return ToFrame([]spotify.AudioFeatures{*record})
}

// FetchMany returns a table for up to spotify.MaxFeatureIDs tracks, one
// row per record the API returned. Tracks without features are left out;
// the table can be shorter than ids.
func (f *Fetcher) FetchMany(ctx context.Context, ids []string) (*frame.Frame, error) {
	records, err := f.client.Features().List(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch features: %w", err)
	}

	table, err := ToFrame(records)
	if err != nil {
		return nil, err
	}
	if missing := Omitted(ids, table); len(missing) > 0 {
		f.logger.Warn().
			Int("requested", len(ids)).
			Int("returned", table.Len()).
			Msg("Some tracks have no audio features")
		f.logger.Debug().Strs("ids", missing).Msg("Tracks without audio features")
	}

	return table, nil
}

// FetchAll fetches every batch in order and stacks the results. Rows come
// out in batch order, then in row order within a batch. Any failed batch
// aborts the whole fetch.
func (f *Fetcher) FetchAll(ctx context.Context, batches spotify.Batches) (*frame.Frame, error) {
	if err := batches.Validate(spotify.MaxFeatureIDs); err != nil {
		return nil, err
	}

	parts := make([]*frame.Frame, 0, len(batches))
	for i, batch := range batches {
		table, err := f.FetchMany(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
		}
		f.logger.Debug().
			Int("batch", i+1).
			Int("ids", len(batch)).
			Int("rows", table.Len()).
			Msg("Fetched batch")
		parts = append(parts, table)
	}

	if len(parts) == 0 {
		return ToFrame(nil)
	}
	return frame.Concat(parts...), nil
}

// Popularity returns the popularity score of each track, keyed by id.
// Tracks the API does not know, or that carry no score, are absent.
func (f *Fetcher) Popularity(ctx context.Context, ids []string) (map[string]int, error) {
	popularity := make(map[string]int, len(ids))

	for start := 0; start < len(ids); start += spotify.MaxTrackIDs {
		end := min(start+spotify.MaxTrackIDs, len(ids))

		tracks, err := f.client.Tracks().List(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to fetch popularity: %w", err)
		}
		for _, t := range tracks {
			if t.Popularity != nil {
				popularity[t.ID] = *t.Popularity
			}
		}
	}

	return popularity, nil
}
