package spotify

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// SearchService provides catalog search operations.
type SearchService struct {
	client *Client
}

// SearchOptions narrows a track search. Both fields are optional and only
// apply to the first page; later pages follow the API's next links.
type SearchOptions struct {
	Limit  int    // Page size (the API caps this at 50)
	Market string // ISO 3166-1 alpha-2 market code
}

// Tracks returns every track whose artist matches name.
//
// The search endpoint is filtered with "artist:<name>" and type "track",
// and every page is requested in turn by following the "next" link until
// the API stops returning one. The same track can appear under several
// album contexts, so identifiers are deduplicated after all pages are
// read. The result keeps first-seen order, but callers should treat it as
// a set.
//
// A search with no matches returns an empty slice and a nil error. If any
// page fails, Tracks returns the error and no partial results.
//
// Example:
//
//	tracks, err := client.Search().Tracks(ctx, "Radiohead")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("found %d tracks\n", len(tracks))
func (s *SearchService) Tracks(ctx context.Context, name string) ([]Track, error) {
	return s.TracksWithOptions(ctx, name, SearchOptions{})
}

// TracksWithOptions is Tracks with a page size and market.
func (s *SearchService) TracksWithOptions(ctx context.Context, name string, opts SearchOptions) ([]Track, error) {
	query := url.Values{}
	query.Set("q", "artist:"+name)
	query.Set("type", "track")
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Market != "" {
		query.Set("market", opts.Market)
	}

	var found []Track
	endpoint := "/search"
	pages := 0

	for endpoint != "" {
		body, target, err := s.client.get(ctx, endpoint, query)
		if err != nil {
			return nil, err
		}
		pages++

		tracks := gjson.GetBytes(body, "tracks")
		if !tracks.IsObject() {
			return nil, &ResponseFormatError{Endpoint: target, Reason: `missing "tracks" key`, Body: string(body)}
		}

		tracks.Get("items").ForEach(func(_, item gjson.Result) bool {
			id := item.Get("id").String()
			if id != "" {
				found = append(found, Track{ID: id, Name: item.Get("name").String()})
			}
			return true
		})

		// A null next marks the last page; next links carry the full query.
		endpoint = tracks.Get("next").String()
		query = nil
	}

	unique := dedupeTracks(found)
	s.client.logDebugf("spotify: search %q read %d pages, %d items, %d unique", name, pages, len(found), len(unique))

	return unique, nil
}

// dedupeTracks drops repeated identifiers, keeping the first occurrence.
func dedupeTracks(tracks []Track) []Track {
	seen := make(map[string]struct{}, len(tracks))
	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// IDs returns the identifiers of tracks, in order.
func IDs(tracks []Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}
