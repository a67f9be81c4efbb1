package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// TracksService provides track lookups by identifier.
type TracksService struct {
	client *Client
}

const (
	// MaxTrackIDs is the maximum number of track identifiers the API
	// accepts in a single tracks request.
	MaxTrackIDs = 50
)

// Get returns a single track, including its popularity.
func (s *TracksService) Get(ctx context.Context, id string) (*Track, error) {
	if id == "" {
		return nil, fmt.Errorf("spotify: track id is required")
	}

	body, target, err := s.client.get(ctx, "/tracks/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var track Track
	if err := json.Unmarshal(body, &track); err != nil {
		return nil, &ResponseFormatError{Endpoint: target, Reason: err.Error(), Body: string(body)}
	}
	if track.ID == "" {
		return nil, &ResponseFormatError{Endpoint: target, Reason: `missing "id" key`, Body: string(body)}
	}

	return &track, nil
}

// List returns up to MaxTrackIDs tracks in one request. Like
// FeaturesService.List, unknown identifiers come back as null and are
// dropped.
func (s *TracksService) List(ctx context.Context, ids []string) ([]Track, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxTrackIDs {
		return nil, fmt.Errorf("%w: %d track ids in one request (max %d)", ErrBatchTooLarge, len(ids), MaxTrackIDs)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))

	body, target, err := s.client.get(ctx, "/tracks", query)
	if err != nil {
		return nil, err
	}

	list := gjson.GetBytes(body, "tracks")
	if !list.IsArray() {
		return nil, &ResponseFormatError{Endpoint: target, Reason: `missing "tracks" key`, Body: string(body)}
	}

	return decodeObjects[Track](list, target)
}
