package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// FeaturesService provides audio-feature lookups.
type FeaturesService struct {
	client *Client
}

const (
	// MaxFeatureIDs is the maximum number of track identifiers the API
	// accepts in a single audio-features request.
	MaxFeatureIDs = 100
)

// Get returns the audio features of a single track.
func (s *FeaturesService) Get(ctx context.Context, id string) (*AudioFeatures, error) {
	if id == "" {
		return nil, fmt.Errorf("spotify: track id is required")
	}

	body, target, err := s.client.get(ctx, "/audio-features/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var features AudioFeatures
	if err := json.Unmarshal(body, &features); err != nil {
		return nil, &ResponseFormatError{Endpoint: target, Reason: err.Error(), Body: string(body)}
	}
	if features.ID == "" {
		return nil, &ResponseFormatError{Endpoint: target, Reason: `missing "id" key`, Body: string(body)}
	}

	return &features, nil
}

// List returns the audio features of up to MaxFeatureIDs tracks in one
// request.
//
// The API answers with one entry per requested identifier but uses null
// for tracks it has no features for (regionally unavailable tracks, for
// example). Those entries are dropped without any marker, so the result can
// be shorter than ids. An empty ids slice returns nil without a request.
//
// Example:
//
//	features, err := client.Features().List(ctx, []string{"id1", "id2"})
//	if err != nil {
//	    log.Fatal(err)
//	}
func (s *FeaturesService) List(ctx context.Context, ids []string) ([]AudioFeatures, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxFeatureIDs {
		return nil, fmt.Errorf("%w: %d audio-feature ids in one request (max %d)", ErrBatchTooLarge, len(ids), MaxFeatureIDs)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))

	body, target, err := s.client.get(ctx, "/audio-features", query)
	if err != nil {
		return nil, err
	}

	list := gjson.GetBytes(body, "audio_features")
	if !list.IsArray() {
		return nil, &ResponseFormatError{Endpoint: target, Reason: `missing "audio_features" key`, Body: string(body)}
	}

	return decodeObjects[AudioFeatures](list, target)
}
