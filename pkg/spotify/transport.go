package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// get issues an authorized GET request and returns the response body.
//
// endpoint is either a path relative to the base URL ("/search") or an
// absolute URL, as handed back in a paging "next" field. query is ignored
// for absolute URLs because those already encode their parameters. An
// absolute URL on a host other than the base URL's is refused with
// ErrForeignHost so the bearer token never leaves the API host.
//
// There is no retry: any network failure or non-2xx status is returned as
// a *TransportError, and a body that is not JSON as a *ResponseFormatError.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, string, error) {
	if c.session == nil {
		return nil, "", ErrNoSession
	}

	target, err := c.resolve(endpoint, query)
	if err != nil {
		return nil, "", err
	}

	header, err := c.session.Header()
	if err != nil {
		return nil, target, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, target, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = header
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "soundstats/1.0")

	c.logDebugf("spotify: GET %s", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, target, &TransportError{Endpoint: target, Err: err}
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, target, &TransportError{Endpoint: target, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, target, &TransportError{Endpoint: target, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !gjson.ValidBytes(body) {
		return nil, target, &ResponseFormatError{Endpoint: target, Reason: "body is not valid JSON", Body: string(body)}
	}

	c.logDebugf("spotify: GET %s succeeded (%d bytes)", target, len(body))
	return body, target, nil
}

// resolve builds the request URL for endpoint.
func (c *Client) resolve(endpoint string, query url.Values) (string, error) {
	if strings.HasPrefix(endpoint, "https://") || strings.HasPrefix(endpoint, "http://") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return "", fmt.Errorf("invalid next url %q: %w", endpoint, err)
		}
		base, err := url.Parse(c.baseURL)
		if err != nil {
			return "", fmt.Errorf("invalid base url %q: %w", c.baseURL, err)
		}
		if !strings.EqualFold(u.Host, base.Host) {
			return "", fmt.Errorf("%w: %s", ErrForeignHost, u.Host)
		}
		return u.String(), nil
	}

	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// decodeObjects decodes every object in a JSON array into T, skipping null
// entries. The API uses nulls for identifiers it has nothing for.
func decodeObjects[T any](list gjson.Result, endpoint string) ([]T, error) {
	items := list.Array()
	out := make([]T, 0, len(items))
	for i, item := range items {
		if item.Type == gjson.Null {
			continue
		}
		if !item.IsObject() {
			return nil, &ResponseFormatError{
				Endpoint: endpoint,
				Reason:   fmt.Sprintf("element %d is not an object", i),
				Body:     list.Raw,
			}
		}
		var v T
		if err := json.Unmarshal([]byte(item.Raw), &v); err != nil {
			return nil, &ResponseFormatError{
				Endpoint: endpoint,
				Reason:   fmt.Sprintf("element %d: %v", i, err),
				Body:     item.Raw,
			}
		}
		out = append(out, v)
	}
	return out, nil
}
