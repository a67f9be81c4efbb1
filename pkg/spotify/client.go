package spotify

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Config holds client configuration.
type Config struct {
	ClientID           string       // Required for Login: application client ID
	ClientSecret       string       // Required for Login: application client secret
	HTTPClient         *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL            string       // Optional: Web API base URL (defaults to DefaultBaseURL, used for testing)
	TokenURL           string       // Optional: token endpoint (defaults to DefaultTokenURL, used for testing)
	InsecureSkipVerify bool         // Optional: disable TLS certificate verification (ignored when HTTPClient is set)
	Logger             Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify Web API operations.
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	baseURL      string
	tokenURL     string
	logger       Logger

	session *Session

	auth     *AuthService
	search   *SearchService
	features *FeaturesService
	tracks   *TracksService
}

const (
	// DefaultBaseURL is the default Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// DefaultTokenURL is the default Spotify accounts token endpoint.
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
)

// NewClient creates a new Spotify Web API client.
//
// Credentials are not checked here; a client without them fails at
// Auth().Login with an *AuthenticationError. Returns an error wrapping
// ErrInvalidConfig if BaseURL or TokenURL cannot be parsed.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%w: base url: %v", ErrInvalidConfig, err)
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if _, err := url.Parse(tokenURL); err != nil {
		return nil, fmt.Errorf("%w: token url: %v", ErrInvalidConfig, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
		if cfg.InsecureSkipVerify {
			httpClient = insecureHTTPClient()
		}
	}

	c := &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(baseURL, "/"),
		tokenURL:     tokenURL,
		logger:       cfg.Logger,
	}

	c.auth = &AuthService{client: c}
	c.search = &SearchService{client: c}
	c.features = &FeaturesService{client: c}
	c.tracks = &TracksService{client: c}

	return c, nil
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Search returns the catalog search service.
func (c *Client) Search() *SearchService {
	return c.search
}

// Features returns the audio-features service.
func (c *Client) Features() *FeaturesService {
	return c.features
}

// Tracks returns the track lookup service.
func (c *Client) Tracks() *TracksService {
	return c.tracks
}

// SetSession sets the session used to authorize API requests.
func (c *Client) SetSession(s *Session) {
	c.session = s
}

// Session returns the current session, or nil before Login.
func (c *Client) Session() *Session {
	return c.session
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}

// insecureHTTPClient returns a client that skips TLS certificate verification.
func insecureHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// #nosec G402 -- opt-in via Config.InsecureSkipVerify for local throwaway runs
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	return &http.Client{Transport: transport}
}
