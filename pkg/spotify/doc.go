// Package spotify provides a small client for the Spotify Web API.
//
// # Overview
//
// This package covers what is needed to collect audio-feature data for an
// artist: the client-credentials token exchange, paginated track search,
// and audio-feature and track lookups, one identifier at a time or in
// batches. Every call takes a context.Context and returns typed errors.
//
// # Quick Start
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
//	    ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := client.Auth().Login(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	tracks, err := client.Search().Tracks(ctx, "Radiohead")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	batches, err := spotify.Chunk(spotify.IDs(tracks), spotify.MaxFeatureIDs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, batch := range batches {
//	    features, err := client.Features().List(ctx, batch)
//	    ...
//	}
//
// # Sessions
//
// Login performs exactly one request to the token endpoint and installs the
// resulting Session on the client. The session is reused by every later
// call. If the token expires during a long run it is requested again with
// the same credentials.
//
// # Error Handling
//
// Nothing is retried. Failures surface as one of:
//
//   - *AuthenticationError: the token exchange failed
//   - *ResponseFormatError: the body was not shaped as documented
//   - *TransportError: a network failure or non-2xx status
//
// Each carries the response body when there was one:
//
//	_, err := client.Search().Tracks(ctx, name)
//	var transportErr *spotify.TransportError
//	if errors.As(err, &transportErr) && transportErr.Temporary() {
//	    // rate limited or server error
//	}
//
// # TLS
//
// Config.InsecureSkipVerify disables certificate verification. It exists
// for throwaway local runs behind intercepting proxies and is off by
// default.
package spotify
