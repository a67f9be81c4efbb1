package spotify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AuthService provides authentication operations for the Spotify Web API.
type AuthService struct {
	client *Client
}

// Session holds the bearer token used to authorize API requests.
//
// A Session is created once per run by Login and shared read-only by every
// subsequent call. When the token expires it is re-requested with the same
// client credentials.
type Session struct {
	source oauth2.TokenSource
}

// Login exchanges the client credentials for a bearer token.
//
// It sends a single client-credentials grant to the token endpoint using a
// Basic authorization header built from the client ID and secret. On
// success the session is installed on the client and returned.
//
// Example:
//
//	session, err := client.Auth().Login(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(session.Header())
func (a *AuthService) Login(ctx context.Context) (*Session, error) {
	c := a.client
	if c.clientID == "" || c.clientSecret == "" {
		return nil, &AuthenticationError{Message: "client id and client secret are required"}
	}

	cc := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	c.logDebugf("spotify: requesting token from %s", c.tokenURL)

	tok, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient))
	if err != nil {
		return nil, newAuthenticationError(err)
	}

	// Refreshes outlive the Login context.
	refreshCtx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
	session := &Session{source: oauth2.ReuseTokenSource(tok, cc.TokenSource(refreshCtx))}

	c.logDebugf("spotify: token acquired, expires %s", tok.Expiry.Format(time.RFC3339))

	c.SetSession(session)
	return session, nil
}

// NewStaticSession returns a session that always presents the given bearer
// token and never refreshes it.
func NewStaticSession(accessToken string) *Session {
	return &Session{source: oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})}
}

// Token returns the current bearer token, re-authenticating if it expired.
func (s *Session) Token() (string, error) {
	tok, err := s.source.Token()
	if err != nil {
		return "", newAuthenticationError(err)
	}
	return tok.AccessToken, nil
}

// Header returns the authorization header for API requests.
func (s *Session) Header() (http.Header, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	return h, nil
}

func newAuthenticationError(err error) *AuthenticationError {
	authErr := &AuthenticationError{Err: err}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil {
			authErr.StatusCode = retrieveErr.Response.StatusCode
		}
		authErr.Body = string(retrieveErr.Body)
		authErr.Message = "token endpoint rejected credentials"
	}

	return authErr
}
