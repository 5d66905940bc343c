package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
)

const (
	// CallbackPath is the path the identity provider redirects back to.
	CallbackPath = "/callback"
	// DefaultScope is requested on every authorization.
	DefaultScope = "openid profile email"
	// defaultAuthTimeout is the maximum time to wait for the browser round trip.
	defaultAuthTimeout = 5 * time.Minute
)

var (
	// ErrCryptoUnavailable aborts a login before any navigation happens.
	ErrCryptoUnavailable = errors.New("crypto unavailable")
	// ErrVerifierMissing means a code arrived but no verifier was stored for it.
	ErrVerifierMissing = errors.New("code verifier missing")
	// ErrExchangeFailed means the backend rejected the code or could not be reached.
	ErrExchangeFailed = errors.New("code exchange failed")
	// ErrSessionCheckFailed degrades to "not authenticated".
	ErrSessionCheckFailed = errors.New("session check failed")
	// ErrTokenFetchFailed degrades to "no token".
	ErrTokenFetchFailed = errors.New("access token fetch failed")
)

// AuthorizeConfig describes the Keycloak client this CLI authenticates as.
type AuthorizeConfig struct {
	KeycloakURL string
	Realm       string
	ClientID    string
	RedirectURI string
	Scope       string
}

// RedirectURI returns the callback URI for origin. The same string is sent to
// the identity provider and to the exchange endpoint.
func RedirectURI(origin string) string {
	return strings.TrimRight(origin, "/") + CallbackPath
}

// Endpoint returns the realm's OpenID Connect authorization endpoint.
func (c AuthorizeConfig) Endpoint() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/auth",
		strings.TrimRight(c.KeycloakURL, "/"), url.PathEscape(c.Realm))
}

// AuthorizationURL builds the authorization request for challenge.
func (c AuthorizeConfig) AuthorizationURL(challenge string) string {
	scope := c.Scope
	if scope == "" {
		scope = DefaultScope
	}

	params := url.Values{}
	params.Set("client_id", c.ClientID)
	params.Set("redirect_uri", c.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", scope)
	params.Set("code_challenge", challenge)
	params.Set("code_challenge_method", "S256")

	return fmt.Sprintf("%s?%s", c.Endpoint(), params.Encode())
}

// ExchangeRequest is the body of POST /api/auth/callback.
type ExchangeRequest struct {
	Code         string `json:"code"`
	CodeVerifier string `json:"code_verifier"`
	RedirectURI  string `json:"redirect_uri"`
}

// SessionInfo is the body of GET /api/auth/session.
type SessionInfo struct {
	SessionID     string `json:"sessionId"`
	Authenticated bool   `json:"authenticated"`
	User          string `json:"user,omitempty"`
}

// oAuth2ErrorResponse represents a standard OAuth2 error response as defined in RFC 6749
type oAuth2ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// errorMessage extracts a readable message from a failed response body.
func errorMessage(status int, body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 64<<10))

	var oauthErr oAuth2ErrorResponse
	if err := json.Unmarshal(data, &oauthErr); err == nil && oauthErr.Error != "" {
		if oauthErr.ErrorDescription != "" {
			return fmt.Sprintf("%s - %s", oauthErr.Error, strings.ToLower(oauthErr.ErrorDescription))
		}
		return oauthErr.Error
	}

	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}

	return fmt.Sprintf("status %d", status)
}
