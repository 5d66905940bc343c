package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	stdhttp "net/http"

	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/http"
)

const (
	sessionPath  = "/api/auth/session"
	tokenPath    = "/api/auth/token"
	logoutPath   = "/api/auth/logout"
	callbackPath = "/api/auth/callback"
)

// Gateway is the client side of the backend auth service. Every call rides on
// the ambient session cookie.
type Gateway interface {
	Exchanger
	// CheckSession reports whether the session is valid. Failures read as false.
	CheckSession(ctx context.Context) bool
	// Session returns details of the current session.
	Session(ctx context.Context) (*SessionInfo, error)
	// FetchAccessToken returns a short-lived bearer token. Failures read as absent.
	FetchAccessToken(ctx context.Context) (string, bool)
	// Logout asks the backend to invalidate the session.
	Logout(ctx context.Context) error
}

// Forgetter drops locally held session credentials.
type Forgetter interface {
	Clear() error
}

var _ Gateway = (*SessionClient)(nil)

// SessionClient implements Gateway over an HTTPDoer that resolves relative
// paths against the auth service and carries a cookie jar.
type SessionClient struct {
	http   http.HTTPDoer
	cookie Forgetter
}

// NewSessionClient creates a SessionClient. cookies may be nil.
func NewSessionClient(doer http.HTTPDoer, cookies Forgetter) *SessionClient {
	return &SessionClient{http: doer, cookie: cookies}
}

// CheckSession implements Gateway.
func (c *SessionClient) CheckSession(ctx context.Context) bool {
	if _, err := c.Session(ctx); err != nil {
		pterm.Debug.Printfln("%s", err)
		return false
	}
	return true
}

// Session implements Gateway.
func (c *SessionClient) Session(ctx context.Context) (*SessionInfo, error) {
	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodGet, sessionPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrSessionCheckFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrSessionCheckFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != stdhttp.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrSessionCheckFailed, errorMessage(resp.StatusCode, resp.Body))
	}

	info := SessionInfo{Authenticated: true}
	// the body is informational, a 200 alone means the session is valid
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		pterm.Debug.Printfln("failed to decode session response: %s", err)
		info.Authenticated = true
	}

	return &info, nil
}

// FetchAccessToken implements Gateway.
func (c *SessionClient) FetchAccessToken(ctx context.Context) (string, bool) {
	token, err := c.fetchAccessToken(ctx)
	if err != nil {
		pterm.Debug.Printfln("%s", err)
		return "", false
	}
	return token, true
}

func (c *SessionClient) fetchAccessToken(ctx context.Context) (string, error) {
	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodGet, tokenPath, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", ErrTokenFetchFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %w", ErrTokenFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != stdhttp.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrTokenFetchFailed, errorMessage(resp.StatusCode, resp.Body))
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %w", ErrTokenFetchFailed, err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrTokenFetchFailed)
	}

	return body.AccessToken, nil
}

// Logout implements Gateway. Local cookies are forgotten even when the request fails.
func (c *SessionClient) Logout(ctx context.Context) error {
	err := c.logout(ctx)

	if c.cookie != nil {
		if clearErr := c.cookie.Clear(); clearErr != nil {
			pterm.Debug.Printfln("failed to clear session cookie: %s", clearErr)
		}
	}

	return err
}

func (c *SessionClient) logout(ctx context.Context) error {
	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodPost, logoutPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != stdhttp.StatusOK {
		return fmt.Errorf("logout failed: %s", errorMessage(resp.StatusCode, resp.Body))
	}
	return nil
}

// Exchange implements Exchanger.
func (c *SessionClient) Exchange(ctx context.Context, exchange ExchangeRequest) error {
	payload, err := json.Marshal(exchange)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange request: %w", err)
	}

	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodPost, callbackPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != stdhttp.StatusOK {
		return fmt.Errorf("authentication failed: %s", errorMessage(resp.StatusCode, resp.Body))
	}
	return nil
}
