package authsvc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

// TokenProvider talks to the identity provider.
type TokenProvider interface {
	// Exchange redeems an authorization code with its PKCE verifier.
	Exchange(ctx context.Context, code, verifier, redirectURI string) (*oauth2.Token, error)
	// Refresh runs the refresh_token grant.
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// Keycloak is a public-client TokenProvider for one realm.
type Keycloak struct {
	config  oauth2.Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

var _ TokenProvider = (*Keycloak)(nil)

// NewKeycloak creates a client for cfg's realm. A nil client uses http.DefaultClient.
func NewKeycloak(cfg *Config, client *http.Client) *Keycloak {
	return &Keycloak{
		config: oauth2.Config{
			ClientID: cfg.ClientID,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "keycloak",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: isBreakerSuccess,
		}),
	}
}

func (k *Keycloak) Exchange(ctx context.Context, code, verifier, redirectURI string) (*oauth2.Token, error) {
	cfg := k.config
	cfg.RedirectURL = redirectURI

	return k.execute(func() (*oauth2.Token, error) {
		return cfg.Exchange(k.withClient(ctx), code, oauth2.VerifierOption(verifier))
	})
}

func (k *Keycloak) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	// no access token, so the source always runs the grant
	src := k.config.TokenSource(k.withClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	return k.execute(src.Token)
}

func (k *Keycloak) execute(fn func() (*oauth2.Token, error)) (*oauth2.Token, error) {
	res, err := k.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return res.(*oauth2.Token), nil
}

func (k *Keycloak) withClient(ctx context.Context) context.Context {
	if k.client == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, k.client)
}

// isBreakerSuccess keeps rejected grants, such as a reused code, from tripping the breaker.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return re.Response.StatusCode >= 400 && re.Response.StatusCode < 500
	}
	return false
}

// UserFromToken reads preferred_username from an access token without
// verifying it. The token came straight from the identity provider.
func UserFromToken(accessToken string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return "", fmt.Errorf("failed to parse access token: %w", err)
	}
	user, _ := claims["preferred_username"].(string)
	return user, nil
}
