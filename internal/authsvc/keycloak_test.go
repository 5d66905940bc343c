package authsvc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return s
}

// keycloakServer records the last token request form.
func keycloakServer(t *testing.T, status int, body map[string]any) (*httptest.Server, *url.Values) {
	t.Helper()
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/realms/reports-realm/protocol/openid-connect/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &form
}

func testConfig(keycloakURL string) *Config {
	return &Config{
		Listen:        ":0",
		KeycloakURL:   keycloakURL,
		Realm:         "reports-realm",
		ClientID:      "reports-frontend",
		EncryptionKey: "0123456789abcdef-test-secret",
		SessionTTL:    7200 * time.Second,
		AccessTTL:     300 * time.Second,
		CallbackRate:  5,
		CallbackBurst: 10,
		LogLevel:      "info",
	}
}

func TestKeycloak_Exchange(t *testing.T) {
	srv, form := keycloakServer(t, http.StatusOK, map[string]any{
		"access_token":  "access-1",
		"refresh_token": "refresh-1",
		"token_type":    "Bearer",
		"expires_in":    300,
	})

	kc := NewKeycloak(testConfig(srv.URL), srv.Client())
	tok, err := kc.Exchange(context.Background(), "abc123", "verifier-1", "http://localhost:3000/callback")
	require.NoError(t, err)

	assert.Equal(t, "access-1", tok.AccessToken)
	assert.Equal(t, "refresh-1", tok.RefreshToken)
	assert.Equal(t, "authorization_code", form.Get("grant_type"))
	assert.Equal(t, "reports-frontend", form.Get("client_id"))
	assert.Equal(t, "abc123", form.Get("code"))
	assert.Equal(t, "verifier-1", form.Get("code_verifier"))
	assert.Equal(t, "http://localhost:3000/callback", form.Get("redirect_uri"))
	assert.Empty(t, form.Get("client_secret"))
}

func TestKeycloak_Refresh(t *testing.T) {
	srv, form := keycloakServer(t, http.StatusOK, map[string]any{
		"access_token":  "access-2",
		"refresh_token": "refresh-2",
		"token_type":    "Bearer",
		"expires_in":    300,
	})

	kc := NewKeycloak(testConfig(srv.URL), srv.Client())
	tok, err := kc.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)

	assert.Equal(t, "access-2", tok.AccessToken)
	assert.Equal(t, "refresh-2", tok.RefreshToken)
	assert.Equal(t, "refresh_token", form.Get("grant_type"))
	assert.Equal(t, "refresh-1", form.Get("refresh_token"))
	assert.Equal(t, "reports-frontend", form.Get("client_id"))
}

func TestKeycloak_Rejected(t *testing.T) {
	srv, _ := keycloakServer(t, http.StatusBadRequest, map[string]any{
		"error":             "invalid_grant",
		"error_description": "Code not valid",
	})

	kc := NewKeycloak(testConfig(srv.URL), srv.Client())

	// rejected grants never open the breaker
	for range 6 {
		_, err := kc.Exchange(context.Background(), "used", "verifier-1", "http://localhost:3000/callback")
		var re *oauth2.RetrieveError
		require.True(t, errors.As(err, &re), "got %v", err)
		assert.Equal(t, "invalid_grant", re.ErrorCode)
	}
}

func TestIsBreakerSuccess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", want: true},
		{name: "client error", err: &oauth2.RetrieveError{Response: &http.Response{StatusCode: 400}}, want: true},
		{name: "server error", err: &oauth2.RetrieveError{Response: &http.Response{StatusCode: 503}}},
		{name: "network error", err: errors.New("connection refused")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBreakerSuccess(tt.err))
		})
	}
}

func TestUserFromToken(t *testing.T) {
	user, err := UserFromToken(signedToken(t, jwt.MapClaims{"preferred_username": "prothetic1"}))
	require.NoError(t, err)
	assert.Equal(t, "prothetic1", user)

	user, err = UserFromToken(signedToken(t, jwt.MapClaims{"sub": "42"}))
	require.NoError(t, err)
	assert.Empty(t, user)

	_, err = UserFromToken("opaque")
	assert.ErrorContains(t, err, "failed to parse access token")
}
