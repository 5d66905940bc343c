package auth_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	authmock "github.com/PisklovCor/architecture-pro-bionicpro/internal/auth/mock"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/pkce"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/verifier"
	verifiermock "github.com/PisklovCor/architecture-pro-bionicpro/internal/verifier/mock"
)

var testAuthorizeConfig = auth.AuthorizeConfig{
	KeycloakURL: "http://localhost:8080/",
	Realm:       "reports-realm",
	ClientID:    "reports-frontend",
	RedirectURI: auth.RedirectURI("http://localhost:3000"),
}

type brokenRand struct{}

func (brokenRand) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestAuthorizeConfig_AuthorizationURL(t *testing.T) {
	raw := testAuthorizeConfig.AuthorizationURL("challenge-value")

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", u.Host)
	assert.Equal(t, "/realms/reports-realm/protocol/openid-connect/auth", u.Path)

	q := u.Query()
	assert.Equal(t, "reports-frontend", q.Get("client_id"))
	assert.Equal(t, "http://localhost:3000/callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
	assert.Equal(t, "challenge-value", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotContains(t, q, "code_verifier")
}

func TestInitiator_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := verifier.NewMemoryStore()
	nav := authmock.NewMockNavigator(ctrl)

	var navigated string
	nav.EXPECT().Navigate(gomock.Any()).DoAndReturn(func(u string) error {
		navigated = u
		return nil
	})

	initiator := &auth.Initiator{Config: testAuthorizeConfig, Store: store, Navigator: nav}
	require.NoError(t, initiator.Login(context.Background()))

	stored, err := store.Retrieve()
	require.NoError(t, err)

	u, err := url.Parse(navigated)
	require.NoError(t, err)
	assert.Equal(t, string(pkce.DeriveChallenge(stored)), u.Query().Get("code_challenge"))
	assert.NotContains(t, navigated, string(stored), "verifier must never reach the identity provider")
}

func TestInitiator_Login_OverwritesPendingVerifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := verifier.NewMemoryStore()
	require.NoError(t, store.Store("stale-verifier"))

	nav := authmock.NewMockNavigator(ctrl)
	nav.EXPECT().Navigate(gomock.Any()).Return(nil)

	initiator := &auth.Initiator{Config: testAuthorizeConfig, Store: store, Navigator: nav}
	require.NoError(t, initiator.Login(context.Background()))

	stored, err := store.Retrieve()
	require.NoError(t, err)
	assert.NotEqual(t, pkce.Verifier("stale-verifier"), stored)
}

func TestInitiator_Login_Errors(t *testing.T) {
	tests := []struct {
		name          string
		rand          bool
		setupMocks    func(store *verifiermock.MockStore, nav *authmock.MockNavigator)
		expectedErr   error
		expectedError string
	}{
		{
			name:        "crypto unavailable",
			rand:        true,
			setupMocks:  func(*verifiermock.MockStore, *authmock.MockNavigator) {},
			expectedErr: auth.ErrCryptoUnavailable,
		},
		{
			name: "store failure",
			setupMocks: func(store *verifiermock.MockStore, _ *authmock.MockNavigator) {
				store.EXPECT().Store(gomock.Any()).Return(assert.AnError)
			},
			expectedError: "failed to store code verifier",
		},
		{
			name: "navigation failure",
			setupMocks: func(store *verifiermock.MockStore, nav *authmock.MockNavigator) {
				store.EXPECT().Store(gomock.Any()).Return(nil)
				nav.EXPECT().Navigate(gomock.Any()).Return(assert.AnError)
			},
			expectedError: "failed to navigate to identity provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := verifiermock.NewMockStore(ctrl)
			nav := authmock.NewMockNavigator(ctrl)
			tt.setupMocks(store, nav)

			initiator := &auth.Initiator{Config: testAuthorizeConfig, Store: store, Navigator: nav}
			if tt.rand {
				initiator.Generator = &pkce.Generator{Rand: brokenRand{}}
			}

			err := initiator.Login(context.Background())
			require.Error(t, err)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
			if tt.expectedError != "" {
				assert.Contains(t, err.Error(), tt.expectedError)
			}
		})
	}
}
