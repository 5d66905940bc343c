package bionicpro

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/verifier"
)

func TestNewSession(t *testing.T) {
	tests := []struct {
		name           string
		cookie         string
		expectedStatus auth.Status
		expectedFile   string
	}{
		{
			name:           "persisted session cookie",
			cookie:         "s1",
			expectedStatus: auth.StatusAuthenticated,
			expectedFile:   "prosthesis-report-",
		},
		{
			name:           "no cookie",
			expectedStatus: auth.StatusUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c, err := r.Cookie("BIONICPRO_SESSION")
				if err != nil || c.Value != "s1" {
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = w.Write([]byte(`{"error":"No session found"}`))
					return
				}
				switch r.URL.Path {
				case "/api/auth/session":
					_, _ = w.Write([]byte(`{"sessionId":"s1","authenticated":true,"user":"prothetic1"}`))
				case "/api/auth/token":
					_, _ = w.Write([]byte(`{"access_token":"access-1"}`))
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer authSrv.Close()

			apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
				_, _ = w.Write([]byte(`{"user":"prothetic1"}`))
			}))
			defer apiSrv.Close()

			store := &FileConfigStore{}
			cfg := &Config{AuthServiceURL: authSrv.URL, APIURL: apiSrv.URL}
			if tt.cookie != "" {
				cfg.Session.Cookies = []Cookie{{
					Name:    "BIONICPRO_SESSION",
					Value:   tt.cookie,
					Path:    "/",
					Expires: time.Now().Add(time.Hour),
				}}
			}
			require.NoError(t, store.Save(cfg))

			session, err := NewSession(store, SessionOptions{Navigator: auth.PrintNavigator{}})
			require.NoError(t, err)
			assert.Equal(t, authSrv.URL, session.Config.AuthServiceURL)
			assert.Equal(t, DefaultRealm, session.Config.Realm)

			assert.Equal(t, tt.expectedStatus, session.Provider.Start(context.Background()))

			dir := t.TempDir()
			out, err := session.Downloader().Download(context.Background(), dir)
			if tt.expectedFile == "" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.expectedFile)
			_, err = os.Stat(out)
			assert.NoError(t, err)
		})
	}
}

func TestNewSession_PersistVerifier(t *testing.T) {
	isolate(t)
	t.Setenv(verifier.EnvVerifierPath, t.TempDir()+"/pending")

	var navigated string
	session, err := NewSession(&FileConfigStore{}, SessionOptions{
		PersistVerifier: true,
		Navigator:       navigatorFunc(func(u string) error { navigated = u; return nil }),
	})
	require.NoError(t, err)

	require.NoError(t, session.Provider.Login(context.Background()))
	assert.Contains(t, navigated, "code_challenge_method=S256")

	// a second process finds the pending verifier
	v, err := verifier.NewFileStore().Retrieve()
	require.NoError(t, err)
	assert.NotEmpty(t, v)
}

func TestNewSession_InvalidConfig(t *testing.T) {
	isolate(t)
	t.Setenv("API_URL", "not-a-url")

	_, err := NewSession(&FileConfigStore{}, SessionOptions{})
	assert.ErrorContains(t, err, "invalid configuration")
}

type navigatorFunc func(string) error

func (f navigatorFunc) Navigate(u string) error { return f(u) }
