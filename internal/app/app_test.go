package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/report"
)

type fakeAuth struct {
	status     auth.Status
	startTo    auth.Status
	loginErr   error
	logoutErr  error
	logins     int
	logouts    int
	watchCount int
}

func (f *fakeAuth) Status() auth.Status { return f.status }

func (f *fakeAuth) Authenticated() bool { return f.status == auth.StatusAuthenticated }

func (f *fakeAuth) Watch(func(auth.Status)) { f.watchCount++ }

func (f *fakeAuth) Wait(context.Context) (auth.Status, error) { return f.status, nil }

func (f *fakeAuth) Start(context.Context) auth.Status {
	f.status = f.startTo
	return f.status
}

func (f *fakeAuth) Login(context.Context) error {
	f.logins++
	return f.loginErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	f.status = auth.StatusUnauthenticated
	return f.logoutErr
}

type fakeDownloader struct {
	path  string
	err   error
	calls int
}

func (f *fakeDownloader) Download(context.Context, string) (string, error) {
	f.calls++
	return f.path, f.err
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_LoadingGate(t *testing.T) {
	a := &fakeAuth{status: auth.StatusLoading, startTo: auth.StatusUnauthenticated}
	m := New(context.Background(), a, &fakeDownloader{}, t.TempDir())

	view := m.View()
	assert.NotContains(t, view, "BionicPRO Reports")
	assert.NotContains(t, view, "Usage Reports")
	assert.NotContains(t, view, "login")

	// keys other than quit do nothing while loading
	m, cmd := update(t, m, key("l"))
	assert.Nil(t, cmd)
	m, cmd = update(t, m, key("d"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, a.logins)

	// the start command resolves the gate
	msg := m.start()
	assert.IsType(t, statusMsg{}, msg)
	m, _ = update(t, m, msg)
	assert.Equal(t, auth.StatusUnauthenticated, m.status)
	assert.Contains(t, m.View(), "BionicPRO Reports")
}

func TestModel_StatusIsReread(t *testing.T) {
	a := &fakeAuth{status: auth.StatusLoading}
	m := New(context.Background(), a, &fakeDownloader{}, t.TempDir())

	a.status = auth.StatusAuthenticated
	m, _ = update(t, m, statusMsg{})

	view := m.View()
	assert.Contains(t, view, "Usage Reports")
	assert.NotContains(t, view, "BionicPRO Reports")
}

func TestModel_Login(t *testing.T) {
	tests := []struct {
		name         string
		loginErr     error
		expectedText string
	}{
		{name: "browser opened", expectedText: "Complete the sign-in in your browser."},
		{name: "login failed", loginErr: auth.ErrCryptoUnavailable, expectedText: auth.ErrCryptoUnavailable.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeAuth{status: auth.StatusUnauthenticated, loginErr: tt.loginErr}
			m := New(context.Background(), a, &fakeDownloader{}, t.TempDir())

			m, cmd := update(t, m, key("l"))
			require.NotNil(t, cmd)
			m, _ = update(t, m, cmd())

			assert.Equal(t, 1, a.logins)
			assert.Contains(t, m.View(), tt.expectedText)
		})
	}
}

func TestModel_Download(t *testing.T) {
	tests := []struct {
		name         string
		downloader   *fakeDownloader
		expectedText string
	}{
		{
			name:         "saved",
			downloader:   &fakeDownloader{path: "/tmp/prosthesis-report-2025-03-07.json"},
			expectedText: "Report saved to /tmp/prosthesis-report-2025-03-07.json",
		},
		{
			name:         "error is shown and the user stays signed in",
			downloader:   &fakeDownloader{err: report.ErrNoAccessToken},
			expectedText: "Failed to get access token",
		},
		{
			name:         "not authenticated",
			downloader:   &fakeDownloader{err: report.ErrNotAuthenticated},
			expectedText: "Not authenticated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeAuth{status: auth.StatusAuthenticated}
			m := New(context.Background(), a, tt.downloader, t.TempDir())

			m, cmd := update(t, m, key("d"))
			require.NotNil(t, cmd)
			assert.True(t, m.downloading)
			assert.Contains(t, m.View(), "Generating Report...")

			// a second press while in flight is ignored
			m, again := update(t, m, key("d"))
			assert.Nil(t, again)

			m, _ = update(t, m, cmd())
			assert.False(t, m.downloading)
			assert.Equal(t, 1, tt.downloader.calls)
			assert.Contains(t, m.View(), tt.expectedText)
			assert.Contains(t, m.View(), "Usage Reports")
			assert.Equal(t, 0, a.logouts)
		})
	}
}

func TestModel_Logout(t *testing.T) {
	a := &fakeAuth{status: auth.StatusAuthenticated, logoutErr: errors.New("request failed")}
	m := New(context.Background(), a, &fakeDownloader{}, t.TempDir())

	m, cmd := update(t, m, key("o"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, 1, a.logouts)
	assert.Equal(t, auth.StatusUnauthenticated, m.status)
	assert.Contains(t, m.View(), "BionicPRO Reports")
}

func TestModel_Quit(t *testing.T) {
	for _, status := range []auth.Status{auth.StatusLoading, auth.StatusUnauthenticated, auth.StatusAuthenticated} {
		m := New(context.Background(), &fakeAuth{status: status}, &fakeDownloader{}, "")

		_, cmd := update(t, m, key("q"))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())

		_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}
