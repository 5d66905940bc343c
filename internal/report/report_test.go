package report_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/api"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/report"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/report/mock"
)

type fakeState struct {
	status auth.Status
}

func (f *fakeState) Status() auth.Status { return f.status }

func (f *fakeState) Authenticated() bool { return f.status == auth.StatusAuthenticated }

func (f *fakeState) Wait(context.Context) (auth.Status, error) { return f.status, nil }

type fakeTokens struct {
	token string
	calls int
}

func (f *fakeTokens) AccessToken(context.Context) (string, bool) {
	f.calls++
	return f.token, f.token != ""
}

var fixedNow = func() time.Time { return time.Date(2025, 3, 7, 23, 30, 0, 0, time.UTC) }

func TestFileName(t *testing.T) {
	assert.Equal(t, "prosthesis-report-2025-03-07.json", report.FileName(fixedNow()))

	// the date is taken in UTC
	local := time.Date(2025, 3, 8, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60))
	assert.Equal(t, "prosthesis-report-2025-03-07.json", report.FileName(local))
}

func TestDownloader_Download(t *testing.T) {
	tests := []struct {
		name          string
		status        auth.Status
		token         string
		setupMocks    func(fetcher *mock.MockReportFetcher)
		expectedErr   error
		expectedMsg   string
		expectedFile  string
		expectedCalls int
	}{
		{
			name:   "writes pretty printed report",
			status: auth.StatusAuthenticated,
			token:  "token-1",
			setupMocks: func(fetcher *mock.MockReportFetcher) {
				fetcher.EXPECT().GetReport(gomock.Any(), "token-1").
					Return(json.RawMessage(`{"user":"prothetic1","usage":[1,2]}`), nil)
			},
			expectedFile:  "{\n  \"user\": \"prothetic1\",\n  \"usage\": [\n    1,\n    2\n  ]\n}",
			expectedCalls: 1,
		},
		{
			name:        "not authenticated",
			status:      auth.StatusUnauthenticated,
			token:       "token-1",
			setupMocks:  func(*mock.MockReportFetcher) {},
			expectedErr: report.ErrNotAuthenticated,
			expectedMsg: "not authenticated",
		},
		{
			name:        "still loading",
			status:      auth.StatusLoading,
			setupMocks:  func(*mock.MockReportFetcher) {},
			expectedErr: report.ErrNotAuthenticated,
			expectedMsg: "not authenticated",
		},
		{
			name:          "no access token skips the report request",
			status:        auth.StatusAuthenticated,
			setupMocks:    func(*mock.MockReportFetcher) {},
			expectedErr:   report.ErrNoAccessToken,
			expectedMsg:   "failed to get access token",
			expectedCalls: 1,
		},
		{
			name:   "api error is surfaced",
			status: auth.StatusAuthenticated,
			token:  "token-1",
			setupMocks: func(fetcher *mock.MockReportFetcher) {
				fetcher.EXPECT().GetReport(gomock.Any(), "token-1").
					Return(nil, &api.APIError{StatusCode: 403, Message: "Access denied"})
			},
			expectedMsg:   "Access denied",
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fetcher := mock.NewMockReportFetcher(ctrl)
			tt.setupMocks(fetcher)

			state := &fakeState{status: tt.status}
			tokens := &fakeTokens{token: tt.token}
			d := &report.Downloader{State: state, Tokens: tokens, Reports: fetcher, Now: fixedNow}

			dir := t.TempDir()
			path, err := d.Download(context.Background(), dir)

			assert.Equal(t, tt.expectedCalls, tokens.calls)
			assert.Equal(t, tt.status, state.Status())

			if tt.expectedMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedMsg, err.Error())
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				entries, _ := os.ReadDir(dir)
				assert.Empty(t, entries)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "prosthesis-report-2025-03-07.json"), path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedFile, string(data))
		})
	}
}
