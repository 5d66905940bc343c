// Package report downloads the usage report of the signed-in user.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/trace"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoAccessToken    = errors.New("failed to get access token")
)

// ReportFetcher retrieves the raw report. *api.Client implements it.
type ReportFetcher interface {
	GetReport(ctx context.Context, accessToken string) (json.RawMessage, error)
}

// Downloader fetches the report with a fresh access token and saves it to disk.
type Downloader struct {
	State   auth.StateReader
	Tokens  auth.TokenSource
	Reports ReportFetcher
	Now     func() time.Time
}

// FileName returns the report file name for the given day.
func FileName(t time.Time) string {
	return fmt.Sprintf("prosthesis-report-%s.json", t.UTC().Format(time.DateOnly))
}

// Download writes the report into dir and returns the file path.
// Failures never touch the authentication state.
func (d *Downloader) Download(ctx context.Context, dir string) (string, error) {
	ctx, span := trace.NewSpan(ctx, "report.Download")
	defer span.End()

	if !d.State.Authenticated() {
		return "", ErrNotAuthenticated
	}

	token, ok := d.Tokens.AccessToken(ctx)
	if !ok {
		return "", trace.SpanError(span, ErrNoAccessToken)
	}

	raw, err := d.Reports.GetReport(ctx, token)
	if err != nil {
		return "", trace.SpanError(span, err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return "", trace.SpanError(span, fmt.Errorf("failed to format report: %w", err))
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", trace.SpanError(span, fmt.Errorf("failed to create output directory: %w", err))
	}

	path := filepath.Join(dir, FileName(now()))
	if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
		return "", trace.SpanError(span, fmt.Errorf("failed to write report: %w", err))
	}

	return path, nil
}
