package report

import (
	"context"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/trace"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/ui"
)

// DownloadCmd saves the report as JSON.
type DownloadCmd struct {
	Output string `short:"o" default:"." type:"path" help:"Directory the report is written to."`
}

// Run executes the download command
func (c *DownloadCmd) Run(ctx context.Context, cfg bionicpro.ConfigStore, newSession bionicpro.SessionFactory, ui ui.Provider) error {
	ctx, span := trace.NewSpan(ctx, "report download")
	defer span.End()

	session, err := newSession(cfg, bionicpro.SessionOptions{})
	if err != nil {
		return err
	}

	if session.Provider.Start(ctx) != auth.StatusAuthenticated {
		return bionicpro.NewLoginError("not authenticated")
	}

	var path string
	err = ui.RunWithSpinner("Generating Report...", func() error {
		var err error
		path, err = session.Downloader().Download(ctx, c.Output)
		return err
	})
	if err != nil {
		return trace.SpanError(span, err)
	}

	ui.ShowSuccess("Report saved to " + path)
	return nil
}
