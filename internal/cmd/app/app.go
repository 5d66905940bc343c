package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/app"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro"
)

// Cmd opens the interactive reports screen.
type Cmd struct {
	Output string `short:"o" default:"." type:"path" help:"Directory downloaded reports are written to."`

	// programOptions are appended to the bubbletea options, tests use them to drop the terminal.
	programOptions []tea.ProgramOption `kong:"-"`
}

// Run executes the app command
func (c *Cmd) Run(ctx context.Context, cfg bionicpro.ConfigStore, newSession bionicpro.SessionFactory) error {
	session, err := newSession(cfg, bionicpro.SessionOptions{})
	if err != nil {
		return err
	}

	server := auth.NewLoopbackServer(session.Provider)
	if err := server.Listen(session.Config.CallbackPort); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			pterm.Debug.Printfln("failed to stop callback server: %s", err)
		}
	}()

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, c.programOptions...)
	return app.Run(ctx, session.Provider, session.Downloader(), c.Output, opts...)
}
