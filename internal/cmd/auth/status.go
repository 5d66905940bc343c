package auth

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/ui"
)

// StatusCmd shows whether the stored session is still valid.
type StatusCmd struct{}

// Run executes the status command
func (c *StatusCmd) Run(ctx context.Context, cfg bionicpro.ConfigStore, newSession bionicpro.SessionFactory, ui ui.Provider) error {
	session, err := newSession(cfg, bionicpro.SessionOptions{})
	if err != nil {
		return err
	}

	ui.ShowKeyValue("Auth service", session.Config.AuthServiceURL)

	info, err := session.Gateway.Session(ctx)
	if err != nil {
		pterm.Debug.Printfln("%s", err)
		ui.ShowKeyValue("Status", "unauthenticated")
		ui.NewLine()
		ui.ShowInfo("Run 'bionicpro auth login' to sign in.")
		return nil
	}

	ui.ShowKeyValue("Status", "authenticated")
	if info.User != "" {
		ui.ShowKeyValue("User", info.User)
	}
	if info.SessionID != "" {
		ui.ShowKeyValue("Session", info.SessionID)
	}
	return nil
}
