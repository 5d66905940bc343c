package auth

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/ui"
)

// LogoutCmd ends the session on the auth service and forgets the cookie.
type LogoutCmd struct{}

// Run executes the logout command
func (c *LogoutCmd) Run(ctx context.Context, cfg bionicpro.ConfigStore, newSession bionicpro.SessionFactory, ui ui.Provider) error {
	ui.Title("Signing out of BionicPRO")

	session, err := newSession(cfg, bionicpro.SessionOptions{})
	if err != nil {
		return err
	}

	if err := session.Provider.Logout(ctx); err != nil {
		pterm.Debug.Printfln("logout: %s", err)
		ui.ShowInfo("The auth service could not be reached, the local session was removed.")
	}

	ui.ShowSuccess("Successfully logged out!")
	ui.NewLine()
	return nil
}
