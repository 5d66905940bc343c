package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/ui"
)

// LoginCmd runs the authorization code flow with PKCE.
type LoginCmd struct {
	Manual  bool          `help:"Print the sign-in address instead of opening a browser and serving the callback."`
	Timeout time.Duration `default:"5m" help:"How long to wait for the browser to return."`
}

// Run executes the login command
func (c *LoginCmd) Run(ctx context.Context, cfg bionicpro.ConfigStore, newSession bionicpro.SessionFactory, ui ui.Provider) error {
	ui.Title("Signing in to BionicPRO")

	if c.Manual {
		return c.runManual(ctx, cfg, newSession, ui)
	}

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
	pterm.Debug.Printfln("serving %s", session.Config.RedirectURI())

	if err := session.Provider.Login(ctx); err != nil {
		return err
	}

	err = ui.RunWithSpinner("Waiting for authentication in the browser...", func() error {
		_, err := server.WaitForCallback(ctx, c.Timeout)
		return err
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	ui.ShowSuccess("Successfully signed in!")
	ui.NewLine()
	return nil
}

func (c *LoginCmd) runManual(ctx context.Context, cfg bionicpro.ConfigStore, newSession bionicpro.SessionFactory, ui ui.Provider) error {
	session, err := newSession(cfg, bionicpro.SessionOptions{
		PersistVerifier: true,
		Navigator:       auth.PrintNavigator{},
	})
	if err != nil {
		return err
	}

	if err := session.Provider.Login(ctx); err != nil {
		return err
	}

	ui.NewLine()
	ui.ShowInfo("After signing in, copy the address your browser was sent to and run:")
	ui.ShowInfo("  bionicpro auth callback '<address>'")
	ui.NewLine()
	return nil
}
