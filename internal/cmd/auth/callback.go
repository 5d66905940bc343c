package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/ui"
)

// CallbackCmd finishes a login started with --manual.
type CallbackCmd struct {
	URL string `arg:"" help:"The address the browser was redirected to after sign-in."`
}

// Run executes the callback command
func (c *CallbackCmd) Run(ctx context.Context, cfg bionicpro.ConfigStore, newSession bionicpro.SessionFactory, ui ui.Provider) error {
	location, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid callback address: %w", err)
	}

	session, err := newSession(cfg, bionicpro.SessionOptions{PersistVerifier: true})
	if err != nil {
		return err
	}

	out, err := session.Provider.HandleCallback(ctx, location)
	if err != nil {
		return err
	}
	if out.Result != auth.CallbackAuthenticated {
		return errors.New("the address has no authorization code, copy it from the browser after signing in")
	}

	ui.ShowSuccess("Successfully signed in!")
	return nil
}
