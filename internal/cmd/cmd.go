package cmd

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/cmd/app"
	authcmd "github.com/PisklovCor/architecture-pro-bionicpro/internal/cmd/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/cmd/report"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/cmd/version"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/trace"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/ui"
)

// Help messages to display for specific error situations.
const (
	// helpExchange is displayed if auth.ErrExchangeFailed is ever returned
	helpExchange = `The authorization code could not be exchanged for a session.
Authorization codes are single use and expire quickly. Run 'bionicpro auth login' again.`

	// helpVerifier is displayed if auth.ErrVerifierMissing is ever returned
	helpVerifier = `No login is pending for this callback.
The pending login may have expired, or it was started on another machine or by another user.
Run 'bionicpro auth login --manual' again and paste the new redirect address.`

	// helpCrypto is displayed if auth.ErrCryptoUnavailable is ever returned
	helpCrypto = `The system random number generator is unavailable, so no secure login can be started.`
)

// HandleErr prints err with a remediation hint and exits.
func HandleErr(err error) {
	if err == nil {
		return
	}

	pterm.Error.Println(err)

	var errParse *kong.ParseError
	if errors.As(err, &errParse) {
		_ = kong.DefaultHelpPrinter(kong.HelpOptions{}, errParse.Context)
	}

	switch {
	case errors.Is(err, auth.ErrExchangeFailed):
		pterm.Println()
		pterm.Info.Println(helpExchange)
	case errors.Is(err, auth.ErrVerifierMissing):
		pterm.Println()
		pterm.Info.Println(helpVerifier)
	case errors.Is(err, auth.ErrCryptoUnavailable):
		pterm.Println()
		pterm.Info.Println(helpCrypto)
	}

	os.Exit(1)
}

type verbose bool

func (v verbose) BeforeApply() error {
	pterm.EnableDebugMessages()
	return nil
}

// Cmd is the bionicpro root command.
type Cmd struct {
	Auth    authcmd.Cmd `cmd:"" help:"Sign in to BionicPRO and manage the session."`
	Report  report.Cmd  `cmd:"" help:"Work with prosthesis usage reports."`
	App     app.Cmd     `cmd:"" help:"Open the interactive reports screen."`
	Version version.Cmd `cmd:"" help:"Display version information."`
	Verbose verbose     `short:"v" help:"Enable verbose output."`
}

func (c *Cmd) BeforeApply(kCtx *kong.Context) error {
	if trace.DNT() {
		pterm.Debug.Println("Error reporting disabled (DO_NOT_TRACK)")
	}
	kCtx.BindTo(&bionicpro.FileConfigStore{}, (*bionicpro.ConfigStore)(nil))
	kCtx.BindTo(bionicpro.SessionFactory(bionicpro.NewSession), (*bionicpro.SessionFactory)(nil))
	kCtx.BindTo(ui.New(), (*ui.Provider)(nil))
	return nil
}
