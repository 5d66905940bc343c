package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/cmd"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/trace"
)

func main() {
	// ensure the pterm info width matches the other printers
	pterm.Info.Prefix.Text = " INFO  "
	cmd.HandleErr(run())
}

func run() error {
	ctx, cancel := cliContext()
	defer cancel()

	shutdowns, err := trace.Init(ctx, "cli")
	if err != nil {
		pterm.Debug.Printfln("tracing: %s", err)
	}
	defer func() {
		for _, shutdown := range shutdowns {
			shutdown()
		}
	}()

	var root cmd.Cmd
	parser, err := kong.New(
		&root,
		kong.Name("bionicpro"),
		kong.Description("Sign in to BionicPRO and download prosthesis usage reports."),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	parsed, err := parser.Parse(os.Args[1:])
	if err != nil {
		return err
	}
	parsed.BindToProvider(bindCtx(ctx))
	if err := parsed.Run(); err != nil {
		return trace.CaptureError(ctx, err)
	}
	return nil
}

// get a context that listens for interrupt/shutdown signals.
func cliContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	// listen for shutdown signals
	go func() {
		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
		<-signalCh

		cancel()
	}()
	return ctx, cancel
}

// bindCtx exists to allow kong to correctly inject a context.Context into the Run methods on the commands.
func bindCtx(ctx context.Context) func() (context.Context, error) {
	return func() (context.Context, error) {
		return ctx, nil
	}
}
