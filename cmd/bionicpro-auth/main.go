package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/authsvc"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/build"
)

type cli struct {
	EnvFile string `name:"env-file" default:".env" help:"Read AUTH_* variables from this file when it exists."`
	Version bool   `help:"Print the version and exit."`
}

func (c *cli) Run(ctx context.Context) error {
	if c.Version {
		pterm.Println(build.Version)
		return nil
	}

	if err := godotenv.Load(c.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg, err := authsvc.LoadConfig()
	if err != nil {
		return err
	}

	logger, closer := authsvc.NewLogger(cfg, os.Stderr)
	defer closer.Close()

	srv, err := authsvc.NewServer(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var c cli
	parsed := kong.Parse(&c,
		kong.Name("bionicpro-auth"),
		kong.Description("BionicPRO auth service."),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err := parsed.Run(); err != nil {
		pterm.Error.Println(err)
		stop()
		os.Exit(1)
	}
}
