package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/promogpt/promoctl/internal/buildinfo"
	"github.com/promogpt/promoctl/internal/client/cli"
	"github.com/promogpt/promoctl/internal/client/config"
	"github.com/promogpt/promoctl/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
