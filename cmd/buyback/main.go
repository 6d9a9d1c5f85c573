package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"buyback/internal/application"
	"buyback/internal/config"
	"buyback/pkg/contextx"
	"buyback/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1) //nolint:gocritic // nothing to clean up yet
	}

	log := slog.New(logx.NewHandler(os.Stdout, logx.ParseLevel(cfg.App.LogLevel), cfg.App.NoColor)).
		With(slog.String(logx.FieldAppName, cfg.App.Name))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := application.Run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}
}
