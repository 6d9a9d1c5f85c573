// Command migrate-legacy переводит записи со статусом "completed" на "paid"
// и заполняет approvedAt, paidAt и cancelledAt по истории статусов.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	"buyback/internal/config"
	"buyback/internal/domain/service/migration"
	"buyback/internal/infrastructure/persistence"
	"buyback/pkg/contextx"
	"buyback/pkg/logx"
)

func main() {
	var opts migration.Options

	flag.BoolVar(&opts.RewriteStatuses, "rewrite-statuses", true, `rewrite "completed" to "paid" in status and history`)
	flag.BoolVar(&opts.BackfillTimestamps, "backfill", true, "fill approvedAt/paidAt/cancelledAt from status history")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "report changes without writing them")
	flag.IntVar(&opts.BatchSize, "batch", migration.DefaultBatchSize, "records per transaction")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		slog.Error("migrate-legacy failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic // cancel is only a signal stop
	}
}

func run(ctx context.Context, opts migration.Options) error {
	cfg, err := config.LoadMigrate()
	if err != nil {
		return fmt.Errorf("config.LoadMigrate: %w", err)
	}

	log := slog.New(logx.NewHandler(os.Stderr, logx.ParseLevel(cfg.App.LogLevel), cfg.App.NoColor))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	pg := cfg.Postgres.Connector()
	defer pg.Close(ctx)

	report, err := migration.NewMigrator(persistence.NewBuyRequestRepository(pg.Client(ctx))).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("migrator.Run: %w", err)
	}

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	fmt.Println(string(out)) //nolint:forbidigo // the report is the command output

	return nil
}
