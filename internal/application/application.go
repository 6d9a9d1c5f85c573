package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"buyback/internal/config"
	"buyback/internal/domain/service/buyrequest"
	"buyback/internal/domain/service/catalog"
	"buyback/internal/infrastructure/notifier"
	"buyback/internal/infrastructure/persistence"
	"buyback/internal/infrastructure/queue"
	"buyback/internal/infrastructure/shipping"
	"buyback/internal/infrastructure/telemetry"
	"buyback/internal/server"
	"buyback/internal/transport/bot"
	"buyback/internal/transport/bot/handler"
	"buyback/internal/worker"
	"buyback/pkg/application/modules"
	"buyback/pkg/contextx"
	"buyback/pkg/httpx"
	"buyback/pkg/logx"
	"buyback/pkg/probe"
	"buyback/pkg/ratelimit"
)

const telegramTimeout = 30 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals // skip

// Run поднимает HTTP API, пробы, метрики, обработчик очереди и бота
// и блокируется до отмены ctx или падения одного из модулей.
func Run(ctx context.Context, cfg config.Config) error { //nolint:funlen
	logger(ctx).Info("application starting",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)

	pg := cfg.Postgres.Connector()
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rds := cfg.Redis.Connector()
	redisClient := rds.Client(ctx)
	defer rds.Close(ctx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	recorder, err := telemetry.NewRecorder(registry)
	if err != nil {
		return fmt.Errorf("telemetry.NewRecorder: %w", err)
	}

	catalogService := catalog.NewService(persistence.NewModelPriceRepository(db), cfg.Catalog.CacheTTL)
	buyRequestService := buyrequest.NewService(
		persistence.NewBuyRequestRepository(db),
		catalogService,
		shipping.NewEnvSource(),
	).WithMetrics(recorder)

	asynqServer := cfg.Redis.AsynqServer(cfg.Worker)

	g, ctx := errgroup.WithContext(ctx)

	var handlers []modules.AsynqHandler

	if cfg.Bot.Token != "" {
		telegram, err := notifier.NewBot(cfg.Bot.Token, telegramHTTPClient(cfg.HTTP.LogFieldMaxLen))
		if err != nil {
			return fmt.Errorf("notifier.NewBot: %w", err)
		}

		asynqClient := asynq.NewClient(asynqServer.RedisClientOpt())
		defer closeAsynqClient(ctx, asynqClient)

		buyRequestService.WithPublisher(queue.NewPublisher(asynqClient))

		notifications := worker.NewNotifications(notifier.NewTelegramBot(telegram, cfg.Bot.AdminChatID))
		handlers = append(handlers, modules.AsynqHandler{Pattern: queue.TypeBuyRequestEvent, Handle: notifications.Handle})

		if cfg.Bot.Enabled {
			adminBot := bot.New(telegram, handler.New(buyRequestService), cfg.Bot.AdminChatID)

			g.Go(func() error {
				if err := adminBot.Run(ctx); err != nil {
					return fmt.Errorf("adminBot.Run: %w", err)
				}

				return nil
			})
		}
	} else {
		logger(ctx).Warn("bot token is not set, admin notifications disabled")
	}

	if len(handlers) > 0 {
		asynqServer.Run(ctx, g, modules.AsynqQueues{queue.QueueNotifications: 1}, handlers...)
	}

	httpServer := server.NewServer(
		server.NewBuyRequestServer(buyRequestService),
		server.NewModelPriceServer(catalogService),
		server.Options{
			AdminToken:      cfg.HTTP.AdminToken,
			UserEmailHeader: cfg.HTTP.UserEmailHeader,
			LogFieldMaxLen:  cfg.HTTP.LogFieldMaxLen,
			CreateLimiter:   ratelimit.NewFixedWindow(redisClient, "throttle:create", cfg.Throttle.Limit, cfg.Throttle.TTL),
			AdminLimiter:    ratelimit.NewFixedWindow(redisClient, "throttle:admin-list", cfg.Throttle.AdminListLimit, cfg.Throttle.TTL),
		},
	)

	modules.HTTPServer{
		ListenAddress:   cfg.HTTP.ListenAddress,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, httpServer.Handler())

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		CheckTimeout:  cfg.Probe.CheckTimeout,
		Checks: map[string]probe.Check{
			"postgres": pg.Ping,
			"redis":    rds.Ping,
		},
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
		Gatherer:      registry,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	logger(ctx).Info("application stopped")

	return nil
}

// telegramHTTPClient логирует запросы к Bot API, токен в URL маскируется.
func telegramHTTPClient(logFieldMaxLen int) *http.Client {
	return &http.Client{
		Timeout: telegramTimeout,
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(logFieldMaxLen),
		),
	}
}

func closeAsynqClient(ctx context.Context, client *asynq.Client) {
	if err := client.Close(); err != nil {
		logger(ctx).Error("asynqClient.Close", logx.Error(err))
	}
}
