package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"buyback/internal/transport/bot/handler"
	"buyback/pkg/contextx"
	"buyback/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals // skip

const pollTimeoutSeconds = 60

// Bot принимает команды администратора через long polling.
type Bot struct {
	bot         *telego.Bot
	handler     *handler.Handler
	adminChatID int64
}

func New(bot *telego.Bot, commandHandler *handler.Handler, adminChatID int64) *Bot {
	return &Bot{
		bot:         bot,
		handler:     commandHandler,
		adminChatID: adminChatID,
	}
}

// Run блокируется до отмены ctx. Long polling останавливается вместе с ctx.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout:        pollTimeoutSeconds,
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminChatID)

	go func() {
		<-ctx.Done()

		if err := botHandler.Stop(); err != nil {
			logger(ctx).Error("botHandler.Stop", logx.Error(err))
		}
	}()

	logger(ctx).Info("admin bot started")

	if err := botHandler.Start(); err != nil {
		return fmt.Errorf("botHandler.Start: %w", err)
	}

	logger(ctx).Info("admin bot stopped")

	return nil
}
