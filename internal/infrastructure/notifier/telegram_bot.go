package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"buyback/pkg/logx"
)

var ErrChatNotConfigured = errors.New("admin chat id is not configured")

type messageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// NewBot создаёт клиента Bot API. Запросы идут через переданный http.Client,
// чтобы их можно было логировать.
func NewBot(token string, httpClient *http.Client) (*telego.Bot, error) {
	opts := []telego.BotOption{telego.WithLogger(botLogger{})}

	if httpClient != nil {
		opts = append(opts, telego.WithHTTPClient(httpClient))
	}

	bot, err := telego.NewBot(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return bot, nil
}

// TelegramBot отправляет сообщения в чат администраторов.
type TelegramBot struct {
	sender messageSender
	chatID int64
}

func NewTelegramBot(sender messageSender, chatID int64) *TelegramBot {
	return &TelegramBot{
		sender: sender,
		chatID: chatID,
	}
}

func (b *TelegramBot) SendHTML(ctx context.Context, text string) error {
	if b.chatID == 0 {
		return ErrChatNotConfigured
	}

	msg := tu.Message(tu.ID(b.chatID), text).
		WithParseMode(telego.ModeHTML).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true})

	if _, err := b.sender.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

type botLogger struct{}

func (botLogger) Debugf(format string, args ...any) {
	logger(context.Background()).Debug(fmt.Sprintf(format, args...))
}

func (botLogger) Errorf(format string, args ...any) {
	logger(context.Background()).Error("telego", slog.String(logx.FieldError, fmt.Sprintf(format, args...)))
}
