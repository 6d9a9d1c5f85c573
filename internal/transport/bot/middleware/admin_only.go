package middleware

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"buyback/pkg/contextx"
	"buyback/pkg/logx"
)

// AdminOnly пропускает сообщения только из чата администраторов.
// Остальные обновления молча отбрасываются.
func AdminOnly(adminChatID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		if !Allowed(update, adminChatID) {
			if update.Message != nil {
				contextx.LoggerFromContextOrDefault(ctx).Warn("bot message from foreign chat ignored",
					slog.Int64(logx.FieldChatID, update.Message.Chat.ID),
				)
			}

			return nil
		}

		return ctx.Next(update)
	}
}

// Allowed сообщает, пришло ли обновление из чата администраторов.
// Нулевой adminChatID закрывает бота для всех.
func Allowed(update telego.Update, adminChatID int64) bool {
	if adminChatID == 0 || update.Message == nil {
		return false
	}

	return update.Message.Chat.ID == adminChatID
}
