package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"buyback/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminChatID int64) {
	admin := bh.Group(th.AnyMessage())
	admin.Use(middleware.AdminOnly(adminChatID))

	admin.HandleMessage(h.OnStart, th.CommandEqual("start"))
	admin.HandleMessage(h.OnPending, th.CommandEqual("pending"))
	admin.HandleMessage(h.OnShow, th.CommandEqual("show"))
	admin.HandleMessage(h.OnApprove, th.CommandEqual("approve"))
	admin.HandleMessage(h.OnReject, th.CommandEqual("reject"))
	admin.HandleMessage(h.OnPaid, th.CommandEqual("paid"))
}
