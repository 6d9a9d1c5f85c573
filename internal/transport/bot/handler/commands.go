package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/internal/domain/service/buyrequest"
	"buyback/internal/domain/value"
	"buyback/internal/transport/bot/view"
	"buyback/pkg/errcodes"
	"buyback/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnPending(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.pending(ctx))
}

func (h *Handler) OnShow(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.show(ctx, msg.Text))
}

func (h *Handler) OnApprove(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.approve(ctx, msg.Text))
}

func (h *Handler) OnReject(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.reject(ctx, msg.Text))
}

func (h *Handler) OnPaid(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.paid(ctx, msg.Text))
}

func (h *Handler) pending(ctx context.Context) string {
	status := entity.StatusPending

	page, err := h.svc.List(ctx, entity.BuyRequestFilter{Status: &status}, 1, pendingLimit)
	if err != nil {
		return describe(ctx, err)
	}

	return view.PendingList(page.Items, page.TotalCount)
}

func (h *Handler) show(ctx context.Context, text string) string {
	id, _, ok := commandArgs(text)
	if !ok {
		return fmt.Sprintf(view.MissingIDTemplate, "show")
	}

	r, err := h.svc.Get(ctx, id)
	if err != nil {
		return describe(ctx, err)
	}

	return view.RequestCard(r)
}

func (h *Handler) approve(ctx context.Context, text string) string {
	id, _, ok := commandArgs(text)
	if !ok {
		return fmt.Sprintf(view.MissingIDTemplate, "approve")
	}

	return h.transition(ctx, id, buyrequest.AdminUpdateInput{Status: statusPtr(entity.StatusApproved)})
}

// reject: всё после ID сохраняется как заметка администратора.
func (h *Handler) reject(ctx context.Context, text string) string {
	id, reason, ok := commandArgs(text)
	if !ok {
		return fmt.Sprintf(view.MissingIDTemplate, "reject")
	}

	in := buyrequest.AdminUpdateInput{Status: statusPtr(entity.StatusRejected)}
	if reason != "" {
		in.AdminNotes = value.Patch[string]{Value: reason, Set: true}
	}

	return h.transition(ctx, id, in)
}

func (h *Handler) paid(ctx context.Context, text string) string {
	id, _, ok := commandArgs(text)
	if !ok {
		return fmt.Sprintf(view.MissingIDTemplate, "paid")
	}

	r, err := h.svc.MarkAsPaid(ctx, id)
	if err != nil {
		return describe(ctx, err)
	}

	return view.Transitioned(r)
}

func (h *Handler) transition(ctx context.Context, id string, in buyrequest.AdminUpdateInput) string {
	r, err := h.svc.UpdateByAdmin(ctx, id, in)
	if err != nil {
		return describe(ctx, err)
	}

	return view.Transitioned(r)
}

// describe превращает ошибку в ответ администратору. Внутренние ошибки
// только логируются.
func describe(ctx context.Context, err error) string {
	if domain.IsNotFound(err) {
		return view.NotFound
	}

	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.ErrorClass() != errcodes.ClassInternal {
		return view.Rejected(appErr.Description())
	}

	logger(ctx).Error("bot command failed", logx.Error(err))

	return view.InternalError
}

// commandArgs разбирает "/cmd <id> [остаток]".
func commandArgs(text string) (string, string, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 { //nolint:mnd // command and id
		return "", "", false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), fields[0]))
	rest = strings.TrimSpace(strings.TrimPrefix(rest, fields[1]))

	return fields[1], rest, true
}

func statusPtr(s entity.BuyRequestStatus) *entity.BuyRequestStatus {
	return &s
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	msg := tu.Message(tu.ID(chatID), text).WithParseMode(telego.ModeHTML)

	if _, err := ctx.Bot().SendMessage(ctx, msg); err != nil {
		logger(ctx).Error("bot.SendMessage", slog.Int64(logx.FieldChatID, chatID), logx.Error(err))
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}
