package handler

import (
	"context"

	"buyback/internal/domain/entity"
	"buyback/internal/domain/service/buyrequest"
	"buyback/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals // skip

// pendingLimit ограничивает длину списка /pending одним сообщением.
const pendingLimit = 20

type buyRequestService interface {
	Get(ctx context.Context, id string) (entity.BuyRequest, error)
	List(ctx context.Context, filter entity.BuyRequestFilter, page, limit int) (entity.Page[entity.BuyRequest], error)
	UpdateByAdmin(ctx context.Context, id string, in buyrequest.AdminUpdateInput) (entity.BuyRequest, error)
	MarkAsPaid(ctx context.Context, id string) (entity.BuyRequest, error)
}

// Handler обрабатывает команды администратора. Все переходы статусов идут
// через тот же сервис, что и HTTP API.
type Handler struct {
	svc buyRequestService
}

func New(svc buyRequestService) *Handler {
	return &Handler{
		svc: svc,
	}
}
