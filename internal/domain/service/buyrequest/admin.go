package buyrequest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/pkg/errcodes"
	"buyback/pkg/logx"
)

func (s *Service) Get(ctx context.Context, id string) (entity.BuyRequest, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.GetByID: %w", err)
	}

	return entity.Normalize(*r), nil
}

// UpdateByAdmin меняет статус и служебные поля. Повторная установка текущего
// статуса историю не дописывает.
func (s *Service) UpdateByAdmin(ctx context.Context, id string, in AdminUpdateInput) (entity.BuyRequest, error) {
	if in.Status != nil && !in.Status.IsValid() {
		return entity.BuyRequest{}, domain.NewInvalidInputError(errcodes.InvalidStatus,
			fmt.Sprintf("unknown status %q", *in.Status))
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.GetByID: %w", err)
	}

	now := s.transitionTime(r)

	changed := in.Status != nil && *in.Status != r.Status.Normalized()
	if changed {
		s.applyAdminTransition(ctx, r, *in.Status, now)
	}

	in.AdminNotes.Apply(&r.AdminNotes)
	in.FinalPrice.Apply(&r.FinalPrice)

	r.UpdatedAt = now

	if err := s.repo.Update(ctx, r); err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.Update: %w", err)
	}

	if changed {
		logger(ctx).Info("buy request status changed",
			slog.String(logx.FieldBuyRequestID, r.ID),
			slog.String(logx.FieldStatus, r.Status.String()),
			slog.String(logx.FieldActor, entity.ActorAdmin),
		)

		s.metrics.StatusChanged(r.Status, entity.ActorAdmin)
		s.publish(ctx, entity.NewLifecycleEvent(entity.EventStatusChanged, *r, entity.ActorAdmin, now))
	}

	return entity.Normalize(*r), nil
}

func (s *Service) applyAdminTransition(
	ctx context.Context,
	r *entity.BuyRequest,
	status entity.BuyRequestStatus,
	now time.Time,
) {
	r.AppendStatus(status, now, entity.ActorAdmin)

	switch status {
	case entity.StatusApproved:
		if !entity.SetOnce(&r.ApprovedAt, now) {
			return
		}

		entity.SetOnce(&r.ApprovedBy, entity.ActorAdmin)

		s.captureShippingInfo(ctx, r)
	case entity.StatusPaid:
		entity.SetOnce(&r.PaidAt, now)
	case entity.StatusCancelled:
		if entity.SetOnce(&r.CancelledAt, now) {
			entity.SetOnce(&r.CancelledBy, entity.ActorAdmin)
		}
	}
}

// captureShippingInfo сохраняет адрес приёма на момент одобрения.
// Уже сохранённый снимок не перезаписывается.
func (s *Service) captureShippingInfo(ctx context.Context, r *entity.BuyRequest) {
	if r.ShippingInfo != nil {
		return
	}

	info := s.shipping.CurrentShippingInfo(ctx)
	if info == nil {
		logger(ctx).Warn("shipping info is not configured, snapshot skipped",
			slog.String(logx.FieldBuyRequestID, r.ID),
		)
		return
	}

	snapshot := *info
	r.ShippingInfo = &snapshot

	logger(ctx).Info("shipping info snapshot stored",
		slog.String(logx.FieldBuyRequestID, r.ID),
	)
}

// MarkAsPaid отмечает оплату одобренной заявки, когда клиент прислал реквизиты и данные отправки.
func (s *Service) MarkAsPaid(ctx context.Context, id string) (entity.BuyRequest, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.GetByID: %w", err)
	}

	if r.Status.Normalized() != entity.StatusApproved {
		return entity.BuyRequest{}, domain.NewInvalidStateError(errcodes.InvalidStatusForAction,
			"only approved requests can be marked as paid")
	}

	if !r.HasBankInfo() || !r.HasCompleteShipping() {
		return entity.BuyRequest{}, domain.NewInvalidStateError(errcodes.PaymentInfoIncomplete,
			"bank and shipping information must be submitted before payment")
	}

	now := s.transitionTime(r)

	entity.SetOnce(&r.PaidAt, now)
	r.AppendStatus(entity.StatusPaid, now, entity.ActorAdmin)
	r.UpdatedAt = now

	if err := s.repo.Update(ctx, r); err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.Update: %w", err)
	}

	logger(ctx).Info("buy request marked as paid",
		slog.String(logx.FieldBuyRequestID, r.ID),
	)

	s.metrics.StatusChanged(entity.StatusPaid, entity.ActorAdmin)
	s.publish(ctx, entity.NewLifecycleEvent(entity.EventStatusChanged, *r, entity.ActorAdmin, now))

	return entity.Normalize(*r), nil
}

// DeleteByAdmin удаляет заявку в любом статусе.
func (s *Service) DeleteByAdmin(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("repo.Delete: %w", err)
	}

	logger(ctx).Info("buy request deleted",
		slog.String(logx.FieldBuyRequestID, id),
		slog.String(logx.FieldActor, entity.ActorAdmin),
	)

	return nil
}

// List отдаёт страницу заявок, page считается с единицы.
func (s *Service) List(
	ctx context.Context,
	filter entity.BuyRequestFilter,
	page, limit int,
) (entity.Page[entity.BuyRequest], error) {
	if page < 1 || limit < 1 {
		return entity.Page[entity.BuyRequest]{}, domain.NewInvalidInputError(errcodes.InvalidPaging,
			"page and limit must be positive")
	}

	items, err := s.repo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return entity.Page[entity.BuyRequest]{}, fmt.Errorf("repo.List: %w", err)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return entity.Page[entity.BuyRequest]{}, fmt.Errorf("repo.Count: %w", err)
	}

	normalized := make([]entity.BuyRequest, 0, len(items))
	for _, item := range items {
		normalized = append(normalized, entity.Normalize(item))
	}

	return entity.NewPage(normalized, total, page, limit), nil
}
