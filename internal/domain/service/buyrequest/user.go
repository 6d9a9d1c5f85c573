package buyrequest

import (
	"context"
	"fmt"
	"log/slog"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/pkg/errcodes"
	"buyback/pkg/logx"
)

func (s *Service) ListByOwner(ctx context.Context, ownerEmail string, page, limit int) (entity.Page[entity.BuyRequest], error) {
	return s.List(ctx, entity.BuyRequestFilter{OwnerEmail: normalizeEmail(ownerEmail)}, page, limit)
}

// UpdateByUser принимает от клиента реквизиты и данные отправки.
// Доступно только для одобренной заявки, история статусов не меняется.
func (s *Service) UpdateByUser(
	ctx context.Context,
	id, ownerEmail string,
	in UserUpdateInput,
) (entity.BuyRequest, error) {
	if err := in.Validate(); err != nil {
		return entity.BuyRequest{}, err
	}

	r, err := s.repo.GetByIDAndOwner(ctx, id, normalizeEmail(ownerEmail))
	if err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.GetByIDAndOwner: %w", err)
	}

	if r.Status.Normalized() != entity.StatusApproved {
		return entity.BuyRequest{}, domain.NewForbiddenError(errcodes.RequestNotEditable,
			"only approved requests can be updated")
	}

	now := s.clock.Now().UTC()

	setIfPresent(&r.BankName, in.BankName)
	setIfPresent(&r.BankAccount, in.BankAccount)
	setIfPresent(&r.BankHolder, in.BankHolder)
	setIfPresent(&r.ShippingMethod, in.ShippingMethod)
	setIfPresent(&r.ShippingTrackingCode, in.ShippingTrackingCode)
	setIfPresent(&r.ShippingTrackingURL, in.ShippingTrackingURL)

	if in.hasShipping() {
		r.ShippingSubmittedAt = &now
	}

	r.UpdatedAt = now

	if err := s.repo.Update(ctx, r); err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.Update: %w", err)
	}

	return entity.Normalize(*r), nil
}

// CancelByUser отменяет заявку клиента в статусе pending или approved.
func (s *Service) CancelByUser(ctx context.Context, ownerEmail, id string) (entity.BuyRequest, error) {
	email := normalizeEmail(ownerEmail)

	r, err := s.repo.GetByIDAndOwner(ctx, id, email)
	if err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.GetByIDAndOwner: %w", err)
	}

	current := entity.Normalize(*r)

	if !current.Status.In(entity.StatusPending, entity.StatusApproved) {
		return entity.BuyRequest{}, domain.NewInvalidStateError(errcodes.InvalidStatusForAction,
			"request cannot be cancelled in its current status")
	}

	// Не должно случаться: оплата переводит заявку в paid.
	if current.Status == entity.StatusApproved && current.StatusHistory.Contains(entity.StatusPaid) {
		return entity.BuyRequest{}, domain.NewInvalidStateError(errcodes.AlreadyPaid,
			"paid requests cannot be cancelled")
	}

	now := s.transitionTime(r)

	entity.SetOnce(&r.CancelledAt, now)
	entity.SetOnce(&r.CancelledBy, entity.ActorUser)
	r.AppendStatus(entity.StatusCancelled, now, entity.ActorUser)
	r.UpdatedAt = now

	if err := s.repo.Update(ctx, r); err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.Update: %w", err)
	}

	logger(ctx).Info("buy request cancelled by user",
		slog.String(logx.FieldBuyRequestID, r.ID),
		slog.String(logx.FieldUserEmail, email),
	)

	s.metrics.StatusChanged(entity.StatusCancelled, entity.ActorUser)
	s.publish(ctx, entity.NewLifecycleEvent(entity.EventCancelledByUser, *r, entity.ActorUser, now))

	return entity.Normalize(*r), nil
}

// DeleteByUser удаляет неактивную заявку владельца.
func (s *Service) DeleteByUser(ctx context.Context, ownerEmail, id string) error {
	r, err := s.repo.GetByIDAndOwner(ctx, id, normalizeEmail(ownerEmail))
	if err != nil {
		return fmt.Errorf("repo.GetByIDAndOwner: %w", err)
	}

	if !r.Status.Normalized().In(entity.StatusPending, entity.StatusRejected, entity.StatusCancelled) {
		return domain.NewInvalidStateError(errcodes.InvalidStatusForAction,
			"request cannot be deleted in its current status")
	}

	if err := s.repo.Delete(ctx, r.ID); err != nil {
		return fmt.Errorf("repo.Delete: %w", err)
	}

	logger(ctx).Info("buy request deleted",
		slog.String(logx.FieldBuyRequestID, r.ID),
		slog.String(logx.FieldActor, entity.ActorUser),
	)

	return nil
}

func setIfPresent(dst **string, v *string) {
	if v != nil {
		value := *v
		*dst = &value
	}
}
