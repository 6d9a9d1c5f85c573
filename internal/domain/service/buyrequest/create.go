package buyrequest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rs/xid"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/pkg/errcodes"
	"buyback/pkg/logx"
)

// Create оформляет заявку по активной позиции прайса. Данные устройства
// копируются из прайса и дальше от него не зависят.
func (s *Service) Create(ctx context.Context, in CreateInput) (entity.BuyRequest, error) {
	modelPrice, err := s.catalog.FindActiveByID(ctx, in.ModelPriceID)
	if err != nil {
		return entity.BuyRequest{}, fmt.Errorf("catalog.FindActiveByID: %w", err)
	}

	if modelPrice == nil {
		return entity.BuyRequest{}, domain.NewNotFoundError(errcodes.ModelPriceNotFound,
			"model price not found or not active")
	}

	imeiSerial, err := validateImeiSerial(modelPrice.Category, in.ImeiSerial)
	if err != nil {
		return entity.BuyRequest{}, err
	}

	if err := validatePhotoURLs(in.PhotoURLs); err != nil {
		return entity.BuyRequest{}, err
	}

	now := s.clock.Now().UTC()
	snapshot := modelPrice.Clone()

	r := entity.BuyRequest{
		ID:             xid.New().String(),
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		CustomerEmail:  normalizeEmail(in.CustomerEmail),
		ModelPriceID:   modelPrice.ID,
		DeviceCategory: modelPrice.Category,
		ModelCode:      modelPrice.ModelCode,
		ModelName:      modelPrice.ModelName,
		StorageGB:      snapshot.StorageGB,
		Color:          snapshot.Color,
		BuyPrice:       modelPrice.BuyPrice,
		Currency:       modelPrice.Currency,
		Notes:          in.Notes,
		ImeiSerial:     imeiSerial,
		HasReceipt:     in.HasReceipt,
		PhotoURLs:      in.PhotoURLs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if r.PhotoURLs == nil {
		r.PhotoURLs = []string{}
	}

	r.AppendStatus(entity.StatusPending, now, "")

	if err := s.repo.Insert(ctx, &r); err != nil {
		return entity.BuyRequest{}, fmt.Errorf("repo.Insert: %w", err)
	}

	logger(ctx).Info("buy request created",
		slog.String(logx.FieldBuyRequestID, r.ID),
		slog.String(logx.FieldModelPriceID, r.ModelPriceID),
		slog.String(logx.FieldUserEmail, r.CustomerEmail),
	)

	s.metrics.RequestCreated(r.DeviceCategory)
	s.publish(ctx, entity.NewLifecycleEvent(entity.EventCreated, r, "", now))

	return entity.Normalize(r), nil
}
