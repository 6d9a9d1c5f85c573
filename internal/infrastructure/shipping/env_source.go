package shipping

import (
	"context"

	"buyback/internal/config"
	"buyback/internal/domain/entity"
	"buyback/pkg/contextx"
	"buyback/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals // skip

// EnvSource читает адрес приёма из переменных SHIP_TO_*.
type EnvSource struct {
	load func() (config.Shipping, error)
}

func NewEnvSource() EnvSource {
	return EnvSource{load: config.LoadShipping}
}

// CurrentShippingInfo возвращает nil, если не заданы получатель, телефон или адрес.
func (s EnvSource) CurrentShippingInfo(ctx context.Context) *entity.ShippingInfo {
	cfg, err := s.load()
	if err != nil {
		logger(ctx).Error("config.LoadShipping", logx.Error(err))
		return nil
	}

	info := entity.ShippingInfo{
		RecipientName: cfg.RecipientName,
		Phone:         cfg.Phone,
		PostalCode:    cfg.PostalCode,
		Address1:      cfg.Address1,
		Address2:      cfg.Address2,
		Note:          cfg.Note,
	}

	if !info.IsComplete() {
		return nil
	}

	return &info
}
