package persistence

import (
	"time"

	"buyback/internal/domain/entity"
)

type modelPriceSchema struct {
	ID        string    `db:"id"`
	Category  string    `db:"category"`
	ModelCode string    `db:"model_code"`
	ModelName string    `db:"model_name"`
	StorageGB *int      `db:"storage_gb"`
	Color     *string   `db:"color"`
	BuyPrice  int64     `db:"buy_price"`
	Currency  string    `db:"currency"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func fromModelPrice(mp *entity.ModelPrice) modelPriceSchema {
	return modelPriceSchema{
		ID:        mp.ID,
		Category:  string(mp.Category),
		ModelCode: mp.ModelCode,
		ModelName: mp.ModelName,
		StorageGB: mp.StorageGB,
		Color:     mp.Color,
		BuyPrice:  mp.BuyPrice,
		Currency:  mp.Currency,
		IsActive:  mp.IsActive,
		CreatedAt: mp.CreatedAt,
		UpdatedAt: mp.UpdatedAt,
	}
}

func (s *modelPriceSchema) toDomain() entity.ModelPrice {
	return entity.ModelPrice{
		ID:        s.ID,
		Category:  entity.DeviceCategory(s.Category),
		ModelCode: s.ModelCode,
		ModelName: s.ModelName,
		StorageGB: s.StorageGB,
		Color:     s.Color,
		BuyPrice:  s.BuyPrice,
		Currency:  s.Currency,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
	}
}
