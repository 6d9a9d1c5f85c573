package entity

import (
	"slices"
	"time"
)

type DeviceCategory string

const (
	CategoryIPhone DeviceCategory = "iphone"
	CategoryPS5    DeviceCategory = "ps5"
	CategorySwitch DeviceCategory = "switch"
)

const DefaultCurrency = "KRW"

func (c DeviceCategory) String() string {
	return string(c)
}

func (c DeviceCategory) IsValid() bool {
	return slices.Contains([]DeviceCategory{CategoryIPhone, CategoryPS5, CategorySwitch}, c)
}

// ModelPrice описывает позицию прайс-листа.
type ModelPrice struct {
	ID        string
	Category  DeviceCategory
	ModelCode string
	ModelName string
	StorageGB *int
	Color     *string
	BuyPrice  int64
	Currency  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone возвращает копию, не разделяющую с исходной указатели StorageGB и Color.
func (mp ModelPrice) Clone() ModelPrice {
	mp.StorageGB = clonePtr(mp.StorageGB)
	mp.Color = clonePtr(mp.Color)

	return mp
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

type ModelPriceFilter struct {
	ActiveOnly bool
	Category   *DeviceCategory
}
