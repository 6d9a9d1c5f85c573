// Package rest описывает модели HTTP API /v1.
package rest

import "time"

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке
	Message string `json:"message"`

	// SupportID Идентификатор запроса для обращения в поддержку
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string

type Success struct {
	Success bool `json:"success"`
}

type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy *string   `json:"changedBy,omitempty"`
}

type ShippingInfo struct {
	RecipientName string  `json:"recipientName"`
	Phone         string  `json:"phone"`
	PostalCode    *string `json:"postalCode,omitempty"`
	Address1      string  `json:"address1"`
	Address2      *string `json:"address2,omitempty"`
	Note          *string `json:"note,omitempty"`
}

type BuyRequest struct {
	ID string `json:"id"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`

	ModelPriceID   string  `json:"modelPriceId"`
	DeviceCategory string  `json:"deviceCategory"`
	ModelCode      string  `json:"modelCode"`
	ModelName      string  `json:"modelName"`
	StorageGB      *int    `json:"storageGb,omitempty"`
	Color          *string `json:"color,omitempty"`
	BuyPrice       int64   `json:"buyPrice"`
	Currency       string  `json:"currency"`

	Status        string               `json:"status"`
	StatusHistory []StatusHistoryEntry `json:"statusHistory"`

	Notes      *string `json:"notes,omitempty"`
	AdminNotes *string `json:"adminNotes,omitempty"`
	FinalPrice *int64  `json:"finalPrice,omitempty"`

	ImeiSerial *string  `json:"imeiSerial,omitempty"`
	HasReceipt bool     `json:"hasReceipt"`
	PhotoURLs  []string `json:"photoUrls"`

	BankName    *string `json:"bankName,omitempty"`
	BankAccount *string `json:"bankAccount,omitempty"`
	BankHolder  *string `json:"bankHolder,omitempty"`

	ShippingMethod       *string    `json:"shippingMethod,omitempty"`
	ShippingTrackingCode *string    `json:"shippingTrackingCode,omitempty"`
	ShippingTrackingURL  *string    `json:"shippingTrackingUrl,omitempty"`
	ShippingSubmittedAt  *time.Time `json:"shippingSubmittedAt,omitempty"`

	ShippingInfo *ShippingInfo `json:"shippingInfo,omitempty"`

	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy  *string    `json:"approvedBy,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy *string    `json:"cancelledBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BuyRequestPage struct {
	Items      []BuyRequest `json:"items"`
	TotalCount int          `json:"totalCount"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

type CreateBuyRequest struct {
	CustomerName  string   `json:"customerName" validate:"required,max=100"`
	CustomerPhone string   `json:"customerPhone" validate:"required,max=30"`
	CustomerEmail string   `json:"customerEmail" validate:"required,email,max=254"`
	ModelPriceID  string   `json:"modelPriceId" validate:"required,max=64"`
	ImeiSerial    *string  `json:"imeiSerial" validate:"omitempty,max=64"`
	HasReceipt    bool     `json:"hasReceipt"`
	PhotoURLs     []string `json:"photoUrls" validate:"omitempty,max=20,dive,required,max=2048"`
	Notes         *string  `json:"notes" validate:"omitempty,max=2000"`
}

// AdminUpdateBuyRequest: null в adminNotes и finalPrice очищает поле.
type AdminUpdateBuyRequest struct {
	Status     *string          `json:"status"`
	AdminNotes Nullable[string] `json:"adminNotes" validate:"-"`
	FinalPrice Nullable[int64]  `json:"finalPrice" validate:"-"`
}

type UserUpdateBuyRequest struct {
	BankName    *string `json:"bankName" validate:"omitempty,max=100"`
	BankAccount *string `json:"bankAccount" validate:"omitempty,max=64"`
	BankHolder  *string `json:"bankHolder" validate:"omitempty,max=100"`

	ShippingMethod       *string `json:"shippingMethod" validate:"omitempty,max=50"`
	ShippingTrackingCode *string `json:"shippingTrackingCode" validate:"omitempty,max=100"`
	ShippingTrackingURL  *string `json:"shippingTrackingUrl" validate:"omitempty,url,max=2048"`
}

type ModelPrice struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	ModelCode string    `json:"modelCode"`
	ModelName string    `json:"modelName"`
	StorageGB *int      `json:"storageGb,omitempty"`
	Color     *string   `json:"color,omitempty"`
	BuyPrice  int64     `json:"buyPrice"`
	Currency  string    `json:"currency"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateModelPrice struct {
	Category  string  `json:"category" validate:"required"`
	ModelCode string  `json:"modelCode" validate:"required,max=64"`
	ModelName string  `json:"modelName" validate:"required,max=200"`
	StorageGB *int    `json:"storageGb" validate:"omitempty,min=1"`
	Color     *string `json:"color" validate:"omitempty,max=50"`
	BuyPrice  int64   `json:"buyPrice" validate:"min=0"`
	Currency  *string `json:"currency" validate:"omitempty,len=3"`
	IsActive  *bool   `json:"isActive"`
}

// UpdateModelPrice: null в storageGb и color очищает поле.
type UpdateModelPrice struct {
	Category  *string          `json:"category"`
	ModelCode *string          `json:"modelCode" validate:"omitempty,max=64"`
	ModelName *string          `json:"modelName" validate:"omitempty,max=200"`
	StorageGB Nullable[int]    `json:"storageGb" validate:"-"`
	Color     Nullable[string] `json:"color" validate:"-"`
	BuyPrice  *int64           `json:"buyPrice" validate:"omitempty,min=0"`
	Currency  *string          `json:"currency" validate:"omitempty,len=3"`
	IsActive  *bool            `json:"isActive"`
}
