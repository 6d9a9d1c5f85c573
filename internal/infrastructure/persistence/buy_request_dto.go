package persistence

import (
	"time"

	"buyback/internal/domain/entity"
)

// buyRequestSchema соответствует строке таблицы buy_requests.
type buyRequestSchema struct {
	ID string `db:"id"`

	CustomerName  string `db:"customer_name"`
	CustomerPhone string `db:"customer_phone"`
	CustomerEmail string `db:"customer_email"`

	ModelPriceID   string  `db:"model_price_id"`
	DeviceCategory string  `db:"device_category"`
	ModelCode      string  `db:"model_code"`
	ModelName      string  `db:"model_name"`
	StorageGB      *int    `db:"storage_gb"`
	Color          *string `db:"color"`
	BuyPrice       int64   `db:"buy_price"`
	Currency       string  `db:"currency"`

	Status        string                           `db:"status"`
	StatusHistory jsonColumn[[]statusHistorySchema] `db:"status_history"`

	Notes      *string `db:"notes"`
	AdminNotes *string `db:"admin_notes"`
	FinalPrice *int64  `db:"final_price"`

	ImeiSerial *string              `db:"imei_serial"`
	HasReceipt bool                 `db:"has_receipt"`
	PhotoURLs  jsonColumn[[]string] `db:"photo_urls"`

	BankName    *string `db:"bank_name"`
	BankAccount *string `db:"bank_account"`
	BankHolder  *string `db:"bank_holder"`

	ShippingMethod       *string    `db:"shipping_method"`
	ShippingTrackingCode *string    `db:"shipping_tracking_code"`
	ShippingTrackingURL  *string    `db:"shipping_tracking_url"`
	ShippingSubmittedAt  *time.Time `db:"shipping_submitted_at"`

	ShippingInfo jsonColumn[shippingInfoSchema] `db:"shipping_info"`

	ApprovedAt  *time.Time `db:"approved_at"`
	ApprovedBy  *string    `db:"approved_by"`
	PaidAt      *time.Time `db:"paid_at"`
	CancelledAt *time.Time `db:"cancelled_at"`
	CancelledBy *string    `db:"cancelled_by"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type statusHistorySchema struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy,omitempty"`
}

type shippingInfoSchema struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	PostalCode    string `json:"postalCode,omitempty"`
	Address1      string `json:"address1"`
	Address2      string `json:"address2,omitempty"`
	Note          string `json:"note,omitempty"`
}

func fromBuyRequest(r *entity.BuyRequest) buyRequestSchema {
	history := make([]statusHistorySchema, 0, len(r.StatusHistory))
	for _, e := range r.StatusHistory {
		history = append(history, statusHistorySchema{
			Status:    string(e.Status),
			ChangedAt: e.ChangedAt,
			ChangedBy: e.ChangedBy,
		})
	}

	photos := r.PhotoURLs
	if photos == nil {
		photos = []string{}
	}

	var shipping jsonColumn[shippingInfoSchema]
	if r.ShippingInfo != nil {
		shipping = newJSONColumn(shippingInfoSchema(*r.ShippingInfo))
	}

	return buyRequestSchema{
		ID:                   r.ID,
		CustomerName:         r.CustomerName,
		CustomerPhone:        r.CustomerPhone,
		CustomerEmail:        r.CustomerEmail,
		ModelPriceID:         r.ModelPriceID,
		DeviceCategory:       string(r.DeviceCategory),
		ModelCode:            r.ModelCode,
		ModelName:            r.ModelName,
		StorageGB:            r.StorageGB,
		Color:                r.Color,
		BuyPrice:             r.BuyPrice,
		Currency:             r.Currency,
		Status:               string(r.Status),
		StatusHistory:        newJSONColumn(history),
		Notes:                r.Notes,
		AdminNotes:           r.AdminNotes,
		FinalPrice:           r.FinalPrice,
		ImeiSerial:           r.ImeiSerial,
		HasReceipt:           r.HasReceipt,
		PhotoURLs:            newJSONColumn(photos),
		BankName:             r.BankName,
		BankAccount:          r.BankAccount,
		BankHolder:           r.BankHolder,
		ShippingMethod:       r.ShippingMethod,
		ShippingTrackingCode: r.ShippingTrackingCode,
		ShippingTrackingURL:  r.ShippingTrackingURL,
		ShippingSubmittedAt:  r.ShippingSubmittedAt,
		ShippingInfo:         shipping,
		ApprovedAt:           r.ApprovedAt,
		ApprovedBy:           r.ApprovedBy,
		PaidAt:               r.PaidAt,
		CancelledAt:          r.CancelledAt,
		CancelledBy:          r.CancelledBy,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// toDomain отдаёт запись как есть, без нормализации статусов.
func (s *buyRequestSchema) toDomain() entity.BuyRequest {
	history := make(entity.StatusHistory, 0, len(s.StatusHistory.V))
	for _, e := range s.StatusHistory.V {
		history = append(history, entity.StatusHistoryEntry{
			Status:    entity.BuyRequestStatus(e.Status),
			ChangedAt: e.ChangedAt.UTC(),
			ChangedBy: e.ChangedBy,
		})
	}

	var shipping *entity.ShippingInfo
	if s.ShippingInfo.Valid {
		info := entity.ShippingInfo(s.ShippingInfo.V)
		shipping = &info
	}

	photos := s.PhotoURLs.V
	if photos == nil {
		photos = []string{}
	}

	return entity.BuyRequest{
		ID:                   s.ID,
		CustomerName:         s.CustomerName,
		CustomerPhone:        s.CustomerPhone,
		CustomerEmail:        s.CustomerEmail,
		ModelPriceID:         s.ModelPriceID,
		DeviceCategory:       entity.DeviceCategory(s.DeviceCategory),
		ModelCode:            s.ModelCode,
		ModelName:            s.ModelName,
		StorageGB:            s.StorageGB,
		Color:                s.Color,
		BuyPrice:             s.BuyPrice,
		Currency:             s.Currency,
		Status:               entity.BuyRequestStatus(s.Status),
		StatusHistory:        history,
		Notes:                s.Notes,
		AdminNotes:           s.AdminNotes,
		FinalPrice:           s.FinalPrice,
		ImeiSerial:           s.ImeiSerial,
		HasReceipt:           s.HasReceipt,
		PhotoURLs:            photos,
		BankName:             s.BankName,
		BankAccount:          s.BankAccount,
		BankHolder:           s.BankHolder,
		ShippingMethod:       s.ShippingMethod,
		ShippingTrackingCode: s.ShippingTrackingCode,
		ShippingTrackingURL:  s.ShippingTrackingURL,
		ShippingSubmittedAt:  utcPtr(s.ShippingSubmittedAt),
		ShippingInfo:         shipping,
		ApprovedAt:           utcPtr(s.ApprovedAt),
		ApprovedBy:           s.ApprovedBy,
		PaidAt:               utcPtr(s.PaidAt),
		CancelledAt:          utcPtr(s.CancelledAt),
		CancelledBy:          s.CancelledBy,
		CreatedAt:            s.CreatedAt.UTC(),
		UpdatedAt:            s.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	v := t.UTC()

	return &v
}
