package entity

import "time"

type BuyRequest struct {
	ID string

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	// Снимок позиции прайса на момент создания
	ModelPriceID   string
	DeviceCategory DeviceCategory
	ModelCode      string
	ModelName      string
	StorageGB      *int
	Color          *string
	BuyPrice       int64
	Currency       string

	Status        BuyRequestStatus
	StatusHistory StatusHistory

	Notes      *string
	AdminNotes *string
	FinalPrice *int64

	ImeiSerial *string
	HasReceipt bool
	PhotoURLs  []string

	BankName    *string
	BankAccount *string
	BankHolder  *string

	ShippingMethod       *string
	ShippingTrackingCode *string
	ShippingTrackingURL  *string
	ShippingSubmittedAt  *time.Time

	// Фиксируется один раз при одобрении и больше не меняется
	ShippingInfo *ShippingInfo

	ApprovedAt  *time.Time
	ApprovedBy  *string
	PaidAt      *time.Time
	CancelledAt *time.Time
	CancelledBy *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBankInfo reports whether all bank transfer fields are filled.
func (r BuyRequest) HasBankInfo() bool {
	return filled(r.BankName) && filled(r.BankAccount) && filled(r.BankHolder)
}

// HasCompleteShipping reports whether method, tracking code and tracking URL are filled.
func (r BuyRequest) HasCompleteShipping() bool {
	return filled(r.ShippingMethod) && filled(r.ShippingTrackingCode) && filled(r.ShippingTrackingURL)
}

// AppendStatus меняет статус и дописывает историю. Других способов менять историю нет.
func (r *BuyRequest) AppendStatus(status BuyRequestStatus, at time.Time, by string) {
	r.Status = status
	r.StatusHistory = append(r.StatusHistory, StatusHistoryEntry{
		Status:    status,
		ChangedAt: at,
		ChangedBy: by,
	})
}

func filled(s *string) bool {
	return s != nil && *s != ""
}

// SetOnce записывает value в dst, только если dst ещё пуст.
// Возвращает true, если запись произошла.
func SetOnce[T any](dst **T, value T) bool {
	if *dst != nil {
		return false
	}

	*dst = &value

	return true
}

// BuyRequestFilter задаёт условия выборки списка. Сортировка всегда от новых к старым.
type BuyRequestFilter struct {
	Status     *BuyRequestStatus
	Search     string
	OwnerEmail string
}

// StoredStatuses возвращает значения статуса в хранилище, подходящие под фильтр.
func (f BuyRequestFilter) StoredStatuses() []BuyRequestStatus {
	if f.Status == nil {
		return nil
	}

	if *f.Status == StatusPaid {
		return []BuyRequestStatus{StatusPaid, StatusLegacyCompleted}
	}

	return []BuyRequestStatus{*f.Status}
}
