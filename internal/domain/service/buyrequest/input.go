package buyrequest

import (
	"regexp"
	"strings"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/internal/domain/value"
	"buyback/pkg/errcodes"
)

//nolint:gochecknoglobals
var (
	iphoneImeiRe    = regexp.MustCompile(`^\d{15}$`)
	consoleSerialRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

const (
	consoleSerialMinLen = 8
	base64PhotoPrefix   = "data:image/"
)

type CreateInput struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ModelPriceID  string
	ImeiSerial    *string
	HasReceipt    bool
	PhotoURLs     []string
	Notes         *string
}

type AdminUpdateInput struct {
	Status     *entity.BuyRequestStatus
	AdminNotes value.Patch[string]
	FinalPrice value.Patch[int64]
}

type UserUpdateInput struct {
	BankName    *string
	BankAccount *string
	BankHolder  *string

	ShippingMethod       *string
	ShippingTrackingCode *string
	ShippingTrackingURL  *string
}

// Validate проверяет группы полей: банковские реквизиты передаются все сразу,
// способ отправки и трек-номер только вместе.
func (in UserUpdateInput) Validate() error {
	if anyFilled(in.BankName, in.BankAccount, in.BankHolder) &&
		!allFilled(in.BankName, in.BankAccount, in.BankHolder) {
		return domain.NewInvalidInputError(errcodes.BankInfoIncomplete,
			"bank name, bank account and bank holder must be provided together")
	}

	if anyFilled(in.ShippingMethod, in.ShippingTrackingCode, in.ShippingTrackingURL) &&
		!allFilled(in.ShippingMethod, in.ShippingTrackingCode) {
		return domain.NewInvalidInputError(errcodes.ShippingInfoIncomplete,
			"shipping method and tracking code must be provided together")
	}

	return nil
}

func (in UserUpdateInput) hasShipping() bool {
	return in.ShippingMethod != nil || in.ShippingTrackingCode != nil || in.ShippingTrackingURL != nil
}

// validateImeiSerial возвращает нормализованный серийный номер или nil, если он пуст.
func validateImeiSerial(category entity.DeviceCategory, raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}

	serial := strings.TrimSpace(*raw)
	if serial == "" {
		return nil, nil
	}

	switch category {
	case entity.CategoryIPhone:
		if !iphoneImeiRe.MatchString(serial) {
			return nil, domain.NewInvalidInputError(errcodes.InvalidImeiSerial,
				"iPhone IMEI must be exactly 15 digits")
		}
	case entity.CategoryPS5, entity.CategorySwitch:
		if len(serial) < consoleSerialMinLen || !consoleSerialRe.MatchString(serial) {
			return nil, domain.NewInvalidInputError(errcodes.InvalidImeiSerial,
				"serial number must be at least 8 characters, letters and digits only")
		}
	}

	return &serial, nil
}

func validatePhotoURLs(urls []string) error {
	for _, u := range urls {
		if strings.HasPrefix(u, base64PhotoPrefix) {
			return domain.NewInvalidInputError(errcodes.InvalidPhotoURL,
				"photos must be uploaded as files, base64 data URLs are not supported")
		}
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func anyFilled(values ...*string) bool {
	for _, v := range values {
		if v != nil && *v != "" {
			return true
		}
	}
	return false
}

func allFilled(values ...*string) bool {
	for _, v := range values {
		if v == nil || *v == "" {
			return false
		}
	}
	return true
}
