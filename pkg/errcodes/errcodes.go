package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	AccessTokenInvalid  failure.ErrorCode = "AccessTokenInvalid"
	UserEmailMissing    failure.ErrorCode = "UserEmailMissing"
	NotFound            failure.ErrorCode = "NotFound"
	TooManyRequests     failure.ErrorCode = "TooManyRequests"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"
	InvalidPhotoURL     failure.ErrorCode = "InvalidPhotoURL"

	// Buy requests
	BuyRequestNotFound     failure.ErrorCode = "BuyRequestNotFound"
	InvalidImeiSerial      failure.ErrorCode = "InvalidImeiSerial"
	InvalidStatus          failure.ErrorCode = "InvalidStatus"
	InvalidStatusForAction failure.ErrorCode = "InvalidStatusForAction" // guard on the current status
	AlreadyPaid            failure.ErrorCode = "AlreadyPaid"
	PaymentInfoIncomplete  failure.ErrorCode = "PaymentInfoIncomplete" // bank or shipping group missing
	BankInfoIncomplete     failure.ErrorCode = "BankInfoIncomplete"
	ShippingInfoIncomplete failure.ErrorCode = "ShippingInfoIncomplete"
	RequestNotEditable     failure.ErrorCode = "RequestNotEditable"

	// Model price catalog
	ModelPriceNotFound   failure.ErrorCode = "ModelPriceNotFound"
	InvalidModelPrice    failure.ErrorCode = "InvalidModelPrice"
	InvalidCategory      failure.ErrorCode = "InvalidCategory"
	ModelPriceDuplicated failure.ErrorCode = "ModelPriceDuplicated"
)

// Class groups error codes by how callers should react to them.
type Class uint8

const (
	ClassInternal Class = iota
	ClassNotFound
	ClassInvalidInput
	ClassInvalidState
	ClassForbidden
)

func (c Class) String() string {
	switch c {
	case ClassNotFound:
		return "not_found"
	case ClassInvalidInput:
		return "invalid_input"
	case ClassInvalidState:
		return "invalid_state"
	case ClassForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}
