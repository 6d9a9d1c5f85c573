package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"buyback/pkg/errcodes"
)

// AppError is a domain error. Message is safe to show to the caller.
type AppError struct {
	Class   errcodes.Class
	Code    failure.ErrorCode
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func (e *AppError) ErrorCode() failure.ErrorCode {
	return e.Code
}

func (e *AppError) ErrorClass() errcodes.Class {
	return e.Class
}

func (e *AppError) Description() string {
	return e.Message
}

// NewError creates an internal domain error.
func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Class:   errcodes.ClassInternal,
		Code:    code,
		Message: message,
	}
}

// WrapError wraps err as an internal failure. The cause is kept for logs only.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Class:   errcodes.ClassInternal,
		Code:    code,
		Message: message,
		cause:   err,
	}
}

func NewNotFoundError(code failure.ErrorCode, message string) *AppError {
	return &AppError{Class: errcodes.ClassNotFound, Code: code, Message: message}
}

func NewInvalidInputError(code failure.ErrorCode, message string) *AppError {
	return &AppError{Class: errcodes.ClassInvalidInput, Code: code, Message: message}
}

func NewInvalidStateError(code failure.ErrorCode, message string) *AppError {
	return &AppError{Class: errcodes.ClassInvalidState, Code: code, Message: message}
}

func NewForbiddenError(code failure.ErrorCode, message string) *AppError {
	return &AppError{Class: errcodes.ClassForbidden, Code: code, Message: message}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode extracts the code when err is an AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// ClassOf reports the class of err. Foreign errors are internal.
func ClassOf(err error) errcodes.Class {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Class
	}
	return errcodes.ClassInternal
}

func IsNotFound(err error) bool {
	return ClassOf(err) == errcodes.ClassNotFound
}
