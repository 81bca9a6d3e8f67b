package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	BadRequest           ErrorCode = "BAD_REQUEST"
	NotFound             ErrorCode = "NOT_FOUND"
	NetworkError         ErrorCode = "NETWORK_ERROR"
	ShapeError           ErrorCode = "SHAPE_ERROR"
	CooldownActive       ErrorCode = "COOLDOWN_ACTIVE"
	Superseded           ErrorCode = "SUPERSEDED"
)

// Error is the service level error. StatusCode is the http status the api layer responds with.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		Err:        err,
		StatusCode: statusCode,
		ErrorCode:  errorCode,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return &Error{
		Err:        errors.New(msg),
		StatusCode: statusCode,
		ErrorCode:  errorCode,
	}
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		Err:        err,
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
	}
}

// NewNetworkError wraps a failed ledger call. The whole aggregation run is aborted by it.
func NewNetworkError(err error) *Error {
	return &Error{
		Err:        fmt.Errorf("sync failed: %w", err),
		StatusCode: http.StatusBadGateway,
		ErrorCode:  NetworkError,
	}
}

// NewShapeError is returned when a ledger response is not the expected paginated structure.
func NewShapeError(msg string) *Error {
	return &Error{
		Err:        fmt.Errorf("sync failed: unexpected ledger response: %s", msg),
		StatusCode: http.StatusBadGateway,
		ErrorCode:  ShapeError,
	}
}

// HasErrorCode reports whether err (or anything it wraps) is a *Error with the given code.
func HasErrorCode(err error, code ErrorCode) bool {
	var typedErr *Error
	if errors.As(err, &typedErr) {
		return typedErr.ErrorCode == code
	}
	return false
}
