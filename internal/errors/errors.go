// Package errors provides custom error types for the PropToken API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrKYCNotVerified = &AppError{Code: "KYC_NOT_VERIFIED", Message: "Identity verification is required before investing", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Catalog errors.
var (
	ErrValidation       = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid property attributes", StatusCode: http.StatusBadRequest}
	ErrPropertyNotFound = &AppError{Code: "PROPERTY_NOT_FOUND", Message: "Property not found", StatusCode: http.StatusNotFound}
)

// Allocation errors.
var (
	ErrInvalidAmount      = &AppError{Code: "INVALID_AMOUNT", Message: "Investment amount is outside the allowed bounds", StatusCode: http.StatusBadRequest}
	ErrTokensUnavailable  = &AppError{Code: "TOKENS_UNAVAILABLE", Message: "Not enough tokens available for this investment", StatusCode: http.StatusConflict}
	ErrInvestmentNotFound = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
)

// Identity verification errors.
var (
	ErrKYCNotFound = &AppError{Code: "KYC_NOT_FOUND", Message: "Verification record not found", StatusCode: http.StatusNotFound}
)
