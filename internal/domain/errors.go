// Package domain contains the core business entities for the store.
package domain

import "errors"

// Domain errors - represent business rule violations.
var (
	// ErrInvalidRequest is returned for malformed checkout requests.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrOrderNotFound is returned when an order cannot be located.
	ErrOrderNotFound = errors.New("order not found")

	// ErrPaymentGatewayError is returned when Mercado Pago fails.
	ErrPaymentGatewayError = errors.New("payment gateway error")

	// ErrPaymentNotApproved is returned when a download is requested for an
	// order whose payment has not been approved.
	ErrPaymentNotApproved = errors.New("payment not approved")

	// ErrInvalidDownloadToken is returned when a download token fails verification.
	ErrInvalidDownloadToken = errors.New("invalid download token")

	// ErrWebhookValidationFailed is returned when x-signature is invalid.
	ErrWebhookValidationFailed = errors.New("webhook signature validation failed")

	// ErrEmailDeliveryFailed is returned when the purchase email cannot be sent.
	ErrEmailDeliveryFailed = errors.New("email delivery failed")
)

// ServiceError wraps errors with additional context.
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(err error, message, code string) *ServiceError {
	return &ServiceError{Err: err, Message: message, Code: code}
}
