// Package domain contains the core business entities for the store.
package domain

import "context"

// PaymentGateway defines the interface for interacting with Mercado Pago.
// This abstracts away the details of the official SDK.
type PaymentGateway interface {
	// CreatePreference creates a Checkout Pro preference.
	// Returns the preference ID and init_point URLs.
	CreatePreference(ctx context.Context, spec PreferenceSpec) (*GatewayPreference, error)

	// GetPaymentInfo retrieves payment details by ID.
	GetPaymentInfo(ctx context.Context, paymentID string) (*PaymentInfo, error)
}

// EmailSender delivers purchase emails with the download link.
type EmailSender interface {
	SendDownloadLink(ctx context.Context, to, customerName, itemTitle, downloadURL string) error
}
