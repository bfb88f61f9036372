// Package domain contains the core business entities for the store.
// This is the innermost layer - no external dependencies.
package domain

import "time"

// PreferenceRequest represents an incoming checkout request from the storefront.
// The client may identify the product as item_id or course_id; both are accepted.
type PreferenceRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Document  string  `json:"document"`
	Email     string  `json:"email"`
	ItemID    string  `json:"item_id"`
	CourseID  string  `json:"course_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// ProductID resolves the item identifier, favoring item_id over the
// legacy course_id alias.
func (r PreferenceRequest) ProductID() string {
	if r.ItemID != "" {
		return r.ItemID
	}
	return r.CourseID
}

// PreferenceResponse represents the response after creating a payment preference.
type PreferenceResponse struct {
	Success          bool    `json:"success"`
	InitPoint        string  `json:"init_point,omitempty"`
	SandboxInitPoint string  `json:"sandbox_init_point,omitempty"`
	PreferenceID     string  `json:"preference_id,omitempty"`
	OrderID          string  `json:"order_id,omitempty"`
	Error            string  `json:"error,omitempty"`
	ErrorCode        string  `json:"error_code,omitempty"`
}

// PreferenceSpec is the data the gateway needs to create a preference.
// Document must already be reduced to digits.
type PreferenceSpec struct {
	OrderID     string
	ItemID      string
	Title       string
	Description string
	Price       float64
	Quantity    int
	FirstName   string
	LastName    string
	Document    string
	Email       string
}

// GatewayPreference is a created Mercado Pago preference.
type GatewayPreference struct {
	ID               string
	InitPoint        string
	SandboxInitPoint string
}

// PaymentInfo contains the details of a payment as reported by Mercado Pago.
type PaymentInfo struct {
	PaymentID         string    `json:"payment_id"`
	Status            string    `json:"status"`
	StatusDetail      string    `json:"status_detail"`
	ExternalReference string    `json:"external_reference"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	PaymentType       string    `json:"payment_type"`
	PayerEmail        string    `json:"payer_email"`
	DateApproved      time.Time `json:"date_approved"`
}

// ValidateResult is returned by the validate endpoint after reconciling a
// payment against Mercado Pago and the order store.
type ValidateResult struct {
	Success       bool    `json:"success"`
	PaymentID     string  `json:"payment_id,omitempty"`
	Status        string  `json:"status,omitempty"`
	StatusDetail  string  `json:"status_detail,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	OrderID       string  `json:"order_id,omitempty"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	CourseTitle   string  `json:"course_title,omitempty"`
	Message       string  `json:"message,omitempty"`
	DownloadURL   string  `json:"download_url,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// WebhookNotification represents the IPN notification from Mercado Pago.
type WebhookNotification struct {
	ID          int64  `json:"id"`
	LiveMode    bool   `json:"live_mode"`
	Type        string `json:"type"`
	DateCreated string `json:"date_created"`
	Action      string `json:"action"`
	Data        struct {
		ID string `json:"id"`
	} `json:"data"`
}
