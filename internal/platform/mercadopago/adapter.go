// Package mercadopago implements the PaymentGateway interface using the official SDK.
package mercadopago

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/alexcel/alexcel-store/internal/domain"
	"github.com/alexcel/alexcel-store/internal/view"
)

// statementDescriptor is what shows up on the buyer's card statement.
const statementDescriptor = "ALEXCEL"

// Adapter implements domain.PaymentGateway using the Mercado Pago SDK.
type Adapter struct {
	cfg         *config.Config
	frontendURL string
}

// NewAdapter creates a Mercado Pago adapter for the store's access token.
// frontendURL is where the provider redirects buyers after checkout.
func NewAdapter(accessToken, frontendURL string) (*Adapter, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create MP config: %w", err)
	}
	return &Adapter{
		cfg:         cfg,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}, nil
}

// CreatePreference creates a Checkout Pro preference for the order. The
// order id travels as external_reference so the return flow can find the
// order again.
func (a *Adapter) CreatePreference(ctx context.Context, spec domain.PreferenceSpec) (*domain.GatewayPreference, error) {
	client := preference.NewClient(a.cfg)

	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          spec.ItemID,
				Title:       spec.Title,
				Description: spec.Description,
				Quantity:    spec.Quantity,
				UnitPrice:   spec.Price,
				CurrencyID:  "ARS",
				CategoryID:  "learnings",
			},
		},
		Payer: &preference.PayerRequest{
			Name:    spec.FirstName,
			Surname: spec.LastName,
			Email:   spec.Email,
			Identification: &preference.IdentificationRequest{
				Type:   "DNI",
				Number: spec.Document,
			},
		},
		ExternalReference:   spec.OrderID,
		AutoReturn:          "approved",
		StatementDescriptor: statementDescriptor,
		BackURLs: &preference.BackURLsRequest{
			Success: a.frontendURL + view.PathPaymentSuccess,
			Failure: a.frontendURL + view.PathPaymentFailed,
			Pending: a.frontendURL + view.PathPaymentPending,
		},
	}

	result, err := client.Create(ctx, request)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to create preference: "+err.Error(), "MP_PREFERENCE_ERROR")
	}

	return &domain.GatewayPreference{
		ID:               result.ID,
		InitPoint:        result.InitPoint,
		SandboxInitPoint: result.SandboxInitPoint,
	}, nil
}

// GetPaymentInfo retrieves the authoritative payment state from Mercado Pago.
func (a *Adapter) GetPaymentInfo(ctx context.Context, paymentID string) (*domain.PaymentInfo, error) {
	client := payment.NewClient(a.cfg)

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrInvalidRequest,
			"invalid payment ID format", "INVALID_PAYMENT_ID")
	}

	result, err := client.Get(ctx, id)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to get payment info: "+err.Error(), "MP_PAYMENT_ERROR")
	}

	dateApproved := result.DateApproved
	if dateApproved.IsZero() {
		dateApproved = time.Now()
	}

	return &domain.PaymentInfo{
		PaymentID:         paymentID,
		Status:            result.Status,
		StatusDetail:      result.StatusDetail,
		ExternalReference: result.ExternalReference,
		Amount:            result.TransactionAmount,
		Currency:          result.CurrencyID,
		PaymentType:       result.PaymentTypeID,
		PayerEmail:        result.Payer.Email,
		DateApproved:      dateApproved,
	}, nil
}
