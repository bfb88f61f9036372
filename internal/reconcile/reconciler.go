// Package reconcile implements the payment-return flow: it reads the
// identifiers Mercado Pago appends to the return URL, validates the
// payment against the store API and resolves to a success or problem
// outcome. The static failed/pending guidance pages live here too.
package reconcile

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/alexcel/alexcel-store/internal/domain"
)

// User-facing messages, verbatim from the store copy.
const (
	msgMissingParams = "No se encontraron los datos del pago en la URL."
	msgValidateError = "Error al verificar el pago. Por favor, contacta a soporte."
	msgNotProcessed  = "El pago no pudo ser procesado."
)

// State is the rendering state of the reconciler. Linear, no re-entry.
type State string

const (
	// StateVerifying is shown while the validation call is outstanding.
	StateVerifying State = "verifying"
	// StateSuccess is shown when the backend confirmed the payment.
	StateSuccess State = "success"
	// StateProblem is shown for missing parameters, business failures and
	// transport failures alike.
	StateProblem State = "problem"
)

// ReturnParams are the identifiers read from the payment-return URL.
// Mercado Pago uses two alternate names for the payment id and the
// status; both are accepted.
type ReturnParams struct {
	PaymentID         string
	ExternalReference string
	StatusHint        string
}

// ParseReturnParams extracts the payment identifiers from a query string.
func ParseReturnParams(q url.Values) ReturnParams {
	paymentID := q.Get("payment_id")
	if paymentID == "" {
		paymentID = q.Get("collection_id")
	}
	status := q.Get("status")
	if status == "" {
		status = q.Get("collection_status")
	}
	return ReturnParams{
		PaymentID:         paymentID,
		ExternalReference: q.Get("external_reference"),
		StatusHint:        status,
	}
}

// Complete reports whether the parameters required for validation are present.
func (p ReturnParams) Complete() bool {
	return p.PaymentID != "" && p.ExternalReference != ""
}

// PaymentValidator is the slice of the store API the reconciler needs.
type PaymentValidator interface {
	ValidatePayment(ctx context.Context, paymentID, externalReference, status string) (*domain.ValidateResult, error)
	DownloadURL(path string) string
}

// Navigator abstracts the browser effect of the download action.
type Navigator interface {
	// OpenTab opens the URL in a new browsing context.
	OpenTab(url string)
}

// Reconciler validates one returned payment and holds the outcome for the
// lifetime of the outcome page. Driven from the UI event loop; not safe
// for concurrent use.
type Reconciler struct {
	api    PaymentValidator
	nav    Navigator
	params ReturnParams

	state   State
	outcome *domain.ValidateResult
	errMsg  string
}

// NewReconciler builds a reconciler for the given return query. Missing
// identifiers resolve to the problem state immediately; Run will then make
// no network call.
func NewReconciler(query url.Values, api PaymentValidator, nav Navigator) *Reconciler {
	r := &Reconciler{
		api:    api,
		nav:    nav,
		params: ParseReturnParams(query),
		state:  StateVerifying,
	}
	if !r.params.Complete() {
		r.state = StateProblem
		r.errMsg = msgMissingParams
	}
	return r
}

// State returns the current rendering state.
func (r *Reconciler) State() State { return r.state }

// Run issues the validation call and resolves the outcome. It runs at
// most once; calling it after resolution is a no-op. Transport failure
// folds into the problem state and is not retried.
func (r *Reconciler) Run(ctx context.Context) {
	if r.state != StateVerifying {
		return
	}

	result, err := r.api.ValidatePayment(ctx, r.params.PaymentID, r.params.ExternalReference, r.params.StatusHint)
	if err != nil {
		log.Printf("Payment validation failed for payment %s: %v", r.params.PaymentID, err)
		r.state = StateProblem
		r.errMsg = msgValidateError
		return
	}

	r.outcome = result
	if !result.Success {
		r.state = StateProblem
		if result.Error != "" {
			r.errMsg = result.Error
		} else {
			r.errMsg = msgNotProcessed
		}
		return
	}
	r.state = StateSuccess
}

// Problem returns the surfaced error message; empty unless the state is
// StateProblem.
func (r *Reconciler) Problem() string { return r.errMsg }

// SuccessView is the view model for the resolved-success page.
type SuccessView struct {
	Message       string
	CustomerName  string
	CustomerEmail string
	CourseTitle   string
	AmountLabel   string
	PaymentID     string
	HasDownload   bool
}

// Success builds the success view model. Only meaningful in StateSuccess.
func (r *Reconciler) Success() SuccessView {
	if r.state != StateSuccess || r.outcome == nil {
		return SuccessView{}
	}
	return SuccessView{
		Message:       r.outcome.Message,
		CustomerName:  r.outcome.CustomerName,
		CustomerEmail: r.outcome.CustomerEmail,
		CourseTitle:   r.outcome.CourseTitle,
		AmountLabel:   fmt.Sprintf("$%.2f", r.outcome.Amount),
		PaymentID:     r.outcome.PaymentID,
		HasDownload:   r.outcome.DownloadURL != "",
	}
}

// Download opens the purchased file in a new browsing context. A no-op
// when the outcome carries no download link.
func (r *Reconciler) Download() {
	if r.state != StateSuccess || r.outcome == nil || r.outcome.DownloadURL == "" {
		return
	}
	r.nav.OpenTab(r.api.DownloadURL(r.outcome.DownloadURL))
}
