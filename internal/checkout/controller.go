package checkout

import (
	"context"
	"log"
	"strings"

	"github.com/alexcel/alexcel-store/internal/catalog"
	"github.com/alexcel/alexcel-store/internal/domain"
)

// User-facing messages, verbatim from the store copy.
const (
	msgFillFields      = "Por favor, completá todos los campos correctamente."
	msgPreferenceError = "Error al crear la preferencia de pago"
	msgConnectionError = "Error de conexión. Verificá que el backend esté corriendo."
)

// PreferenceCreator is the slice of the store API the controller needs.
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, req domain.PreferenceRequest) (*domain.PreferenceResponse, error)
}

// Navigator abstracts the browser effects the checkout flow performs.
type Navigator interface {
	// Redirect replaces the current page with the given URL.
	Redirect(url string)
}

// Controller collects the buyer details for one item and, on submit,
// creates a payment preference and sends the browser to the provider.
// Driven from the UI event loop; not safe for concurrent use.
type Controller struct {
	Form Form

	item catalog.Item
	api  PreferenceCreator
	nav  Navigator

	inFlight bool
	errMsg   string
}

// NewController creates a checkout controller for the given item.
func NewController(item catalog.Item, api PreferenceCreator, nav Navigator) *Controller {
	return &Controller{item: item, api: api, nav: nav}
}

// Item returns the item being purchased.
func (c *Controller) Item() catalog.Item { return c.item }

// Loading reports whether a submission is in flight.
func (c *Controller) Loading() bool { return c.inFlight }

// Err returns the currently surfaced error message, empty when none.
func (c *Controller) Err() string { return c.errMsg }

// CanSubmit reports whether the submit action is enabled: the form must
// validate and no submission may be in flight.
func (c *Controller) CanSubmit() bool {
	return !c.inFlight && c.Form.Valid()
}

// Submit runs the checkout: validate, create the preference, redirect to
// the provider. Invalid forms surface a blocking message without any
// network call. Only one submission may be in flight at a time.
func (c *Controller) Submit(ctx context.Context) {
	if c.inFlight {
		return
	}
	if !c.Form.Valid() {
		c.errMsg = msgFillFields
		return
	}

	c.inFlight = true
	c.errMsg = ""

	req := domain.PreferenceRequest{
		FirstName: strings.TrimSpace(c.Form.FirstName),
		LastName:  strings.TrimSpace(c.Form.LastName),
		Document:  strings.TrimSpace(c.Form.Document),
		Email:     strings.TrimSpace(c.Form.Email),
		ItemID:    c.item.ID,
		Title:     c.item.Title,
		Price:     c.item.Price,
		Quantity:  1,
	}

	resp, err := c.api.CreatePreference(ctx, req)
	if err != nil {
		log.Printf("Checkout request failed for item %s: %v", c.item.ID, err)
		c.errMsg = msgConnectionError
		c.inFlight = false
		return
	}

	if resp.Success && (resp.InitPoint != "" || resp.SandboxInitPoint != "") {
		// Sandbox is preferred when present; an environment toggle, not a
		// fallback on error.
		redirect := resp.SandboxInitPoint
		if redirect == "" {
			redirect = resp.InitPoint
		}
		c.nav.Redirect(redirect)
		return
	}

	if resp.Error != "" {
		c.errMsg = resp.Error
	} else {
		c.errMsg = msgPreferenceError
	}
	c.inFlight = false
}
