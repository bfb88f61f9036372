package app

import (
	"context"
	"net/url"
	"testing"

	"github.com/alexcel/alexcel-store/internal/domain"
	"github.com/alexcel/alexcel-store/internal/view"
)

type fakeBrowser struct {
	path    string
	query   url.Values
	scrolls int

	redirected string
	opened     string
}

func (b *fakeBrowser) Path() string        { return b.path }
func (b *fakeBrowser) Query() url.Values   { return b.query }
func (b *fakeBrowser) Redirect(url string) { b.redirected = url }
func (b *fakeBrowser) OpenTab(url string)  { b.opened = url }
func (b *fakeBrowser) ScrollTop()          { b.scrolls++ }

type fakeStoreAPI struct {
	validateCalls int
	validate      *domain.ValidateResult
}

func (f *fakeStoreAPI) CreatePreference(_ context.Context, _ domain.PreferenceRequest) (*domain.PreferenceResponse, error) {
	return &domain.PreferenceResponse{Success: true, InitPoint: "https://prod/x"}, nil
}

func (f *fakeStoreAPI) ValidatePayment(_ context.Context, _, _, _ string) (*domain.ValidateResult, error) {
	f.validateCalls++
	if f.validate != nil {
		return f.validate, nil
	}
	return &domain.ValidateResult{Success: true}, nil
}

func (f *fakeStoreAPI) DownloadURL(path string) string { return "http://localhost:8000" + path }

func newTestApp(path, rawQuery string) (*App, *fakeBrowser, *fakeStoreAPI) {
	q, _ := url.ParseQuery(rawQuery)
	b := &fakeBrowser{path: path, query: q}
	api := &fakeStoreAPI{}
	return New(api, b), b, api
}

func TestEveryViewRendersAPage(t *testing.T) {
	for _, id := range view.AllViews {
		a, _, _ := newTestApp("/", "")
		a.Navigate(id)
		page := a.CurrentPage()
		if page == nil {
			t.Fatalf("view %s rendered nil page", id)
		}
		if page.viewID() != id {
			t.Fatalf("view %s rendered page for %s", id, page.viewID())
		}
	}
}

func TestUnknownViewFallsBackToLanding(t *testing.T) {
	a, _, _ := newTestApp("/", "")
	a.Router().SetView(view.ID("does-not-exist"))
	if _, ok := a.CurrentPage().(LandingPage); !ok {
		t.Fatalf("expected landing fallback, got %T", a.CurrentPage())
	}
}

func TestScrollToTopOnEveryNavigation(t *testing.T) {
	a, b, _ := newTestApp("/", "")
	before := b.scrolls
	a.Navigate(view.Templates)
	a.Navigate(view.Checkout)
	if b.scrolls != before+2 {
		t.Fatalf("expected 2 scrolls, got %d", b.scrolls-before)
	}
}

func TestPaymentReturnDeepLink(t *testing.T) {
	a, _, api := newTestApp("/pago-exitoso", "payment_id=5&external_reference=ord&status=approved")
	if a.Router().Current() != view.PaymentSuccess {
		t.Fatalf("expected success view on return path, got %s", a.Router().Current())
	}

	a.Start(context.Background())
	if api.validateCalls != 1 {
		t.Fatalf("expected exactly one validate call, got %d", api.validateCalls)
	}
	// A second start must not re-issue the call.
	a.Start(context.Background())
	if api.validateCalls != 1 {
		t.Fatalf("validate call re-issued: %d", api.validateCalls)
	}
}

func TestStartWithoutReturnPathIsQuiet(t *testing.T) {
	a, _, api := newTestApp("/", "")
	a.Start(context.Background())
	if api.validateCalls != 0 {
		t.Fatalf("expected no validate call on landing, got %d", api.validateCalls)
	}
}

func TestCheckoutControllerLifecycle(t *testing.T) {
	a, _, _ := newTestApp("/", "")
	a.SelectItem(view.SelectTemplate, "planificador-financiero", view.Checkout)

	p1, ok := a.CurrentPage().(CheckoutPage)
	if !ok {
		t.Fatalf("expected checkout page, got %T", a.CurrentPage())
	}
	if p1.Controller.Item().ID != "planificador-financiero" {
		t.Fatalf("controller bound to %s", p1.Controller.Item().ID)
	}

	// Same controller while staying on the page.
	p2 := a.CurrentPage().(CheckoutPage)
	if p1.Controller != p2.Controller {
		t.Fatal("controller must be stable across renders of the same mount")
	}

	// Navigating away discards the form state.
	a.Navigate(view.Landing)
	a.Navigate(view.Checkout)
	p3 := a.CurrentPage().(CheckoutPage)
	if p3.Controller == p1.Controller {
		t.Fatal("controller must be recreated on a fresh mount")
	}
}

func TestStaticOutcomePagesCarryGuidance(t *testing.T) {
	a, _, api := newTestApp("/pago-fallido", "")
	if a.Router().Current() != view.PaymentFailed {
		t.Fatalf("expected failed view, got %s", a.Router().Current())
	}
	p, ok := a.CurrentPage().(PaymentFailedPage)
	if !ok || p.Guidance.Title == "" {
		t.Fatalf("expected failed guidance page, got %T", a.CurrentPage())
	}
	a.Start(context.Background())
	if api.validateCalls != 0 {
		t.Fatal("static outcome pages must not consult the backend")
	}
}
