// Package app composes the storefront: it wires the view router, the
// static catalog, the checkout controller and the payment reconciler into
// a single application value whose page dispatch is an exhaustive switch
// over the view enum.
package app

import (
	"context"
	"net/url"

	"github.com/alexcel/alexcel-store/internal/catalog"
	"github.com/alexcel/alexcel-store/internal/checkout"
	"github.com/alexcel/alexcel-store/internal/reconcile"
	"github.com/alexcel/alexcel-store/internal/view"
)

// Browser abstracts the hosting environment: the one-time location
// inspection at startup and the effects pages perform.
type Browser interface {
	// Path returns the current location path, inspected once at startup.
	Path() string
	// Query returns the current location query string values.
	Query() url.Values
	// Redirect replaces the current page with the given URL.
	Redirect(url string)
	// OpenTab opens the URL in a new browsing context.
	OpenTab(url string)
	// ScrollTop scrolls the page to the top.
	ScrollTop()
}

// StoreAPI is the full client surface of the store backend.
type StoreAPI interface {
	checkout.PreferenceCreator
	reconcile.PaymentValidator
}

// Page is the tagged union of renderable pages; one variant per view id.
type Page interface {
	viewID() view.ID
}

// LandingPage is the marketing front page.
type LandingPage struct {
	Templates []catalog.Item
	Bundles   []catalog.Item
}

// CoursesPage lists the course catalog.
type CoursesPage struct {
	Courses []catalog.Item
}

// TemplatesPage lists the spreadsheet templates.
type TemplatesPage struct {
	Templates []catalog.Item
}

// TemplateDetailPage shows one template.
type TemplateDetailPage struct {
	Item catalog.Item
}

// BundlesPage lists the bundle offers with their expanded components.
type BundlesPage struct {
	Bundles    []catalog.Item
	Components map[string][]catalog.Item
}

// CheckoutPage hosts the buyer-details form for the selected item.
type CheckoutPage struct {
	Controller *checkout.Controller
}

// PaymentSuccessPage hosts the payment reconciler.
type PaymentSuccessPage struct {
	Reconciler *reconcile.Reconciler
}

// PaymentFailedPage renders fixed failure guidance.
type PaymentFailedPage struct {
	Guidance reconcile.Guidance
}

// PaymentPendingPage renders fixed pending guidance.
type PaymentPendingPage struct {
	Guidance reconcile.Guidance
}

func (LandingPage) viewID() view.ID        { return view.Landing }
func (CoursesPage) viewID() view.ID        { return view.Courses }
func (TemplatesPage) viewID() view.ID      { return view.Templates }
func (TemplateDetailPage) viewID() view.ID { return view.TemplateDetail }
func (BundlesPage) viewID() view.ID        { return view.Bundles }
func (CheckoutPage) viewID() view.ID       { return view.Checkout }
func (PaymentSuccessPage) viewID() view.ID { return view.PaymentSuccess }
func (PaymentFailedPage) viewID() view.ID  { return view.PaymentFailed }
func (PaymentPendingPage) viewID() view.ID { return view.PaymentPending }

// App is the storefront application state.
type App struct {
	router  *view.Router
	api     StoreAPI
	browser Browser

	// Per-page state, created on entry and discarded on navigation away.
	checkoutCtrl *checkout.Controller
	reconciler   *reconcile.Reconciler
}

// New builds the application, resolving the initial view from the browser
// location. When the location is a payment-return path the reconciler is
// mounted with the location's query parameters.
func New(api StoreAPI, browser Browser) *App {
	a := &App{api: api, browser: browser}
	a.router = view.NewRouter(browser.Path(), func(view.ID) {
		browser.ScrollTop()
	})
	if a.router.Current() == view.PaymentSuccess {
		a.reconciler = reconcile.NewReconciler(browser.Query(), api, browser)
	}
	return a
}

// Start performs the post-load work: the validate-payment call when the
// initial view is the success return page. Issued exactly once.
func (a *App) Start(ctx context.Context) {
	if a.reconciler != nil {
		a.reconciler.Run(ctx)
	}
}

// Router exposes the view router for navigation.
func (a *App) Router() *view.Router { return a.router }

// Navigate changes the view, discarding the per-page state of the page
// being left.
func (a *App) Navigate(id view.ID) {
	a.checkoutCtrl = nil
	a.router.SetView(id)
}

// SelectItem records a catalog pick and navigates to its page.
func (a *App) SelectItem(kind view.SelectionKind, itemID string, to view.ID) {
	a.router.Select(kind, itemID)
	a.Navigate(to)
}

// CurrentPage maps the active view to its page. Exhaustive over the view
// enum; anything else renders the landing page.
func (a *App) CurrentPage() Page {
	switch a.router.Current() {
	case view.Landing:
		return LandingPage{Templates: catalog.Templates(), Bundles: catalog.Bundles()}
	case view.Courses:
		return CoursesPage{Courses: catalog.Courses()}
	case view.Templates:
		return TemplatesPage{Templates: catalog.Templates()}
	case view.TemplateDetail:
		return TemplateDetailPage{Item: a.selectedItem()}
	case view.Bundles:
		comps := make(map[string][]catalog.Item)
		for _, b := range catalog.Bundles() {
			comps[b.ID] = catalog.BundleComponents(b)
		}
		return BundlesPage{Bundles: catalog.Bundles(), Components: comps}
	case view.Checkout:
		if a.checkoutCtrl == nil {
			a.checkoutCtrl = checkout.NewController(a.selectedItem(), a.api, a.browser)
		}
		return CheckoutPage{Controller: a.checkoutCtrl}
	case view.PaymentSuccess:
		if a.reconciler == nil {
			a.reconciler = reconcile.NewReconciler(a.browser.Query(), a.api, a.browser)
		}
		return PaymentSuccessPage{Reconciler: a.reconciler}
	case view.PaymentFailed:
		return PaymentFailedPage{Guidance: reconcile.FailedGuidance()}
	case view.PaymentPending:
		return PaymentPendingPage{Guidance: reconcile.PendingGuidance()}
	}
	return LandingPage{Templates: catalog.Templates(), Bundles: catalog.Bundles()}
}

// selectedItem resolves the routed selection against the catalog, falling
// back to the first template when nothing was picked.
func (a *App) selectedItem() catalog.Item {
	sel := a.router.Selection()
	if !sel.Zero() {
		if it, ok := catalog.ItemByID(sel.ItemID); ok {
			return it
		}
	}
	return catalog.Templates()[0]
}
