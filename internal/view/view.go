// Package view implements the client-side view state: the closed set of
// page identifiers, one-time resolution of payment-return paths, and the
// in-memory router that drives all navigation after the initial load.
package view

// ID identifies the page currently shown. Exactly one ID is active at a
// time; every ID maps to a renderable page.
type ID string

const (
	Landing        ID = "landing"
	Courses        ID = "courses"
	Templates      ID = "templates"
	TemplateDetail ID = "template-detail"
	Bundles        ID = "bundles"
	Checkout       ID = "checkout"
	PaymentSuccess ID = "payment-success"
	PaymentFailed  ID = "payment-failed"
	PaymentPending ID = "payment-pending"
)

// AllViews lists every member of the closed set.
var AllViews = []ID{
	Landing, Courses, Templates, TemplateDetail, Bundles,
	Checkout, PaymentSuccess, PaymentFailed, PaymentPending,
}

// Valid reports whether id belongs to the closed set.
func (id ID) Valid() bool {
	switch id {
	case Landing, Courses, Templates, TemplateDetail, Bundles,
		Checkout, PaymentSuccess, PaymentFailed, PaymentPending:
		return true
	}
	return false
}

func (id ID) String() string { return string(id) }

// Reserved payment-return paths. Mercado Pago redirects buyers to these
// after checkout; they are the only paths that influence the initial view.
const (
	PathPaymentSuccess = "/pago-exitoso"
	PathPaymentFailed  = "/pago-fallido"
	PathPaymentPending = "/pago-pendiente"
)

// FromPath resolves a browser path to an initial view. Only the three
// payment-return paths resolve; every other path reports no match and the
// caller falls back to the landing view. Evaluated once at startup, never
// during in-memory navigation.
func FromPath(path string) (ID, bool) {
	switch path {
	case PathPaymentSuccess:
		return PaymentSuccess, true
	case PathPaymentFailed:
		return PaymentFailed, true
	case PathPaymentPending:
		return PaymentPending, true
	}
	return "", false
}
