package view

// SelectionKind tags what the buyer picked before navigating.
type SelectionKind string

const (
	SelectTemplate SelectionKind = "template"
	SelectBundle   SelectionKind = "bundle"
	SelectCourse   SelectionKind = "course"
)

// Selection parameterizes detail and checkout pages. It is set when the
// buyer picks an item, read once by the next page, and cleared when the
// buyer navigates away from that page.
type Selection struct {
	Kind   SelectionKind
	ItemID string
}

// Zero reports whether no selection is held.
func (s Selection) Zero() bool { return s.ItemID == "" }

// Router holds the current view and selection. All navigation after the
// initial path inspection goes through SetView; the router never touches
// the URL again. Driven from a single event loop, so it is not safe for
// concurrent use.
type Router struct {
	current   ID
	selection Selection
	// selHops counts navigations since the selection was set. The first
	// hop is the page the selection parameterizes; the second leaves it.
	selHops  int
	onChange func(ID)
}

// NewRouter builds a router whose initial view is resolved from the given
// browser path: one of the payment-return paths maps to its outcome view,
// anything else lands on the landing page. onChange fires on every view
// change (the original scrolls to top here); nil is allowed.
func NewRouter(initialPath string, onChange func(ID)) *Router {
	r := &Router{current: Landing, onChange: onChange}
	if id, ok := FromPath(initialPath); ok {
		r.current = id
	}
	if r.onChange != nil {
		r.onChange(r.current)
	}
	return r
}

// Current returns the active view.
func (r *Router) Current() ID { return r.current }

// SetView navigates to the given view. Ids outside the closed set
// normalize to the landing page instead of erroring.
func (r *Router) SetView(id ID) {
	if !id.Valid() {
		id = Landing
	}
	if !r.selection.Zero() {
		r.selHops++
		if r.selHops > 1 {
			r.selection = Selection{}
			r.selHops = 0
		}
	}
	r.current = id
	if r.onChange != nil {
		r.onChange(r.current)
	}
}

// Select records the buyer's pick for the next page to consume.
func (r *Router) Select(kind SelectionKind, itemID string) {
	r.selection = Selection{Kind: kind, ItemID: itemID}
	r.selHops = 0
}

// Selection returns the held selection without consuming it.
func (r *Router) Selection() Selection { return r.selection }

// TakeSelection returns the held selection and clears it. A second call
// yields the zero selection.
func (r *Router) TakeSelection() Selection {
	s := r.selection
	r.selection = Selection{}
	r.selHops = 0
	return s
}
