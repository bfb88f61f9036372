package view

import "testing"

func TestFromPath(t *testing.T) {
	cases := []struct {
		path string
		want ID
		ok   bool
	}{
		{"/pago-exitoso", PaymentSuccess, true},
		{"/pago-fallido", PaymentFailed, true},
		{"/pago-pendiente", PaymentPending, true},
		{"/", "", false},
		{"/checkout", "", false},
		{"/pago-exitoso/", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := FromPath(c.path)
		if ok != c.ok || got != c.want {
			t.Errorf("FromPath(%q) = %q,%v want %q,%v", c.path, got, ok, c.want, c.ok)
		}
	}
}

func TestRouterInitialView(t *testing.T) {
	if r := NewRouter("/", nil); r.Current() != Landing {
		t.Fatalf("expected landing on plain path, got %s", r.Current())
	}
	if r := NewRouter("/pago-pendiente", nil); r.Current() != PaymentPending {
		t.Fatalf("expected pending outcome view, got %s", r.Current())
	}
}

func TestRouterNormalizesUnknownView(t *testing.T) {
	r := NewRouter("/", nil)
	r.SetView(Checkout)
	r.SetView(ID("totally-bogus"))
	if r.Current() != Landing {
		t.Fatalf("unknown view must fall back to landing, got %s", r.Current())
	}
}

func TestRouterFiresChangeHook(t *testing.T) {
	var fired []ID
	r := NewRouter("/", func(id ID) { fired = append(fired, id) })
	r.SetView(Templates)
	r.SetView(TemplateDetail)

	want := []ID{Landing, Templates, TemplateDetail}
	if len(fired) != len(want) {
		t.Fatalf("expected %d hook calls, got %d", len(want), len(fired))
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("hook call %d: expected %s got %s", i, want[i], fired[i])
		}
	}
}

func TestSelectionReadOnce(t *testing.T) {
	r := NewRouter("/", nil)
	r.Select(SelectTemplate, "tracker-habitos")
	r.SetView(TemplateDetail)

	sel := r.TakeSelection()
	if sel.Kind != SelectTemplate || sel.ItemID != "tracker-habitos" {
		t.Fatalf("unexpected selection %+v", sel)
	}
	if !r.TakeSelection().Zero() {
		t.Fatal("second read must yield the zero selection")
	}
}

func TestSelectionClearedOnNavigationAway(t *testing.T) {
	r := NewRouter("/", nil)
	r.Select(SelectBundle, "pack-productividad")
	r.SetView(Checkout) // the page the selection parameterizes
	if r.Selection().Zero() {
		t.Fatal("selection must survive the navigation it was set for")
	}
	r.SetView(Landing) // navigating away drops it
	if !r.Selection().Zero() {
		t.Fatalf("selection must clear on navigation away, got %+v", r.Selection())
	}
}

func TestAllViewsValid(t *testing.T) {
	for _, id := range AllViews {
		if !id.Valid() {
			t.Errorf("view %s should be valid", id)
		}
	}
	if ID("nope").Valid() {
		t.Error("unknown id must not validate")
	}
}
