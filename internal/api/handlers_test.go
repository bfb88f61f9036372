package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/alexcel/alexcel-store/internal/domain"
	"github.com/alexcel/alexcel-store/internal/download"
	"github.com/alexcel/alexcel-store/internal/order"
	"github.com/alexcel/alexcel-store/internal/payment"
)

type memRepo struct {
	orders map[string]order.Order
}

func (r *memRepo) Create(_ context.Context, p order.CreateParams) (order.Order, error) {
	o := order.Order{
		ID:        "ord-1",
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		ItemID:    p.ItemID,
		ItemTitle: p.ItemTitle,
		Price:     p.Price,
		Status:    order.StatusPending,
	}
	r.orders[o.ID] = o
	return o, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return o, nil
}

func (r *memRepo) SetPreferenceID(_ context.Context, id, preferenceID string) error {
	o := r.orders[id]
	o.PreferenceID = preferenceID
	r.orders[id] = o
	return nil
}

func (r *memRepo) UpdatePayment(_ context.Context, id, paymentID string, status order.Status) error {
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.PaymentID = paymentID
	o.Status = status
	r.orders[id] = o
	return nil
}

func (r *memRepo) SetStatus(_ context.Context, id string, status order.Status) error {
	o := r.orders[id]
	o.Status = status
	r.orders[id] = o
	return nil
}

type stubGateway struct {
	info *domain.PaymentInfo
}

func (g *stubGateway) CreatePreference(_ context.Context, spec domain.PreferenceSpec) (*domain.GatewayPreference, error) {
	return &domain.GatewayPreference{
		ID:               "pref-1",
		InitPoint:        "https://mp/prod",
		SandboxInitPoint: "https://mp/sandbox",
	}, nil
}

func (g *stubGateway) GetPaymentInfo(_ context.Context, paymentID string) (*domain.PaymentInfo, error) {
	return g.info, nil
}

type noopSender struct{}

func (noopSender) SendDownloadLink(context.Context, string, string, string, string) error {
	return nil
}

func newTestRouter(t *testing.T, gw *stubGateway) (*gin.Engine, *memRepo) {
	t.Helper()
	repo := &memRepo{orders: make(map[string]order.Order)}
	svc := payment.NewService(repo, gw, noopSender{}, download.NewTokens("test-secret"), t.TempDir(), "")
	return SetupRouter(NewHandler(svc), gin.TestMode, ""), repo
}

func TestCreatePreferenceEndpoint(t *testing.T) {
	router, repo := newTestRouter(t, &stubGateway{})

	body := `{"first_name":"Ana","last_name":"Gomez","document":"12345678",` +
		`"email":"ana@example.com","item_id":"tracker-habitos","title":"Tracker","price":1,"quantity":1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/create-preference/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp domain.PreferenceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.SandboxInitPoint != "https://mp/sandbox" || resp.OrderID != "ord-1" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if _, ok := repo.orders["ord-1"]; !ok {
		t.Error("order was not persisted")
	}
}

func TestCreatePreferenceEndpointRejectsInvalid(t *testing.T) {
	router, _ := newTestRouter(t, &stubGateway{})

	body := `{"first_name":"","last_name":"Gomez","document":"12345678",` +
		`"email":"ana@example.com","item_id":"tracker-habitos","title":"Tracker","price":1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/create-preference/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var resp domain.PreferenceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "El nombre es requerido" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestValidateEndpointParamSynonyms(t *testing.T) {
	gw := &stubGateway{info: &domain.PaymentInfo{PaymentID: "987", Status: "approved", Amount: 1}}
	router, repo := newTestRouter(t, gw)
	repo.orders["ord-1"] = order.Order{
		ID: "ord-1", FirstName: "Ana", LastName: "Gomez",
		Email: "ana@example.com", ItemID: "tracker-habitos",
		ItemTitle: "Tracker", Status: order.StatusPending,
	}

	for _, target := range []string{
		"/api/payments/validate/?payment_id=987&external_reference=ord-1&status=approved",
		"/api/payments/validate/?collection_id=987&external_reference=ord-1&collection_status=approved",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body = %s", target, w.Code, w.Body.String())
		}
		var res domain.ValidateResult
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatal(err)
		}
		if !res.Success || res.CustomerName != "Ana Gomez" {
			t.Errorf("%s: unexpected result %+v", target, res)
		}
	}
}

func TestValidateEndpointMissingParams(t *testing.T) {
	router, _ := newTestRouter(t, &stubGateway{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payments/validate/?status=approved", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestValidateEndpointUnknownOrder(t *testing.T) {
	gw := &stubGateway{info: &domain.PaymentInfo{PaymentID: "987", Status: "approved"}}
	router, _ := newTestRouter(t, gw)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/payments/validate/?payment_id=987&external_reference=nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestDownloadEndpointRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t, &stubGateway{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payments/download/ord-1/", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payments/download/ord-1/?token=garbage", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("garbage token: status = %d", w.Code)
	}
}

func TestWebhookEndpointAlwaysAnswers200(t *testing.T) {
	gw := &stubGateway{info: &domain.PaymentInfo{PaymentID: "987", Status: "approved"}}
	router, _ := newTestRouter(t, gw)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook/",
		strings.NewReader(`{"type":"payment","data":{"id":"987"}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	// Unparseable bodies are acknowledged too, MP must not retry.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/payments/webhook/", strings.NewReader("not json"))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("bad body: status = %d", w.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, &stubGateway{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/items/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d", w.Code)
	}
	var listing struct {
		Courses   []json.RawMessage `json:"courses"`
		Templates []json.RawMessage `json:"templates"`
		Bundles   []json.RawMessage `json:"bundles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatal(err)
	}
	if len(listing.Templates) == 0 || len(listing.Courses) == 0 || len(listing.Bundles) == 0 {
		t.Errorf("catalog listing incomplete: %+v", listing)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/items/tracker-habitos/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get: status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/items/nope/", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown item: status = %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, &stubGateway{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
