package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendDownloadLink(t *testing.T) {
	var got resendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer srv.Close()

	s := NewResendSender("re_test_key", "store@alexcel.com")
	s.endpoint = srv.URL

	err := s.SendDownloadLink(context.Background(), "juan@example.com", "Juan Pérez",
		"Tracker de Hábitos", "http://localhost:8000/api/payments/download/1/?token=t")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if auth != "Bearer re_test_key" {
		t.Fatalf("expected bearer auth, got %q", auth)
	}
	if len(got.To) != 1 || got.To[0] != "juan@example.com" {
		t.Fatalf("unexpected recipients %v", got.To)
	}
	if got.Subject != "Tu compra: Tracker de Hábitos" {
		t.Fatalf("unexpected subject %q", got.Subject)
	}
}

func TestSendDownloadLinkSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"domain not verified"}`))
	}))
	defer srv.Close()

	s := NewResendSender("re_test_key", "store@alexcel.com")
	s.endpoint = srv.URL

	if err := s.SendDownloadLink(context.Background(), "a@b.com", "A", "T", "u"); err == nil {
		t.Fatal("expected delivery error")
	}
}

func TestSendSkippedWithoutAPIKey(t *testing.T) {
	s := NewResendSender("", "store@alexcel.com")
	if err := s.SendDownloadLink(context.Background(), "a@b.com", "A", "T", "u"); err != nil {
		t.Fatalf("expected silent skip, got %v", err)
	}
}
