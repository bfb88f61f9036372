// Package notify delivers purchase emails through the Resend HTTP API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/alexcel/alexcel-store/internal/domain"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendSender implements domain.EmailSender using the Resend API.
// With no API key configured it logs and skips delivery, so local
// development works without credentials.
type ResendSender struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
}

// NewResendSender creates the sender. from is the verified sender address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendDownloadLink emails the buyer their download link.
func (s *ResendSender) SendDownloadLink(ctx context.Context, to, customerName, itemTitle, downloadURL string) error {
	if s.apiKey == "" {
		log.Printf("RESEND_API_KEY not set, skipping purchase email to %s", to)
		return nil
	}

	payload := resendRequest{
		From:    s.from,
		To:      []string{to},
		Subject: fmt.Sprintf("Tu compra: %s", itemTitle),
		HTML:    purchaseEmailHTML(customerName, itemTitle, downloadURL),
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return domain.NewServiceError(domain.ErrEmailDeliveryFailed,
			"failed to marshal email payload", "MARSHAL_ERROR")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return domain.NewServiceError(domain.ErrEmailDeliveryFailed,
			"failed to create request", "REQUEST_ERROR")
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.NewServiceError(domain.ErrEmailDeliveryFailed,
			"request failed: "+err.Error(), "HTTP_ERROR")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return domain.NewServiceError(domain.ErrEmailDeliveryFailed,
			fmt.Sprintf("Resend returned status %d: %s", resp.StatusCode, string(body)),
			"RESEND_ERROR")
	}

	return nil
}

func purchaseEmailHTML(customerName, itemTitle, downloadURL string) string {
	return fmt.Sprintf(`
		<h2>¡Gracias por tu compra, %s!</h2>
		<p>Ya podés descargar <strong>%s</strong> desde el siguiente enlace:</p>
		<p><a href="%s">Descargar ahora</a></p>
		<p>El enlace estará disponible durante 48 horas.</p>
	`, customerName, itemTitle, downloadURL)
}
