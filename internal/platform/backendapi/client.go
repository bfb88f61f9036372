// Package backendapi implements the HTTP client the storefront uses to
// talk to the store API: preference creation, payment validation and
// download link resolution.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexcel/alexcel-store/internal/domain"
)

// Client makes HTTP requests to the store API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a store API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreatePreference posts the checkout form to the create-preference
// endpoint and returns the provider redirect URLs.
// POST /api/payments/create-preference/
func (c *Client) CreatePreference(ctx context.Context, req domain.PreferenceRequest) (*domain.PreferenceResponse, error) {
	endpoint := fmt.Sprintf("%s/api/payments/create-preference/", c.baseURL)

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	// The endpoint answers the same JSON shape on success and on business
	// failure, so the body is decoded regardless of status code.
	var pref domain.PreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &pref, nil
}

// ValidatePayment asks the backend to reconcile a payment against
// Mercado Pago.
// GET /api/payments/validate/?payment_id=&external_reference=&status=
func (c *Client) ValidatePayment(ctx context.Context, paymentID, externalReference, status string) (*domain.ValidateResult, error) {
	q := url.Values{}
	q.Set("payment_id", paymentID)
	q.Set("external_reference", externalReference)
	q.Set("status", status)
	endpoint := fmt.Sprintf("%s/api/payments/validate/?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	var result domain.ValidateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to decode response (status %d): %s", resp.StatusCode, string(body))
	}
	return &result, nil
}

// DownloadURL resolves a relative download_url from a validate response
// into an absolute URL.
func (c *Client) DownloadURL(path string) string {
	return c.baseURL + path
}
