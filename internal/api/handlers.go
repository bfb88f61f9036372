// Package api contains the HTTP handlers and routing for the store backend.
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexcel/alexcel-store/internal/catalog"
	"github.com/alexcel/alexcel-store/internal/domain"
	"github.com/alexcel/alexcel-store/internal/payment"
)

// Handler contains the HTTP handlers for the store API.
type Handler struct {
	payments *payment.Service
}

// NewHandler creates a new API handler with the payment service.
func NewHandler(payments *payment.Service) *Handler {
	return &Handler{payments: payments}
}

// CreatePreference handles POST /api/payments/create-preference/
// Registers an order and returns the Mercado Pago redirect URLs.
func (h *Handler) CreatePreference(c *gin.Context) {
	var req domain.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.PreferenceResponse{
			Success:   false,
			Error:     "Cuerpo de la solicitud inválido",
			ErrorCode: "VALIDATION_ERROR",
		})
		return
	}

	resp, err := h.payments.CreatePreference(c.Request.Context(), req)
	if err != nil {
		log.Printf("CreatePreference error: %v", err)
		c.JSON(http.StatusInternalServerError, domain.PreferenceResponse{
			Success:   false,
			Error:     "Error interno del servidor",
			ErrorCode: "INTERNAL_ERROR",
		})
		return
	}

	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidatePayment handles GET /api/payments/validate/
// Mercado Pago's return URLs use different parameter names depending on
// the checkout flow, so both spellings are accepted.
func (h *Handler) ValidatePayment(c *gin.Context) {
	paymentID := c.Query("payment_id")
	if paymentID == "" {
		paymentID = c.Query("collection_id")
	}
	status := c.Query("status")
	if status == "" {
		status = c.Query("collection_status")
	}
	externalReference := c.Query("external_reference")

	if paymentID == "" || externalReference == "" {
		c.JSON(http.StatusBadRequest, domain.ValidateResult{
			Success: false,
			Error:   "Faltan parámetros del pago",
		})
		return
	}

	result, err := h.payments.ValidatePayment(c.Request.Context(), paymentID, externalReference, status)
	if err != nil {
		var svcErr *domain.ServiceError
		code := http.StatusInternalServerError
		msg := "Error interno del servidor"
		if errors.As(err, &svcErr) {
			msg = svcErr.Message
			switch {
			case errors.Is(err, domain.ErrOrderNotFound):
				code = http.StatusNotFound
			case errors.Is(err, domain.ErrPaymentGatewayError):
				code = http.StatusBadGateway
			}
		}
		log.Printf("ValidatePayment error for order %s: %v", externalReference, err)
		c.JSON(code, domain.ValidateResult{Success: false, Error: msg})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Download handles GET /api/payments/download/:order_id/
// Serves the purchased file when the token checks out.
func (h *Handler) Download(c *gin.Context) {
	orderID := c.Param("order_id")
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Token de descarga no proporcionado",
		})
		return
	}

	filePath, fileName, err := h.payments.AuthorizeDownload(c.Request.Context(), orderID, token)
	if err != nil {
		var svcErr *domain.ServiceError
		code := http.StatusInternalServerError
		msg := "Error interno del servidor"
		if errors.As(err, &svcErr) {
			msg = svcErr.Message
			switch {
			case errors.Is(err, domain.ErrInvalidDownloadToken), errors.Is(err, domain.ErrPaymentNotApproved):
				code = http.StatusForbidden
			case errors.Is(err, domain.ErrOrderNotFound):
				code = http.StatusNotFound
			default:
				if svcErr.Code == "FILE_MISSING" {
					code = http.StatusNotFound
				}
			}
		}
		log.Printf("Download denied for order %s: %v", orderID, err)
		c.JSON(code, gin.H{"success": false, "error": msg})
		return
	}

	c.FileAttachment(filePath, fileName)
}

// HandleWebhook handles POST /api/payments/webhook/
// Receives Mercado Pago IPN notifications. Always answers 200 so MP does
// not retry; failures are logged.
func (h *Handler) HandleWebhook(c *gin.Context) {
	xSignature := c.GetHeader("x-signature")
	xRequestID := c.GetHeader("x-request-id")

	var notification domain.WebhookNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		// MP sends several notification shapes, accept and log
		log.Printf("Webhook parse error: %v", err)
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	if err := h.payments.ProcessWebhook(c.Request.Context(), notification, xSignature, xRequestID); err != nil {
		log.Printf("Webhook processing error: %v", err)
		c.JSON(http.StatusOK, gin.H{"status": "processed_with_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

// ListItems handles GET /api/catalog/items/
func (h *Handler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"courses":   catalog.Courses(),
		"templates": catalog.Templates(),
		"bundles":   catalog.Bundles(),
	})
}

// GetItem handles GET /api/catalog/items/:id/
func (h *Handler) GetItem(c *gin.Context) {
	item, ok := catalog.ItemByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Producto no encontrado",
		})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "alexcel-store",
		"version": "1.0.0",
	})
}
