// Package payment implements the store's checkout and reconciliation
// business logic: preference creation, payment validation, download
// authorization and webhook processing.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexcel/alexcel-store/internal/catalog"
	"github.com/alexcel/alexcel-store/internal/domain"
	"github.com/alexcel/alexcel-store/internal/download"
	"github.com/alexcel/alexcel-store/internal/order"
)

// Service orchestrates between the order repository, the payment gateway
// and the email sender.
type Service struct {
	orders        order.Repository
	gateway       domain.PaymentGateway
	emails        domain.EmailSender
	tokens        *download.Tokens
	productDir    string
	webhookSecret string
}

// NewService creates the payment service with its dependencies.
func NewService(
	orders order.Repository,
	gateway domain.PaymentGateway,
	emails domain.EmailSender,
	tokens *download.Tokens,
	productDir string,
	webhookSecret string,
) *Service {
	return &Service{
		orders:        orders,
		gateway:       gateway,
		emails:        emails,
		tokens:        tokens,
		productDir:    productDir,
		webhookSecret: webhookSecret,
	}
}

// CreatePreference validates the checkout request, registers the order
// and creates the Mercado Pago preference. Business failures come back
// as an unsuccessful response, not as an error.
func (s *Service) CreatePreference(ctx context.Context, req domain.PreferenceRequest) (*domain.PreferenceResponse, error) {
	if resp := validateRequest(&req); resp != nil {
		return resp, nil
	}

	itemID := req.ProductID()
	description := req.Title
	if it, ok := catalog.ItemByID(itemID); ok {
		description = fmt.Sprintf("Acceso completo a: %s", it.Title)
	}

	ord, err := s.orders.Create(ctx, order.CreateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Document:  req.Document,
		Email:     req.Email,
		ItemID:    itemID,
		ItemTitle: req.Title,
		Price:     req.Price,
	})
	if err != nil {
		log.Printf("Failed to create order for %s: %v", req.Email, err)
		return &domain.PreferenceResponse{
			Success:   false,
			Error:     "No se pudo registrar la orden",
			ErrorCode: "ORDER_ERROR",
		}, nil
	}

	pref, err := s.gateway.CreatePreference(ctx, domain.PreferenceSpec{
		OrderID:     ord.ID,
		ItemID:      itemID,
		Title:       req.Title,
		Description: description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Document:    digitsOnly(req.Document),
		Email:       req.Email,
	})
	if err != nil {
		log.Printf("Failed to create MP preference for order %s: %v", ord.ID, err)
		if cancelErr := s.orders.SetStatus(ctx, ord.ID, order.StatusCancelled); cancelErr != nil {
			log.Printf("Failed to cancel order %s: %v", ord.ID, cancelErr)
		}
		return &domain.PreferenceResponse{
			Success:   false,
			Error:     "Error al crear la preferencia de pago",
			ErrorCode: "GATEWAY_ERROR",
		}, nil
	}

	if err := s.orders.SetPreferenceID(ctx, ord.ID, pref.ID); err != nil {
		log.Printf("Failed to store preference id for order %s: %v", ord.ID, err)
	}

	log.Printf("Created preference %s for order %s, amount: %.2f", pref.ID, ord.ID, req.Price)

	return &domain.PreferenceResponse{
		Success:          true,
		InitPoint:        pref.InitPoint,
		SandboxInitPoint: pref.SandboxInitPoint,
		PreferenceID:     pref.ID,
		OrderID:          ord.ID,
	}, nil
}

// ValidatePayment reconciles a returned payment: it loads the order named
// by external_reference, asks Mercado Pago for the authoritative payment
// state, updates the order and builds the outcome the storefront renders.
// The statusHint from the return URL is never trusted.
func (s *Service) ValidatePayment(ctx context.Context, paymentID, externalReference, statusHint string) (*domain.ValidateResult, error) {
	ord, err := s.orders.GetByID(ctx, externalReference)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return nil, domain.NewServiceError(domain.ErrOrderNotFound,
				"Orden no encontrada", "ORDER_NOT_FOUND")
		}
		return nil, domain.NewServiceError(err, "failed to load order", "ORDER_ERROR")
	}

	info, err := s.gateway.GetPaymentInfo(ctx, paymentID)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"No se pudo verificar el pago con Mercado Pago", "MP_PAYMENT_ERROR")
	}

	status := order.FromPaymentStatus(info.Status)
	if err := s.orders.UpdatePayment(ctx, ord.ID, paymentID, status); err != nil {
		log.Printf("Failed to update order %s after validation: %v", ord.ID, err)
	}

	if info.Status != "approved" {
		log.Printf("Payment %s for order %s not approved: %s (hint was %q)",
			paymentID, ord.ID, info.Status, statusHint)
		return &domain.ValidateResult{
			Success:      false,
			PaymentID:    paymentID,
			Status:       info.Status,
			StatusDetail: info.StatusDetail,
			OrderID:      ord.ID,
			Error:        fmt.Sprintf("El pago no fue aprobado. Estado: %s", info.Status),
		}, nil
	}

	token, err := s.tokens.Issue(ord.ID, paymentID)
	if err != nil {
		return nil, domain.NewServiceError(err, "failed to issue download token", "TOKEN_ERROR")
	}
	downloadURL := fmt.Sprintf("/api/payments/download/%s/?token=%s", ord.ID, token)

	// Delivery is best effort; the buyer still has the in-page download.
	if err := s.emails.SendDownloadLink(ctx, ord.Email, ord.FullName(), ord.ItemTitle, downloadURL); err != nil {
		log.Printf("Failed to email download link for order %s: %v", ord.ID, err)
	}

	log.Printf("Payment %s validated for order %s, amount: %.2f", paymentID, ord.ID, info.Amount)

	return &domain.ValidateResult{
		Success:       true,
		PaymentID:     paymentID,
		Status:        info.Status,
		StatusDetail:  info.StatusDetail,
		Amount:        info.Amount,
		OrderID:       ord.ID,
		CustomerName:  ord.FullName(),
		CustomerEmail: ord.Email,
		CourseTitle:   ord.ItemTitle,
		Message:       "¡Pago procesado exitosamente! Ya puedes descargar tu curso.",
		DownloadURL:   downloadURL,
	}, nil
}

// AuthorizeDownload verifies a download token against the order and
// returns the product file to serve.
func (s *Service) AuthorizeDownload(ctx context.Context, orderID, tokenString string) (filePath, fileName string, err error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil || claims.OrderID != orderID {
		return "", "", domain.NewServiceError(domain.ErrInvalidDownloadToken,
			"Token de descarga inválido", "INVALID_TOKEN")
	}

	ord, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return "", "", domain.NewServiceError(domain.ErrOrderNotFound,
				"Orden no encontrada", "ORDER_NOT_FOUND")
		}
		return "", "", domain.NewServiceError(err, "failed to load order", "ORDER_ERROR")
	}

	if ord.Status != order.StatusApproved {
		return "", "", domain.NewServiceError(domain.ErrPaymentNotApproved,
			fmt.Sprintf("El pago no está aprobado. Estado actual: %s", ord.Status), "NOT_APPROVED")
	}

	fileName = ord.ItemID + ".zip"
	filePath = filepath.Join(s.productDir, fileName)
	if _, statErr := os.Stat(filePath); statErr != nil {
		return "", "", domain.NewServiceError(statErr,
			"Archivo del curso no encontrado. Contacta al soporte.", "FILE_MISSING")
	}
	return filePath, fileName, nil
}

// ProcessWebhook handles Mercado Pago IPN notifications, keeping the
// order store current when the buyer never comes back to the site.
func (s *Service) ProcessWebhook(ctx context.Context, n domain.WebhookNotification, xSignature, xRequestID string) error {
	if s.webhookSecret != "" {
		if !ValidateSignature(xSignature, xRequestID, n.Data.ID, s.webhookSecret) {
			log.Printf("Webhook signature validation failed for data id %s", n.Data.ID)
			return domain.ErrWebhookValidationFailed
		}
	}

	if n.Type != "payment" {
		log.Printf("Ignoring webhook type: %s", n.Type)
		return nil
	}

	info, err := s.gateway.GetPaymentInfo(ctx, n.Data.ID)
	if err != nil {
		return domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to get payment info", "WEBHOOK_GATEWAY_ERROR")
	}

	if info.ExternalReference == "" {
		log.Printf("Webhook payment %s carries no external reference, skipping", n.Data.ID)
		return nil
	}

	status := order.FromPaymentStatus(info.Status)
	if err := s.orders.UpdatePayment(ctx, info.ExternalReference, info.PaymentID, status); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			log.Printf("Webhook for unknown order %s, ignoring", info.ExternalReference)
			return nil
		}
		return domain.NewServiceError(err, "failed to update order from webhook", "WEBHOOK_ORDER_ERROR")
	}

	log.Printf("Webhook processed: payment %s, order %s, event %s",
		info.PaymentID, info.ExternalReference, statusEvent(info.Status))
	return nil
}

// statusEvent maps an MP payment status to an event name for logging.
func statusEvent(status string) string {
	switch status {
	case "approved":
		return "payment.approved"
	case "pending", "in_process":
		return "payment.pending"
	case "rejected":
		return "payment.rejected"
	case "cancelled":
		return "payment.cancelled"
	case "refunded":
		return "payment.refunded"
	default:
		return "payment.updated"
	}
}

// validateRequest applies the server-side checkout rules, returning an
// unsuccessful response when a rule fails. Mutates the request to its
// trimmed form.
func validateRequest(req *domain.PreferenceRequest) *domain.PreferenceResponse {
	fail := func(msg string) *domain.PreferenceResponse {
		return &domain.PreferenceResponse{Success: false, Error: msg, ErrorCode: "VALIDATION_ERROR"}
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Document = strings.TrimSpace(req.Document)
	req.Email = strings.TrimSpace(req.Email)

	if req.FirstName == "" {
		return fail("El nombre es requerido")
	}
	if req.LastName == "" {
		return fail("El apellido es requerido")
	}
	if req.Document == "" {
		return fail("El DNI/CUIT es requerido")
	}
	if d := digitsOnly(req.Document); d == "" || len(d) != len(stripSeparators(req.Document)) {
		return fail("El DNI/CUIT debe contener solo números")
	}
	if req.Email == "" {
		return fail("El email es requerido")
	}
	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		return fail("El formato del email no es válido")
	}
	if req.Price <= 0 {
		return fail("El precio debe ser mayor a 0")
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	return nil
}

// digitsOnly drops everything but digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripSeparators drops the formatting characters a DNI/CUIT may carry.
func stripSeparators(s string) string {
	return strings.NewReplacer(".", "", "-", "").Replace(s)
}
