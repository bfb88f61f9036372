// Alexcel Store Backend
//
// This is the main entry point for the store's payment backend.
// It wires up all dependencies and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexcel/alexcel-store/config"
	"github.com/alexcel/alexcel-store/internal/api"
	"github.com/alexcel/alexcel-store/internal/db"
	"github.com/alexcel/alexcel-store/internal/download"
	"github.com/alexcel/alexcel-store/internal/notify"
	"github.com/alexcel/alexcel-store/internal/order"
	"github.com/alexcel/alexcel-store/internal/payment"
	"github.com/alexcel/alexcel-store/internal/platform/mercadopago"
)

func main() {
	log.Println("Starting Alexcel Store backend...")

	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded: Port=%s, FrontendURL=%s", cfg.Server.Port, cfg.Store.FrontendURL)

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Wire up dependencies (manual dependency injection)
	//
	// Infrastructure layer
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		cancel()
		log.Fatalf("Database connection error: %v", err)
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		cancel()
		log.Fatalf("Schema migration error: %v", err)
	}
	cancel()
	defer pool.Close()

	orders := order.NewRepository(pool)
	gateway, err := mercadopago.NewAdapter(cfg.MercadoPago.AccessToken, cfg.Store.FrontendURL)
	if err != nil {
		log.Fatalf("Mercado Pago configuration error: %v", err)
	}
	emails := notify.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromAddress)
	tokens := download.NewTokens(cfg.Security.DownloadTokenSecret)

	// Service layer
	paymentService := payment.NewService(
		orders,
		gateway,
		emails,
		tokens,
		cfg.Store.ProductDir,
		cfg.Security.WebhookSecret,
	)

	// API layer
	handler := api.NewHandler(paymentService)
	router := api.SetupRouter(handler, cfg.Server.GinMode, cfg.Store.FrontendURL)

	// Start server in a goroutine
	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	go func() {
		log.Printf("Server listening on %s", serverAddr)
		if err := router.Run(serverAddr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

// validateConfig checks that required configuration values are set.
func validateConfig(cfg *config.Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Security.DownloadTokenSecret == "" {
		return fmt.Errorf("DOWNLOAD_TOKEN_SECRET is required")
	}
	if cfg.MercadoPago.AccessToken == "" {
		log.Println("Warning: MP_ACCESS_TOKEN not set")
	}
	if cfg.Security.WebhookSecret == "" {
		log.Println("Warning: MP_WEBHOOK_SECRET not set, webhook signatures will not be checked")
	}
	return nil
}
