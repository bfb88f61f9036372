// Package api contains the HTTP handlers and routing for the store backend.
package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, ginMode, frontendURL string) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware(frontendURL))
	router.Use(RequestIDMiddleware())

	// Health check (public)
	router.GET("/health", handler.Health)

	api := router.Group("/api")
	{
		payments := api.Group("/payments")
		{
			payments.POST("/create-preference/", handler.CreatePreference)
			payments.GET("/validate/", handler.ValidatePayment)
			payments.GET("/download/:order_id/", handler.Download)
			// Called by Mercado Pago; secured by the x-signature header,
			// not by CORS.
			payments.POST("/webhook/", handler.HandleWebhook)
			payments.GET("/health/", handler.Health)
		}

		catalog := api.Group("/catalog")
		{
			catalog.GET("/items/", handler.ListItems)
			catalog.GET("/items/:id/", handler.GetItem)
		}
	}

	return router
}
