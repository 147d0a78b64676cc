package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"jadara-labs.backend/internal/interfaces/http/handlers"
	"jadara-labs.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	walletHandler      *handlers.WalletHandler
	smsHandler         *handlers.SmsHandler
	webhookHandler     *handlers.WebhookHandler
	apiKeyHandler      *handlers.ApiKeyHandler
	jwtAuthMiddleware  gin.HandlerFunc
	dualAuthMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.dualAuthMiddleware, d.authHandler.GetProfile)
		}

		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(d.dualAuthMiddleware)
		{
			wallet.GET("/balance", d.walletHandler.GetBalance)
			wallet.GET("/transactions", d.walletHandler.ListTransactions)
			wallet.POST("/topup/initialize", middleware.IdempotencyMiddleware(), d.walletHandler.InitializeTopUp)
			wallet.POST("/topup/verify", d.walletHandler.VerifyTopUp)
		}

		// SMS routes (protected)
		sms := v1.Group("/sms")
		sms.Use(d.dualAuthMiddleware)
		{
			sms.POST("/send", middleware.IdempotencyMiddleware(), d.smsHandler.Send)
			sms.GET("/logs", d.smsHandler.ListLogs)
		}

		// API key management (session auth only; a key cannot mint keys)
		apiKeys := v1.Group("/keys")
		apiKeys.Use(d.jwtAuthMiddleware)
		{
			apiKeys.POST("", d.apiKeyHandler.Create)
			apiKeys.GET("", d.apiKeyHandler.List)
			apiKeys.POST("/:id/revoke", d.apiKeyHandler.Revoke)
			apiKeys.DELETE("/:id", d.apiKeyHandler.Delete)
		}

		// Payment gateway callbacks (authenticated by signature, not session)
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/payment", d.webhookHandler.HandlePaymentWebhook)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "jadara-labs-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key, X-Request-ID, Idempotency-Key")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}
