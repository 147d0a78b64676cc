package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/usecases"
)

// SignatureHeader carries the gateway's HMAC over the raw body
const SignatureHeader = "x-paystack-signature"

type webhookService interface {
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

// WebhookHandler handles payment gateway callbacks
type WebhookHandler struct {
	topUpUsecase webhookService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(topUpUsecase *usecases.TopUpUsecase) *WebhookHandler {
	return &WebhookHandler{topUpUsecase: topUpUsecase}
}

// HandlePaymentWebhook receives gateway notifications. The body must be read
// raw so the signature check sees exactly the bytes the gateway signed.
// POST /api/v1/webhooks/payment
func (h *WebhookHandler) HandlePaymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read body"})
		return
	}

	signature := c.GetHeader(SignatureHeader)
	if err := h.topUpUsecase.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		if err == domainerrors.ErrInvalidSignature {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}
		if err == domainerrors.ErrInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed payload"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
