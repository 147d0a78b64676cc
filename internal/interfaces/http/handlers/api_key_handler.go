package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/interfaces/http/middleware"
	"jadara-labs.backend/internal/interfaces/http/response"
	"jadara-labs.backend/internal/usecases"
)

type apiKeyService interface {
	CreateApiKey(ctx context.Context, userID uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error)
	ListApiKeys(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKey, error)
	RevokeApiKey(ctx context.Context, userID, id uuid.UUID) error
	DeleteApiKey(ctx context.Context, userID, id uuid.UUID) error
}

// ApiKeyHandler handles API key management endpoints
type ApiKeyHandler struct {
	apiKeyUsecase apiKeyService
}

// NewApiKeyHandler creates a new API key handler
func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyUsecase: apiKeyUsecase}
}

// Create mints a new key; the raw value appears only in this response
// POST /api/v1/keys
func (h *ApiKeyHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.CreateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.apiKeyUsecase.CreateApiKey(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// List returns the user's keys with masked values
// GET /api/v1/keys
func (h *ApiKeyHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	keys, err := h.apiKeyUsecase.ListApiKeys(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if keys == nil {
		keys = []*entities.ApiKey{}
	}

	response.Success(c, http.StatusOK, gin.H{"keys": keys})
}

// Revoke permanently disables a key
// POST /api/v1/keys/:id/revoke
func (h *ApiKeyHandler) Revoke(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	keyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid key ID"))
		return
	}

	if err := h.apiKeyUsecase.RevokeApiKey(c.Request.Context(), userID, keyID); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("API key not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "API key revoked"})
}

// Delete removes a key
// DELETE /api/v1/keys/:id
func (h *ApiKeyHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	keyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid key ID"))
		return
	}

	if err := h.apiKeyUsecase.DeleteApiKey(c.Request.Context(), userID, keyID); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("API key not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "API key deleted"})
}
