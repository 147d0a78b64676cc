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
	"jadara-labs.backend/pkg/utils"
)

type dispatchService interface {
	Send(ctx context.Context, userID uuid.UUID, input *entities.SendSmsInput) (*entities.SendSmsResponse, error)
	ListLogs(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.SmsLog, *utils.PaginationMeta, error)
}

// SmsHandler handles SMS dispatch endpoints
type SmsHandler struct {
	dispatchUsecase dispatchService
}

// NewSmsHandler creates a new SMS handler
func NewSmsHandler(dispatchUsecase *usecases.DispatchUsecase) *SmsHandler {
	return &SmsHandler{dispatchUsecase: dispatchUsecase}
}

// Send dispatches a message to a batch of recipients
// POST /api/v1/sms/send
func (h *SmsHandler) Send(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.SendSmsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.dispatchUsecase.Send(c.Request.Context(), userID, &input)
	if err != nil {
		if err == domainerrors.ErrNoValidRecipients {
			response.Error(c, domainerrors.BadRequest("No valid recipients"))
			return
		}
		if err == domainerrors.ErrInvalidInput {
			response.Error(c, domainerrors.BadRequest("Message is required"))
			return
		}
		if err == domainerrors.ErrInsufficientFunds {
			response.Error(c, domainerrors.PaymentRequired("Insufficient balance for this batch"))
			return
		}
		if err == domainerrors.ErrWalletNotFound {
			response.Error(c, domainerrors.NotFound("Wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	sent, failed := 0, 0
	for _, r := range resp.Results {
		if r.Status == entities.SmsStatusSent {
			sent++
		} else {
			failed++
		}
	}
	middleware.CountSmsDispatch("sent", sent)
	middleware.CountSmsDispatch("failed", failed)

	response.Success(c, http.StatusOK, resp)
}

// ListLogs returns the user's dispatch history
// GET /api/v1/sms/logs
func (h *SmsHandler) ListLogs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	params := paginationFromQuery(c)
	logs, meta, err := h.dispatchUsecase.ListLogs(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	if logs == nil {
		logs = []*entities.SmsLog{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": meta,
	})
}
