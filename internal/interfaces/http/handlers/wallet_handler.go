package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/interfaces/http/middleware"
	"jadara-labs.backend/internal/interfaces/http/response"
	"jadara-labs.backend/internal/usecases"
	"jadara-labs.backend/pkg/utils"
)

type ledgerService interface {
	Balance(ctx context.Context, userID uuid.UUID) (*entities.BalanceResponse, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.Transaction, *utils.PaginationMeta, error)
}

type topUpService interface {
	Initialize(ctx context.Context, userID uuid.UUID, input *entities.TopUpInitializeInput) (*entities.TopUpInitializeResponse, error)
	Verify(ctx context.Context, userID uuid.UUID, input *entities.TopUpVerifyInput) (*entities.TopUpVerifyResponse, error)
}

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	ledgerUsecase ledgerService
	topUpUsecase  topUpService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(ledgerUsecase *usecases.LedgerUsecase, topUpUsecase *usecases.TopUpUsecase) *WalletHandler {
	return &WalletHandler{
		ledgerUsecase: ledgerUsecase,
		topUpUsecase:  topUpUsecase,
	}
}

// GetBalance returns the current wallet balance
// GET /api/v1/wallet/balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	balance, err := h.ledgerUsecase.Balance(c.Request.Context(), userID)
	if err != nil {
		if err == domainerrors.ErrWalletNotFound {
			response.Error(c, domainerrors.NotFound("Wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, balance)
}

// ListTransactions returns the wallet's transaction history
// GET /api/v1/wallet/transactions
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	params := paginationFromQuery(c)
	txns, meta, err := h.ledgerUsecase.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	if txns == nil {
		txns = []*entities.Transaction{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": txns,
		"pagination":   meta,
	})
}

// InitializeTopUp starts a hosted checkout for a top-up
// POST /api/v1/wallet/topup/initialize
func (h *WalletHandler) InitializeTopUp(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.TopUpInitializeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.topUpUsecase.Initialize(c.Request.Context(), userID, &input)
	if err != nil {
		if err == domainerrors.ErrInvalidInput {
			response.Error(c, domainerrors.BadRequest("Amount must be greater than zero"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// VerifyTopUp confirms a payment with the gateway and settles it
// POST /api/v1/wallet/topup/verify
func (h *WalletHandler) VerifyTopUp(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.TopUpVerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.topUpUsecase.Verify(c.Request.Context(), userID, &input)
	if err != nil {
		if err == domainerrors.ErrPaymentNotSuccess {
			response.Error(c, domainerrors.BadRequest("Payment was not successful"))
			return
		}
		if err == domainerrors.ErrForbidden {
			response.Error(c, domainerrors.Forbidden("Payment belongs to another account"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return utils.GetPaginationParams(page, limit)
}
