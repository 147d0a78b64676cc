package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/domain/repositories"
	"jadara-labs.backend/internal/infrastructure/gateways"
	"jadara-labs.backend/pkg/logger"
	"go.uber.org/zap"
)

// PaymentGateway abstracts the hosted-payment provider
type PaymentGateway interface {
	Initialize(ctx context.Context, email string, amount decimal.Decimal, currency, callbackURL string, metadata map[string]interface{}) (*gateways.PaymentSession, error)
	Verify(ctx context.Context, reference string) (*gateways.PaymentStatus, error)
	VerifySignature(body []byte, signature string) bool
}

// Mailer sends transactional notifications. A nil mailer disables them.
type Mailer interface {
	SendPaymentReceipt(ctx context.Context, receipt *gateways.PaymentReceipt) error
}

// TopUpConfig carries gateway-facing settings for top-ups
type TopUpConfig struct {
	Currency    string
	CallbackURL string
}

// TopUpUsecase reconciles gateway payments into wallet credits. Webhook and
// poll verification are two doors into the same settle path; the ledger's
// reference idempotency guarantees a payment arriving through both doors is
// credited exactly once.
type TopUpUsecase struct {
	ledger   *LedgerUsecase
	userRepo repositories.UserRepository
	gateway  PaymentGateway
	mailer   Mailer
	cfg      TopUpConfig
}

// NewTopUpUsecase creates a new top-up usecase
func NewTopUpUsecase(
	ledger *LedgerUsecase,
	userRepo repositories.UserRepository,
	gateway PaymentGateway,
	mailer Mailer,
	cfg TopUpConfig,
) *TopUpUsecase {
	return &TopUpUsecase{
		ledger:   ledger,
		userRepo: userRepo,
		gateway:  gateway,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// Initialize starts a hosted checkout for a wallet top-up. The user ID rides
// in the session metadata so settlement can find the wallet when the gateway
// calls back.
func (u *TopUpUsecase) Initialize(ctx context.Context, userID uuid.UUID, input *entities.TopUpInitializeInput) (*entities.TopUpInitializeResponse, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domainerrors.ErrInvalidInput
	}

	email := input.Email
	if email == "" {
		user, err := u.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		email = user.Email
	}

	session, err := u.gateway.Initialize(ctx, email, input.Amount, u.cfg.Currency, u.cfg.CallbackURL, map[string]interface{}{
		"user_id": userID.String(),
		"purpose": topUpPurpose,
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("top-up initialized",
		zap.String("user_id", userID.String()),
		zap.String("reference", session.Reference),
		zap.String("amount", input.Amount.String()))

	return &entities.TopUpInitializeResponse{
		AuthorizationURL: session.AuthorizationURL,
		AccessCode:       session.AccessCode,
		Reference:        session.Reference,
	}, nil
}

// Verify is the poll path: the client returns from checkout and asks us to
// confirm the payment. The gateway is the source of truth for status and
// amount; the client never supplies the amount.
func (u *TopUpUsecase) Verify(ctx context.Context, userID uuid.UUID, input *entities.TopUpVerifyInput) (*entities.TopUpVerifyResponse, error) {
	status, err := u.gateway.Verify(ctx, input.Reference)
	if err != nil {
		return nil, err
	}
	if status.Status != "success" {
		return nil, domainerrors.ErrPaymentNotSuccess
	}

	owner, err := metadataUserID(status.Metadata)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, domainerrors.ErrForbidden
	}

	if _, err := u.settle(ctx, owner, status); err != nil {
		return nil, err
	}

	balance, err := u.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &entities.TopUpVerifyResponse{
		Balance:  balance.Balance,
		Currency: balance.Currency,
	}, nil
}

// HandleWebhook is the push path. The signature is checked against the raw
// body before anything is parsed; events other than a successful charge are
// acknowledged and dropped.
func (u *TopUpUsecase) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !u.gateway.VerifySignature(body, signature) {
		return domainerrors.ErrInvalidSignature
	}

	event, err := gateways.ParseWebhookEvent(body)
	if err != nil {
		return domainerrors.ErrInvalidInput
	}
	if event.Event != "charge.success" {
		logger.WithContext(ctx).Debug("ignoring webhook event", zap.String("event", event.Event))
		return nil
	}
	if event.Data.Status != "success" {
		return nil
	}

	owner, err := metadataUserID(event.Data.Metadata)
	if err != nil {
		logger.WithContext(ctx).Error("webhook payment has no usable user_id",
			zap.String("reference", event.Data.Reference), zap.Error(err))
		return domainerrors.ErrInvalidInput
	}

	_, err = u.settle(ctx, owner, &event.Data)
	return err
}

// settle credits the wallet for a confirmed payment. The gateway reference
// is the idempotency key: settling the same payment twice returns the first
// transaction and writes nothing.
func (u *TopUpUsecase) settle(ctx context.Context, userID uuid.UUID, status *gateways.PaymentStatus) (*entities.Transaction, error) {
	txn, created, err := u.ledger.Credit(ctx, userID, &entities.LedgerEntryInput{
		Amount:      status.Amount,
		Description: "Wallet top-up",
		Reference:   null.StringFrom(status.Reference),
		Metadata: map[string]interface{}{
			"purpose":  topUpPurpose,
			"currency": status.Currency,
			"paid_at":  status.PaidAt,
		},
	})
	if err != nil {
		return nil, err
	}

	if created {
		logger.WithContext(ctx).Info("top-up settled",
			zap.String("user_id", userID.String()),
			zap.String("reference", status.Reference),
			zap.String("amount", status.Amount.String()))
		u.sendReceipt(status, txn)
	} else {
		logger.WithContext(ctx).Info("top-up already settled",
			zap.String("reference", status.Reference))
	}
	return txn, nil
}

// sendReceipt emails a confirmation for a first-time settlement. The send
// runs detached from the request; a mail failure is logged and never touches
// the credit.
func (u *TopUpUsecase) sendReceipt(status *gateways.PaymentStatus, txn *entities.Transaction) {
	if u.mailer == nil || status.CustomerEmail == "" {
		return
	}
	receipt := &gateways.PaymentReceipt{
		To:         status.CustomerEmail,
		Amount:     status.Amount,
		NewBalance: txn.BalanceAfter,
		Reference:  status.Reference,
		Currency:   u.cfg.Currency,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := u.mailer.SendPaymentReceipt(ctx, receipt); err != nil {
			logger.WithContext(ctx).Error("failed to send payment receipt",
				zap.String("reference", receipt.Reference),
				zap.Error(err))
		}
	}()
}

func metadataUserID(metadata map[string]interface{}) (uuid.UUID, error) {
	raw, ok := metadata["user_id"].(string)
	if !ok {
		return uuid.Nil, domainerrors.ErrInvalidInput
	}
	return uuid.Parse(raw)
}
