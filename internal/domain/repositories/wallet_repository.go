package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"jadara-labs.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations. Balance mutations go
// through the conditional AddToBalance update so two concurrent debits can
// never both succeed against a stale read.
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	// AddToBalance applies `balance = balance + delta` guarded by
	// `balance + delta >= 0`, and reports whether a row was updated.
	AddToBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (bool, error)
}
