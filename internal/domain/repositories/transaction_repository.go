package repositories

import (
	"context"

	"github.com/google/uuid"
	"jadara-labs.backend/internal/domain/entities"
	"jadara-labs.backend/pkg/utils"
)

// TransactionRepository defines append-only transaction log operations
type TransactionRepository interface {
	Create(ctx context.Context, txn *entities.Transaction) error
	FindByReference(ctx context.Context, reference string) (*entities.Transaction, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.Transaction, int64, error)
	// GetLatestByUserID returns the most recent transaction for a user
	GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.Transaction, error)
}
