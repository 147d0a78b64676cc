package repositories

import (
	"context"

	"github.com/google/uuid"
	"jadara-labs.backend/internal/domain/entities"
	"jadara-labs.backend/pkg/utils"
)

// SmsLogRepository defines dispatch log operations
type SmsLogRepository interface {
	Create(ctx context.Context, log *entities.SmsLog) error
	GetByUserID(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.SmsLog, int64, error)
}
