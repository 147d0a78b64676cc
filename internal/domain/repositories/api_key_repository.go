package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"jadara-labs.backend/internal/domain/entities"
)

// ApiKeyRepository defines API key data operations
type ApiKeyRepository interface {
	Create(ctx context.Context, apiKey *entities.ApiKey) error
	FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKey, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error)
	Update(ctx context.Context, apiKey *entities.ApiKey) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeactivateExpired flips is_active off for keys whose expiry has
	// passed, returning the number of keys touched.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
