package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/infrastructure/models"
)

// ApiKeyRepository implements API key data operations
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// Create creates a new API key
func (r *ApiKeyRepository) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	if apiKey.ID == uuid.Nil {
		apiKey.ID = uuid.New()
	}
	m := r.toModel(apiKey)

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// FindByKeyHash finds an API key by its SHA-256 hash
func (r *ApiKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("key_hash = ?", keyHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByUserID finds all API keys for a user
func (r *ApiKeyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKey, error) {
	var rows []models.ApiKey
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make([]*entities.ApiKey, 0, len(rows))
	for i := range rows {
		keys = append(keys, r.toEntity(&rows[i]))
	}
	return keys, nil
}

// FindByID finds an API key by ID
func (r *ApiKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	var m models.ApiKey
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists mutable API key fields
func (r *ApiKeyRepository) Update(ctx context.Context, apiKey *entities.ApiKey) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ?", apiKey.ID).
		Updates(map[string]interface{}{
			"key_name":     apiKey.KeyName,
			"is_active":    apiKey.IsActive,
			"last_used_at": apiKey.LastUsedAt,
			"revoked_at":   apiKey.RevokedAt,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete permanently removes an API key
func (r *ApiKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.ApiKey{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeactivateExpired flips is_active off for keys past their expiry
func (r *ApiKeyRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

func (r *ApiKeyRepository) toModel(k *entities.ApiKey) *models.ApiKey {
	return &models.ApiKey{
		ID:         k.ID,
		UserID:     k.UserID,
		KeyName:    k.KeyName,
		KeyHash:    k.KeyHash,
		KeyMasked:  k.KeyMasked,
		IsActive:   k.IsActive,
		LastUsedAt: k.LastUsedAt,
		ExpiresAt:  k.ExpiresAt,
		RevokedAt:  k.RevokedAt,
		CreatedAt:  k.CreatedAt,
		UpdatedAt:  k.UpdatedAt,
	}
}

func (r *ApiKeyRepository) toEntity(m *models.ApiKey) *entities.ApiKey {
	return &entities.ApiKey{
		ID:         m.ID,
		UserID:     m.UserID,
		KeyName:    m.KeyName,
		KeyHash:    m.KeyHash,
		KeyMasked:  m.KeyMasked,
		IsActive:   m.IsActive,
		LastUsedAt: m.LastUsedAt,
		ExpiresAt:  m.ExpiresAt,
		RevokedAt:  m.RevokedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
