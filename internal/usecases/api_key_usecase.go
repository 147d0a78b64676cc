package usecases

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/domain/repositories"
)

const apiKeyPrefix = "jl_"

var apiKeyRandRead = rand.Read

// ApiKeyUsecase manages programmatic credentials. The full key value exists
// only in the creation response; storage holds its SHA-256 hash and a masked
// suffix for display.
type ApiKeyUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
	userRepo   repositories.UserRepository
}

// NewApiKeyUsecase creates a new API key usecase
func NewApiKeyUsecase(
	apiKeyRepo repositories.ApiKeyRepository,
	userRepo repositories.UserRepository,
) *ApiKeyUsecase {
	return &ApiKeyUsecase{
		apiKeyRepo: apiKeyRepo,
		userRepo:   userRepo,
	}
}

// CreateApiKey mints a new key. The raw value is returned once and never
// stored.
func (u *ApiKeyUsecase) CreateApiKey(ctx context.Context, userID uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	raw, err := generateRandomHex(48)
	if err != nil {
		return nil, domainerrors.InternalServerError("failed to generate key")
	}
	apiKey := apiKeyPrefix + raw

	var expiresAt *time.Time
	if input.ExpiresInDays > 0 {
		t := time.Now().AddDate(0, 0, input.ExpiresInDays)
		expiresAt = &t
	}

	entity := &entities.ApiKey{
		UserID:    userID,
		KeyName:   input.KeyName,
		KeyHash:   sha256Hex([]byte(apiKey)),
		KeyMasked: apiKeyPrefix + "****" + apiKey[len(apiKey)-4:],
		IsActive:  true,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := u.apiKeyRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return &entities.CreateApiKeyResponse{
		ID:        entity.ID,
		KeyName:   entity.KeyName,
		ApiKey:    apiKey, // Shown once
		ExpiresAt: entity.ExpiresAt,
		CreatedAt: entity.CreatedAt,
	}, nil
}

// Authenticate resolves a raw key to its owner. Revoked, deactivated and
// expired keys all fail the same way so a caller cannot probe key state.
func (u *ApiKeyUsecase) Authenticate(ctx context.Context, apiKey string) (*entities.User, error) {
	keyEntity, err := u.apiKeyRepo.FindByKeyHash(ctx, sha256Hex([]byte(apiKey)))
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid api key")
	}
	if !keyEntity.IsActive || keyEntity.RevokedAt != nil || keyEntity.Expired(time.Now()) {
		return nil, domainerrors.Unauthorized("invalid api key")
	}

	now := time.Now()
	keyEntity.LastUsedAt = &now
	_ = u.apiKeyRepo.Update(ctx, keyEntity)

	user, err := u.userRepo.GetByID(ctx, keyEntity.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid api key")
	}
	return user, nil
}

// ListApiKeys returns the user's keys, hashes excluded by the entity shape
func (u *ApiKeyUsecase) ListApiKeys(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKey, error) {
	return u.apiKeyRepo.FindByUserID(ctx, userID)
}

// RevokeApiKey permanently disables a key the caller owns
func (u *ApiKeyUsecase) RevokeApiKey(ctx context.Context, userID, id uuid.UUID) error {
	key, err := u.apiKeyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if key.UserID != userID {
		return domainerrors.Forbidden("not owner of api key")
	}

	now := time.Now()
	key.IsActive = false
	key.RevokedAt = &now
	return u.apiKeyRepo.Update(ctx, key)
}

// DeleteApiKey removes a key the caller owns
func (u *ApiKeyUsecase) DeleteApiKey(ctx context.Context, userID, id uuid.UUID) error {
	key, err := u.apiKeyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if key.UserID != userID {
		return domainerrors.Forbidden("not owner of api key")
	}

	return u.apiKeyRepo.Delete(ctx, id)
}

// Helpers

func generateRandomHex(n int) (string, error) {
	bytes := make([]byte, n/2)
	if _, err := apiKeyRandRead(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func sha256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
