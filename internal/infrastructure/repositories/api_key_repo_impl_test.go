package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
)

func seedApiKey(t *testing.T, repo *ApiKeyRepository, userID uuid.UUID, hash string, expiresAt *time.Time) *entities.ApiKey {
	t.Helper()
	key := &entities.ApiKey{
		UserID:    userID,
		KeyName:   "test",
		KeyHash:   hash,
		KeyMasked: "jl_****abcd",
		IsActive:  true,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), key))
	return key
}

func TestApiKeyRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	createApiKeyTable(t, db)
	repo := NewApiKeyRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	key := seedApiKey(t, repo, userID, "hash-1", nil)

	byHash, err := repo.FindByKeyHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, key.ID, byHash.ID)

	byID, err := repo.FindByID(ctx, key.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, byID.UserID)

	_, err = repo.FindByKeyHash(ctx, "unknown")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestApiKeyRepository_FindByUserID(t *testing.T) {
	db := newTestDB(t)
	createApiKeyTable(t, db)
	repo := NewApiKeyRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedApiKey(t, repo, userID, "hash-a", nil)
	seedApiKey(t, repo, userID, "hash-b", nil)
	seedApiKey(t, repo, uuid.New(), "hash-c", nil)

	keys, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestApiKeyRepository_Update(t *testing.T) {
	db := newTestDB(t)
	createApiKeyTable(t, db)
	repo := NewApiKeyRepository(db)
	ctx := context.Background()

	key := seedApiKey(t, repo, uuid.New(), "hash-u", nil)

	now := time.Now()
	key.IsActive = false
	key.RevokedAt = &now
	require.NoError(t, repo.Update(ctx, key))

	got, err := repo.FindByID(ctx, key.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.RevokedAt)

	missing := *key
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, &missing), domainerrors.ErrNotFound)
}

func TestApiKeyRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	createApiKeyTable(t, db)
	repo := NewApiKeyRepository(db)
	ctx := context.Background()

	key := seedApiKey(t, repo, uuid.New(), "hash-d", nil)
	require.NoError(t, repo.Delete(ctx, key.ID))

	_, err := repo.FindByID(ctx, key.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, key.ID), domainerrors.ErrNotFound)
}

func TestApiKeyRepository_DeactivateExpired(t *testing.T) {
	db := newTestDB(t)
	createApiKeyTable(t, db)
	repo := NewApiKeyRepository(db)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired := seedApiKey(t, repo, uuid.New(), "hash-old", &past)
	live := seedApiKey(t, repo, uuid.New(), "hash-live", &future)
	forever := seedApiKey(t, repo, uuid.New(), "hash-forever", nil)

	count, err := repo.DeactivateExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.FindByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	for _, id := range []uuid.UUID{live.ID, forever.ID} {
		got, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	}

	// Second sweep finds nothing
	count, err = repo.DeactivateExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)
}
