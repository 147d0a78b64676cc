package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
)

func TestWalletRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	wallet := &entities.Wallet{
		UserID:   userID,
		Balance:  decimal.RequireFromString("100"),
		Currency: "NGN",
	}
	require.NoError(t, repo.Create(ctx, wallet))
	assert.NotEqual(t, uuid.Nil, wallet.ID)

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, "NGN", got.Currency)
}

func TestWalletRepository_CreateDuplicateUser(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Create(ctx, &entities.Wallet{UserID: userID, Currency: "NGN"}))

	err := repo.Create(ctx, &entities.Wallet{UserID: userID, Currency: "NGN"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestWalletRepository_GetByUserID_NotFound(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db)

	_, err := repo.GetByUserID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrWalletNotFound)
}

func TestWalletRepository_AddToBalance(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	userID := seedWallet(t, db, "100")

	ok, err := repo.AddToBalance(ctx, userID, decimal.RequireFromString("-30"))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("70")), "got %s", got.Balance)
}

func TestWalletRepository_AddToBalance_RejectsOverdraft(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	userID := seedWallet(t, db, "20")

	ok, err := repo.AddToBalance(ctx, userID, decimal.RequireFromString("-25"))
	require.NoError(t, err)
	assert.False(t, ok, "overdraft must not update any row")

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("20")))
}

func TestWalletRepository_AddToBalance_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db)

	ok, err := repo.AddToBalance(context.Background(), uuid.New(), decimal.RequireFromString("10"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWalletRepository_AddToBalance_ExactDrain(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	userID := seedWallet(t, db, "50")

	ok, err := repo.AddToBalance(ctx, userID, decimal.RequireFromString("-50"))
	require.NoError(t, err)
	assert.True(t, ok, "draining to exactly zero is allowed")

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
}

func TestWalletRepository_AddToBalance_ConcurrentDebits(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)

	// Single connection keeps sqlite from returning busy errors under
	// concurrent writers; the guarded update is what is under test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewWalletRepository(db)
	ctx := context.Background()

	// 10 units of balance, 20 goroutines each trying to take 1
	userID := seedWallet(t, db, "10")

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.AddToBalance(ctx, userID, decimal.RequireFromString("-1"))
			if err == nil && ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded, "exactly the funded number of debits may succeed")

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero(), "got %s", got.Balance)
}
