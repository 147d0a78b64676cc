package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
)

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	createLedgerTables(t, db)
	uow := NewUnitOfWork(db)
	walletRepo := NewWalletRepository(db)
	txnRepo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := seedWallet(t, db, "100")

	err := uow.Do(ctx, func(txCtx context.Context) error {
		if ok, err := walletRepo.AddToBalance(txCtx, userID, decimal.RequireFromString("-40")); err != nil || !ok {
			return domainerrors.ErrInsufficientFunds
		}
		return txnRepo.Create(txCtx, &entities.Transaction{
			UserID:        userID,
			Type:          entities.TransactionTypeDebit,
			Amount:        decimal.RequireFromString("40"),
			BalanceBefore: decimal.RequireFromString("100"),
			BalanceAfter:  decimal.RequireFromString("60"),
		})
	})
	require.NoError(t, err)

	wallet, err := walletRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("60")))
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	createLedgerTables(t, db)
	uow := NewUnitOfWork(db)
	walletRepo := NewWalletRepository(db)
	ctx := context.Background()

	userID := seedWallet(t, db, "100")

	boom := errors.New("boom")
	err := uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := walletRepo.AddToBalance(txCtx, userID, decimal.RequireFromString("-40")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	wallet, err := walletRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("100")), "debit must be rolled back")
}

func TestUnitOfWork_DuplicateReferenceRollsBackBalance(t *testing.T) {
	db := newTestDB(t)
	createLedgerTables(t, db)
	uow := NewUnitOfWork(db)
	walletRepo := NewWalletRepository(db)
	txnRepo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := seedWallet(t, db, "0")

	credit := func() error {
		return uow.Do(ctx, func(txCtx context.Context) error {
			if err := txnRepo.Create(txCtx, &entities.Transaction{
				UserID:        userID,
				Type:          entities.TransactionTypeCredit,
				Amount:        decimal.RequireFromString("100"),
				BalanceBefore: decimal.Zero,
				BalanceAfter:  decimal.RequireFromString("100"),
				Reference:     null.StringFrom("PSK-once"),
			}); err != nil {
				return err
			}
			_, err := walletRepo.AddToBalance(txCtx, userID, decimal.RequireFromString("100"))
			return err
		})
	}

	require.NoError(t, credit())
	assert.ErrorIs(t, credit(), domainerrors.ErrDuplicateReference)

	wallet, err := walletRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("100")), "replay must not credit twice")
}
