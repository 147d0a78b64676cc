package usecases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"jadara-labs.backend/internal/domain/entities"
	"jadara-labs.backend/internal/infrastructure/repositories"
	"jadara-labs.backend/internal/usecases"
	"jadara-labs.backend/pkg/redis"
)

// ledgerHarness wires the ledger usecase to a real in-memory store so the
// balance arithmetic and idempotency behavior run against actual SQL.
type ledgerHarness struct {
	db         *gorm.DB
	walletRepo *repositories.WalletRepository
	txnRepo    *repositories.TransactionRepository
	smsLogRepo *repositories.SmsLogRepository
	ledger     *usecases.LedgerUsecase
}

func newLedgerHarness(t *testing.T) *ledgerHarness {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	for _, q := range []string{
		`CREATE TABLE wallets (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			balance NUMERIC NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'NGN',
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			balance_before NUMERIC NOT NULL,
			balance_after NUMERIC NOT NULL,
			description TEXT,
			reference TEXT UNIQUE,
			metadata TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE sms_logs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			recipient TEXT NOT NULL,
			message TEXT NOT NULL,
			sender_id TEXT,
			status TEXT NOT NULL,
			credits_used NUMERIC NOT NULL DEFAULT 0,
			provider_response TEXT,
			created_at DATETIME
		);`,
	} {
		require.NoError(t, db.Exec(q).Error)
	}

	walletRepo := repositories.NewWalletRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)
	smsLogRepo := repositories.NewSmsLogRepository(db)
	uow := repositories.NewUnitOfWork(db)

	return &ledgerHarness{
		db:         db,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		smsLogRepo: smsLogRepo,
		ledger:     usecases.NewLedgerUsecase(uow, walletRepo, txnRepo, redis.NewBalanceCache()),
	}
}

func (h *ledgerHarness) seedWallet(t *testing.T, balance string) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	require.NoError(t, h.walletRepo.Create(context.Background(), &entities.Wallet{
		UserID:   userID,
		Balance:  decimal.RequireFromString(balance),
		Currency: "NGN",
	}))
	return userID
}

func (h *ledgerHarness) balance(t *testing.T, userID uuid.UUID) decimal.Decimal {
	t.Helper()
	wallet, err := h.walletRepo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	return wallet.Balance
}
