package repositories

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
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		balance NUMERIC NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'NGN',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
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
	);`)
}

func createSmsLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE sms_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		recipient TEXT NOT NULL,
		message TEXT NOT NULL,
		sender_id TEXT,
		status TEXT NOT NULL,
		credits_used NUMERIC NOT NULL DEFAULT 0,
		provider_response TEXT,
		created_at DATETIME
	);`)
}

func createApiKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE api_keys (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		key_name TEXT NOT NULL,
		key_hash TEXT NOT NULL UNIQUE,
		key_masked TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		last_used_at DATETIME,
		expires_at DATETIME,
		revoked_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLedgerTables(t *testing.T, db *gorm.DB) {
	createUserTable(t, db)
	createWalletTable(t, db)
	createTransactionTable(t, db)
}

func seedWallet(t *testing.T, db *gorm.DB, balance string) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	b, err := decimal.NewFromString(balance)
	require.NoError(t, err)

	repo := NewWalletRepository(db)
	require.NoError(t, repo.Create(context.Background(), &entities.Wallet{
		UserID:   userID,
		Balance:  b,
		Currency: "NGN",
	}))
	return userID
}
