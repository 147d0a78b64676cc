package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const balanceCacheTTL = 60 * time.Second

// BalanceCache caches wallet balances in Redis. The ledger invalidates the
// entry on every mutation, so a hit is never older than the latest commit.
type BalanceCache struct{}

// NewBalanceCache creates a balance cache backed by the package client
func NewBalanceCache() *BalanceCache {
	return &BalanceCache{}
}

func balanceKey(userID uuid.UUID) string {
	return fmt.Sprintf("wallet:balance:%s", userID)
}

type cachedBalance struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// Get returns the cached balance and its currency, or ok=false on miss or
// error
func (c *BalanceCache) Get(ctx context.Context, userID uuid.UUID) (decimal.Decimal, string, bool) {
	if !c.Available() {
		return decimal.Zero, "", false
	}
	val, err := Get(ctx, balanceKey(userID))
	if err != nil {
		return decimal.Zero, "", false
	}
	var entry cachedBalance
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return decimal.Zero, "", false
	}
	return entry.Balance, entry.Currency, true
}

// Set stores the balance and currency with a short TTL
func (c *BalanceCache) Set(ctx context.Context, userID uuid.UUID, balance decimal.Decimal, currency string) {
	if !c.Available() {
		return
	}
	raw, err := json.Marshal(cachedBalance{Balance: balance, Currency: currency})
	if err != nil {
		return
	}
	_ = Set(ctx, balanceKey(userID), string(raw), balanceCacheTTL)
}

// Invalidate drops the cached balance after a ledger mutation
func (c *BalanceCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if !c.Available() {
		return
	}
	_ = Del(ctx, balanceKey(userID))
}

// Available reports whether the package client has been initialized
func (c *BalanceCache) Available() bool {
	return GetClient() != nil
}
