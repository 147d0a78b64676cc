package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TransactionType distinguishes ledger credits from debits
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// Transaction is an immutable audit record. One row is written per ledger
// mutation; rows are never updated or deleted. For any row,
// BalanceAfter = BalanceBefore +/- Amount depending on Type, and the
// BalanceAfter of a user's transaction equals the BalanceBefore of their
// next one.
// LedgerEntryInput describes one requested balance mutation. Reference, when
// set, makes the entry idempotent: a second entry with the same reference is
// a no-op that returns the first.
type LedgerEntryInput struct {
	Amount      decimal.Decimal
	Description string
	Reference   null.String
	Metadata    map[string]interface{}
}

type Transaction struct {
	ID            uuid.UUID              `json:"id"`
	UserID        uuid.UUID              `json:"userId"`
	Type          TransactionType        `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	BalanceBefore decimal.Decimal        `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal        `json:"balanceAfter"`
	Description   string                 `json:"description"`
	Reference     null.String            `json:"reference,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}
