package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// Transaction rows are append-only; there is no UpdatedAt or DeletedAt on
// purpose.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Description   string          `gorm:"type:text"`
	Reference     null.String     `gorm:"type:varchar(255);uniqueIndex"`
	Metadata      string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"index"`
}
