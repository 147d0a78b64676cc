package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SmsLog struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Recipient        string          `gorm:"type:varchar(32);not null"`
	Message          string          `gorm:"type:text;not null"`
	SenderID         string          `gorm:"type:varchar(20)"`
	Status           string          `gorm:"type:varchar(10);not null"`
	CreditsUsed      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	ProviderResponse string          `gorm:"type:text"`
	CreatedAt        time.Time       `gorm:"index"`
}
