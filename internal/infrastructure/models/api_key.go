package models

import (
	"time"

	"github.com/google/uuid"
)

type ApiKey struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	KeyName    string    `gorm:"type:varchar(100);not null"`
	KeyHash    string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	KeyMasked  string    `gorm:"type:varchar(20);not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
	RevokedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
