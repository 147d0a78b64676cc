package entities

import (
	"time"

	"github.com/google/uuid"
)

// ApiKey is a credential for programmatic access. The full key value is
// returned exactly once at creation; only its SHA-256 hash and a masked
// suffix are stored. Revocation is terminal; expiry is derived from
// ExpiresAt and is not a stored state transition.
type ApiKey struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	KeyName    string     `json:"keyName"`
	KeyHash    string     `json:"-"`
	KeyMasked  string     `json:"keyMasked"`
	IsActive   bool       `json:"isActive"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Expired reports whether the key has passed its expiry time
func (k *ApiKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}

// CreateApiKeyInput is the request body for creating a key
type CreateApiKeyInput struct {
	KeyName       string `json:"keyName" binding:"required,min=1,max=100"`
	ExpiresInDays int    `json:"expiresInDays" binding:"omitempty,min=1"`
}

// CreateApiKeyResponse carries the full key value, shown once
type CreateApiKeyResponse struct {
	ID        uuid.UUID  `json:"id"`
	KeyName   string     `json:"keyName"`
	ApiKey    string     `json:"apiKey"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
