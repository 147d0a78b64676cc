package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SmsStatus is the terminal outcome of one provider call
type SmsStatus string

const (
	SmsStatusPending SmsStatus = "pending"
	SmsStatusSent    SmsStatus = "sent"
	SmsStatusFailed  SmsStatus = "failed"
)

// SmsLog records one (recipient, message) attempt within a dispatch batch.
// The status is the outcome of exactly one provider call; attempts are never
// retried automatically and rows are never deleted.
type SmsLog struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"userId"`
	Recipient        string          `json:"recipient"`
	Message          string          `json:"message"`
	SenderID         string          `json:"senderId"`
	Status           SmsStatus       `json:"status"`
	CreditsUsed      decimal.Decimal `json:"creditsUsed"`
	ProviderResponse string          `json:"providerResponse,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// SendSmsInput is the request body for POST /sms/send. Recipients accepts a
// JSON array; RecipientsRaw accepts the comma-separated form the dashboard
// submits. One of the two must be present.
type SendSmsInput struct {
	Recipients    []string `json:"recipients"`
	RecipientsRaw string   `json:"recipientsRaw"`
	Message       string   `json:"message" binding:"required"`
	SenderID      string   `json:"senderId"`
}

// RecipientResult is the per-recipient outcome in a dispatch response
type RecipientResult struct {
	Recipient string    `json:"recipient"`
	Status    SmsStatus `json:"status"`
	Detail    string    `json:"detail,omitempty"`
}

// SendSmsResponse summarizes a dispatch batch
type SendSmsResponse struct {
	Results    []RecipientResult `json:"results"`
	TotalCost  decimal.Decimal   `json:"totalCost"`
	Charged    decimal.Decimal   `json:"charged"`
	NewBalance decimal.Decimal   `json:"newBalance"`
}
