package entities

import "github.com/shopspring/decimal"

// TopUpInitializeInput starts a hosted-payment session for a wallet top-up
type TopUpInitializeInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Email  string          `json:"email" binding:"omitempty,email"`
}

// TopUpInitializeResponse points the client at the gateway's hosted page
type TopUpInitializeResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode,omitempty"`
	Reference        string `json:"reference"`
}

// TopUpVerifyInput is the poll-path verification request
type TopUpVerifyInput struct {
	Reference string `json:"reference" binding:"required"`
}

// TopUpVerifyResponse reports the balance after settlement
type TopUpVerifyResponse struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}
