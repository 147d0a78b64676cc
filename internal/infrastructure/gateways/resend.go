package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReceipt is the content of a top-up confirmation email
type PaymentReceipt struct {
	To         string
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
	Reference  string
	Currency   string
}

// ResendClient sends transactional email through the Resend HTTP API
type ResendClient struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewResendClient creates a Resend client
func NewResendClient(baseURL, apiKey, from string) *ResendClient {
	return &ResendClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type resendSendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendPaymentReceipt emails a top-up confirmation. The receipt is a
// courtesy notification; the caller decides whether a failure matters.
func (c *ResendClient) SendPaymentReceipt(ctx context.Context, receipt *PaymentReceipt) error {
	payload, err := json.Marshal(resendSendRequest{
		From:    c.from,
		To:      []string{receipt.To},
		Subject: "Wallet Top-Up Successful",
		HTML:    receiptHTML(receipt),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

func receiptHTML(receipt *PaymentReceipt) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>Payment Successful</h1>
  <p>Your wallet has been credited successfully.</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px;">
    <h2 style="margin-top: 0;">Transaction Details</h2>
    <p><strong>Amount:</strong> %s %s</p>
    <p><strong>Reference:</strong> %s</p>
    <p><strong>New Balance:</strong> %s %s</p>
  </div>
  <p>Thank you for your payment!</p>
  <p style="color: #666; font-size: 12px;">If you did not make this transaction, please contact support immediately.</p>
</div>`,
		receipt.Currency, receipt.Amount.StringFixed(2),
		receipt.Reference,
		receipt.Currency, receipt.NewBalance.StringFixed(2))
}
