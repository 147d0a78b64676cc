package gateways

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentSession is a hosted checkout created for a top-up
type PaymentSession struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// PaymentStatus is the gateway's view of a payment. Amount is in the major
// currency unit regardless of what the wire carries.
type PaymentStatus struct {
	Status        string
	Amount        decimal.Decimal
	Currency      string
	Reference     string
	CustomerEmail string
	PaidAt        string
	Metadata      map[string]interface{}
}

// WebhookEvent is a parsed gateway notification
type WebhookEvent struct {
	Event string
	Data  PaymentStatus
}

// PaystackClient talks to the Paystack REST API
type PaystackClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewPaystackClient creates a Paystack client
func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	return &PaystackClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitializeRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Currency    string                 `json:"currency,omitempty"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type paystackInitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackTransactionData struct {
	Status    string                 `json:"status"`
	Amount    int64                  `json:"amount"`
	Currency  string                 `json:"currency"`
	Reference string                 `json:"reference"`
	PaidAt    string                 `json:"paid_at"`
	Metadata  map[string]interface{} `json:"metadata"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// Initialize creates a checkout session. Amount is in the major unit; the
// wire format wants the subunit (kobo for NGN), so it is multiplied by 100.
func (c *PaystackClient) Initialize(ctx context.Context, email string, amount decimal.Decimal, currency, callbackURL string, metadata map[string]interface{}) (*PaymentSession, error) {
	body := paystackInitializeRequest{
		Email:       email,
		Amount:      amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency:    currency,
		CallbackURL: callbackURL,
		Metadata:    metadata,
	}

	var data paystackInitializeData
	if err := c.post(ctx, "/transaction/initialize", body, &data); err != nil {
		return nil, err
	}

	return &PaymentSession{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the authoritative status of a payment by reference
func (c *PaystackClient) Verify(ctx context.Context, reference string) (*PaymentStatus, error) {
	var data paystackTransactionData
	if err := c.get(ctx, "/transaction/verify/"+reference, &data); err != nil {
		return nil, err
	}
	return transactionToStatus(&data), nil
}

// VerifySignature checks a webhook body against its HMAC-SHA512 signature
// using the secret key. Comparison is constant time.
func (c *PaystackClient) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseWebhookEvent decodes a webhook payload into an event name and the
// payment it concerns
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var raw struct {
		Event string                  `json:"event"`
		Data  paystackTransactionData `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}
	if raw.Event == "" {
		return nil, fmt.Errorf("webhook payload missing event")
	}
	return &WebhookEvent{
		Event: raw.Event,
		Data:  *transactionToStatus(&raw.Data),
	}, nil
}

func transactionToStatus(data *paystackTransactionData) *PaymentStatus {
	return &PaymentStatus{
		Status:        data.Status,
		Amount:        decimal.NewFromInt(data.Amount).Div(decimal.NewFromInt(100)),
		Currency:      data.Currency,
		Reference:     data.Reference,
		CustomerEmail: data.Customer.Email,
		PaidAt:        data.PaidAt,
		Metadata:      data.Metadata,
	}
}

func (c *PaystackClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *PaystackClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *PaystackClient) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode gateway response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Status {
		return fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, envelope.Message)
	}
	return json.Unmarshal(envelope.Data, out)
}
