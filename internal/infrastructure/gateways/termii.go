package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SmsSendResult is the outcome of one provider call. Raw keeps the
// provider's response body verbatim for the audit log; core logic reads
// only OK and Detail.
type SmsSendResult struct {
	OK        bool
	MessageID string
	Detail    string
	Raw       string
}

// TermiiClient sends single messages through the Termii HTTP API
type TermiiClient struct {
	baseURL    string
	apiKey     string
	channel    string
	httpClient *http.Client
}

// NewTermiiClient creates a Termii client
func NewTermiiClient(baseURL, apiKey, channel string) *TermiiClient {
	return &TermiiClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		channel: channel,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type termiiSendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Sms     string `json:"sms"`
	Type    string `json:"type"`
	ApiKey  string `json:"api_key"`
	Channel string `json:"channel"`
}

type termiiSendResponse struct {
	MessageID string `json:"message_id"`
	Message   string `json:"message"`
	Code      string `json:"code"`
}

// Send delivers one message to one recipient. Transport failures come back
// as errors, provider rejections as OK=false; the caller records either as a
// failed attempt without aborting the rest of the batch.
func (c *TermiiClient) Send(ctx context.Context, to, from, body string) (*SmsSendResult, error) {
	payload, err := json.Marshal(termiiSendRequest{
		To:      to,
		From:    from,
		Sms:     body,
		Type:    "plain",
		ApiKey:  c.apiKey,
		Channel: c.channel,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sms/send", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed termiiSendResponse
	_ = json.Unmarshal(raw, &parsed)

	result := &SmsSendResult{
		OK:        resp.StatusCode >= 200 && resp.StatusCode < 300,
		MessageID: parsed.MessageID,
		Detail:    parsed.Message,
		Raw:       string(raw),
	}
	if !result.OK && result.Detail == "" {
		result.Detail = fmt.Sprintf("provider returned status %d", resp.StatusCode)
	}
	return result, nil
}
