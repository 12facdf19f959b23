// Package mailer is the HTTP client for the transactional email provider.
// Every send carries an event type and a data map that must include the
// recipient address.
package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EmailType enumerates the transactional email kinds the provider accepts
type EmailType string

const (
	TypeLoginAlert          EmailType = "login_alert"
	TypeBookingConfirmation EmailType = "booking_confirmation"
	TypeBookingCancellation EmailType = "booking_cancellation"
	TypeWelcome             EmailType = "welcome"
)

// ValidType reports whether t is one of the recognized email kinds
func ValidType(t EmailType) bool {
	switch t {
	case TypeLoginAlert, TypeBookingConfirmation, TypeBookingCancellation, TypeWelcome:
		return true
	}
	return false
}

// Config holds email provider configuration
type Config struct {
	BaseURL   string
	APIKey    string
	FromEmail string
	Timeout   time.Duration
}

// Client talks to the email provider API
type Client struct {
	baseURL   string
	apiKey    string
	fromEmail string
	client    *http.Client
}

// NewClient creates a new mail client with a fixed call timeout
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		client:    &http.Client{Timeout: timeout},
	}
}

// sendRequest is the provider's {type, data} envelope
type sendRequest struct {
	Type EmailType              `json:"type"`
	From string                 `json:"from"`
	Data map[string]interface{} `json:"data"`
}

// SendResponse is the provider's result envelope
type SendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Send dispatches one transactional email. The data map must carry the
// recipient under the "email" key; that is validated by the caller before
// it reaches this client.
func (c *Client) Send(emailType EmailType, data map[string]interface{}) (*SendResponse, error) {
	body, err := json.Marshal(sendRequest{Type: emailType, From: c.fromEmail, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to encode email request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build email request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("email provider call failed: %w", err)
	}
	defer resp.Body.Close()

	var result SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode email response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error == "" {
			result.Error = fmt.Sprintf("email provider returned %d", resp.StatusCode)
		}
		result.Success = false
	}

	return &result, nil
}
