// Package uropay is the HTTP client for the UroPay UPI payment gateway.
// It exposes the two operations the booking flow needs: creating a remote
// payment order and querying an order's status.
package uropay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// OrderStatusCompleted is the terminal success value of a remote order
const OrderStatusCompleted = "COMPLETED"

// Config holds UroPay gateway configuration
type Config struct {
	BaseURL    string
	APIKey     string
	MerchantID string
	Timeout    time.Duration
}

// Client talks to the UroPay API
type Client struct {
	baseURL    string
	apiKey     string
	merchantID string
	client     *http.Client
}

// NewClient creates a new UroPay client. All calls share one fixed timeout;
// a timed-out call surfaces as a transport error the caller may retry.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		merchantID: cfg.MerchantID,
		client:     &http.Client{Timeout: timeout},
	}
}

// CreateOrderRequest is the create-order payload
type CreateOrderRequest struct {
	BookingID     string  `json:"bookingId"`
	Amount        float64 `json:"amount"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CafeName      string  `json:"cafeName"`
}

// CreateOrderResponse is the remote order created by the gateway
type CreateOrderResponse struct {
	UroPayOrderID  string  `json:"uroPayOrderId"`
	QRCode         string  `json:"qrCode"`
	UPIString      string  `json:"upiString"`
	AmountInRupees float64 `json:"amountInRupees"`
}

// OrderStatusResponse is the gateway's view of an order's state
type OrderStatusResponse struct {
	OrderStatus   string `json:"orderStatus"`
	UroPayOrderID string `json:"uroPayOrderId"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateOrder creates a remote payment order for a booking
func (c *Client) CreateOrder(req CreateOrderRequest) (*CreateOrderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode create-order request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build create-order request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("uropay create-order call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("uropay create-order returned %d: %s", resp.StatusCode, readAPIError(resp.Body))
	}

	var order CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode create-order response: %w", err)
	}

	if order.UroPayOrderID == "" {
		return nil, fmt.Errorf("uropay create-order returned no order id")
	}

	return &order, nil
}

// GetOrderStatus queries the status of a remote order
func (c *Client) GetOrderStatus(orderID string) (*OrderStatusResponse, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order id is required")
	}

	httpReq, err := http.NewRequest(http.MethodGet,
		c.baseURL+"/orders/"+url.PathEscape(orderID)+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("uropay status call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uropay status returned %d: %s", resp.StatusCode, readAPIError(resp.Body))
	}

	var status OrderStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}

	return &status, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Merchant-Id", c.merchantID)
}

func readAPIError(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no error body"
	}

	var apiErr apiError
	if json.Unmarshal(raw, &apiErr) == nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Error != "" {
			return apiErr.Error
		}
	}
	return string(raw)
}
