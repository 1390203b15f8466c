// Package resendapi is a minimal client for the Resend REST API. It is the
// SDK-free twin of the services email sender: same request, same endpoint,
// but the raw provider response body is kept so failures can be reported
// with the provider's own diagnostics.
package resendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AdviTravel/advitravel-backend/types"
)

// Client represents a client for the Resend emails endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a new Resend REST client
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			// Backstop only; the caller's context carries the real deadline.
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts the message to the provider. A transport fault or a context
// timeout returns an error; any HTTP response, success or not, returns a
// DeliveryResult carrying the provider's status code and decoded body.
func (c *Client) Send(ctx context.Context, msg *types.OutboundMessage) (*types.DeliveryResult, error) {
	jsonData, err := json.Marshal(sendRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// An undecodable body degrades to a nil payload instead of failing the
	// whole delivery report.
	var payload interface{}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload)

	result := &types.DeliveryResult{
		Delivered:  resp.StatusCode >= 200 && resp.StatusCode < 300,
		StatusCode: resp.StatusCode,
		Payload:    payload,
	}
	if result.Delivered {
		if m, ok := payload.(map[string]interface{}); ok {
			if id, ok := m["id"].(string); ok {
				result.ID = id
			}
		}
	}
	return result, nil
}
