// Package client is a Go client for the MobiWise chat API. It is the remote
// half of the session state machine: the session decides what to send and
// this package moves it over the wire.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mobiwise/internal/models"
)

// Client talks to a MobiWise server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL (e.g.
// "http://localhost:8080").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // LLMs can be slow
		},
	}
}

// NewClientWithHTTPClient creates a client with a caller-supplied HTTP
// client, mainly for tests.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Send posts one user message with conversation history and returns the
// server's envelope. On a non-2xx status the error carries the body's
// refusal text when the body parses as an envelope, otherwise a generic
// "API error" message with the status code.
func (c *Client) Send(ctx context.Context, message string, history []models.ChatMessage, model string) (*models.ResponseEnvelope, error) {
	request := models.ChatRequest{
		Message: message,
		History: history,
		Model:   model,
	}

	jsonBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach chat API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errEnvelope models.ResponseEnvelope
		if jsonErr := json.Unmarshal(body, &errEnvelope); jsonErr == nil && errEnvelope.Text != "" {
			return nil, fmt.Errorf("%s", errEnvelope.Text)
		}
		return nil, fmt.Errorf("API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var envelope models.ResponseEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &envelope, nil
}
