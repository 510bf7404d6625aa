// Package assistant provides the client for the chat-assistant gateway.
// The assistant is stateless request/reply and touches no ledger state.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// systemPrompt positions the assistant as an education helper for the
// demo platform. The assistant has no state of its own and no access to
// ledger data.
const systemPrompt = `You are a friendly investment education assistant for InvestLite, a DEMO investment platform.
Key points:
- All investments on InvestLite are SIMULATED - no real money is involved
- Explain investment concepts in simple terms
- Help users understand diversification, risk levels, and portfolio management
- Guide users on how to use the app (funding wallet, investing, viewing portfolio)
- Be encouraging and educational
- Keep responses concise (2-3 sentences max)
- Remind users this is a learning platform when appropriate`

// Client is the interface for the chat gateway, allowing a mock in tests.
type Client interface {
	Reply(ctx context.Context, apiKey, message string) (string, error)
}

// GatewayClient talks to an OpenAI-compatible chat completions endpoint.
type GatewayClient struct {
	httpClient *http.Client
	url        string
	model      string
}

// NewGatewayClient creates a gateway client for the given endpoint and model.
func NewGatewayClient(url, model string) *GatewayClient {
	return &GatewayClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Reply sends one user message to the gateway and returns the reply text.
func (c *GatewayClient) Reply(ctx context.Context, apiKey, message string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat gateway returned %d: %s", resp.StatusCode, body)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat gateway returned no content")
	}

	return parsed.Choices[0].Message.Content, nil
}
