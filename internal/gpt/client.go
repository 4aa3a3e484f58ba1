// Package gpt adapts hosted generative models to domain.Completer: an
// OpenAI-compatible chat-completions client and a Gemini client.
package gpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

var _ domain.Completer = (*Client)(nil)

// ── Wire types ───────────────────────────────────────────────────

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel names the model. Azure deployments encode it in the URL and
// leave it empty.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// Client asks an OpenAI-compatible chat-completions endpoint for recipes.
// Every request carries PromptMealPlanner as the system message.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
	log      *logger.Logger
}

// NewClient creates a client for endpoint, the full chat/completions URL.
// apiKey is sent both as a bearer token and as api-key so OpenAI and
// Azure accept it.
func NewClient(endpoint, apiKey string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 60 * time.Second},
		log:      log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends prompt as the user message and returns the reply text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gpt: %w", domain.ErrNoCredential)
	}

	data, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: PromptMealPlanner},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		TopP:        0.95,
		MaxTokens:   3000,
	})
	if err != nil {
		return "", fmt.Errorf("gpt: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("gpt: building request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("X-Request-ID", reqID)

	c.log.Debug("request %s: POST %s (%d bytes)", reqID, c.endpoint, len(data))
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gpt: request %s: %w", reqID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gpt: reading response %s: %w", reqID, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gpt: API %s (request %s)\n%s", resp.Status, reqID, truncate(string(body), 500))
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("gpt: unmarshal response %s: %w", reqID, err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("gpt: request %s: %w", reqID, domain.ErrEmptyCompletion)
	}

	reply := out.Choices[0].Message.Content
	c.log.Debug("reply %s (%d chars): %s", reqID, len(reply), truncate(reply, 120))
	return reply, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
