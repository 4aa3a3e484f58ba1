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

var _ domain.Completer = (*GeminiClient)(nil)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.5-flash"
)

// ── Wire types ───────────────────────────────────────────────────

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"topP"`
	CandidateCount int     `json:"candidateCount"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// ── Client ───────────────────────────────────────────────────────

// GeminiOption configures the GeminiClient.
type GeminiOption func(*GeminiClient)

// WithGeminiModel overrides the model name (default gemini-2.5-flash).
func WithGeminiModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		if model != "" {
			g.model = model
		}
	}
}

// WithGeminiBaseURL points the client at another API root. Used by tests.
func WithGeminiBaseURL(u string) GeminiOption {
	return func(g *GeminiClient) { g.baseURL = strings.TrimSuffix(u, "/") }
}

// GeminiClient calls the Gemini generateContent endpoint.
type GeminiClient struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	topP        float64
	http        *http.Client
	log         *logger.Logger
}

// NewGeminiClient creates a Gemini client. Sampling uses temperature 1.0
// and topP 0.95.
func NewGeminiClient(apiKey string, log *logger.Logger, opts ...GeminiOption) *GeminiClient {
	g := &GeminiClient{
		baseURL:     defaultGeminiBaseURL,
		model:       defaultGeminiModel,
		apiKey:      apiKey,
		temperature: 1.0,
		topP:        0.95,
		http:        &http.Client{Timeout: 60 * time.Second},
		log:         log,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Complete implements domain.Completer.
func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini: %w", domain.ErrNoCredential)
	}

	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:    g.temperature,
			TopP:           g.topP,
			CandidateCount: 1,
		},
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-goog-api-key", g.apiKey)
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	g.log.Debug("POST %s (%d bytes, request %s)", url, len(jsonData), reqID)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: API %s (request %s)\n%s", resp.Status, reqID, truncate(string(respBody), 500))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gemini: unmarshal response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: request %s: %w", reqID, domain.ErrEmptyCompletion)
	}
	reply := result.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("gemini: request %s: %w", reqID, domain.ErrEmptyCompletion)
	}

	g.log.Debug("reply %s (%d chars): %s", reqID, len(reply), truncate(reply, 120))
	return reply, nil
}
