package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"telegram-numerology-bot/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIServiceAdapter = (*GroqAdapter)(nil)

// GroqAdapter implements adapter.AIServiceAdapter against Groq's
// OpenAI-compatible gateway. Chat completions path is the same as OpenAI:
// /chat/completions, Authorization: Bearer <GROQ_API_KEY>.
type GroqAdapter struct {
	apiKey string
	base   string // e.g., https://api.groq.com/openai/v1
	model  string
	client *http.Client
}

func NewGroqAdapter(apiKey, model, base string) (*GroqAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("groq api key empty")
	}
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}
	if base == "" {
		base = "https://api.groq.com/openai/v1"
	}
	return &GroqAdapter{
		apiKey: apiKey,
		base:   strings.TrimRight(base, "/"),
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (g *GroqAdapter) Name() string { return "groq" }

func (g *GroqAdapter) ListModels(ctx context.Context) ([]string, error) {
	return []string{g.model}, nil
}

func (g *GroqAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	if model == "" {
		model = g.model
	}

	reqBody := struct {
		Model       string            `json:"model"`
		Messages    []adapter.Message `json:"messages"`
		Temperature float64           `json:"temperature"`
		MaxTokens   int               `json:"max_tokens"`
	}{Model: model, Messages: messages, Temperature: 0.7, MaxTokens: 500}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("groq http %d", resp.StatusCode)
	}

	var payload struct {
		Choices []struct {
			Message adapter.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	for _, c := range payload.Choices {
		if c.Message.Content != "" {
			return strings.TrimSpace(c.Message.Content), nil
		}
	}
	return "", errors.New("groq: empty completion")
}
