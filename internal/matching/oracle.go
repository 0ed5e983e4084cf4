package matching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Oracle proposes a raw compatibility score for a prepared prompt. The
// response is untrusted: it may be malformed, out of range, or never arrive.
type Oracle interface {
	Propose(ctx context.Context, prompt string) (string, error)
}

// OpenAIRequest represents the request structure for OpenAI API
type OpenAIRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIResponse represents the response from OpenAI API
type OpenAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenAIOracle calls the OpenAI chat completions API to score a candidate/job pair.
type OpenAIOracle struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenAIOracle configures the oracle from OPENAI_API_KEY, OPENAI_MODEL and
// OPENAI_TIMEOUT_SECONDS. The HTTP client timeout is a hard upper bound; the
// per-call context may cut the request shorter.
func NewOpenAIOracle() *OpenAIOracle {
	mdl := os.Getenv("OPENAI_MODEL")
	if mdl == "" {
		mdl = "gpt-4" // Default model
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("OPENAI_TIMEOUT_SECONDS"); raw != "" {
		if parsed, err := time.ParseDuration(raw + "s"); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return &OpenAIOracle{
		apiKey:   os.Getenv("OPENAI_API_KEY"),
		model:    mdl,
		endpoint: "https://api.openai.com/v1/chat/completions",
		client:   &http.Client{Timeout: timeout},
	}
}

// Propose sends the prompt and returns the raw assistant message content.
func (o *OpenAIOracle) Propose(ctx context.Context, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	requestBody := OpenAIRequest{
		Model: o.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a healthcare staffing compatibility expert. You must respond only with valid JSON.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}
