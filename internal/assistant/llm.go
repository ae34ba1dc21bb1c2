package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrLLMNotConfigured is returned when no generation endpoint is set.
// Handlers catch it and fall back to templated responses.
var ErrLLMNotConfigured = errors.New("LLM service not configured")

// Generator produces text for a prompt within a token budget.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// LLMClient calls the external generation endpoint: POST {base}/generate
// with {"prompt", "max_tokens"}, expecting {"text", "response_length"}.
type LLMClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

// LLMOptions tunes the generation client.
type LLMOptions struct {
	Timeout    time.Duration
	MaxRetries int
	RateLimit  float64 // requests per second
}

// NewLLMClient creates a generation client. An empty baseURL is allowed;
// Generate then fails with ErrLLMNotConfigured and handlers degrade to
// their template fallbacks.
func NewLLMClient(baseURL string, opts LLMOptions) *LLMClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 2
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}

	return &LLMClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		maxRetries: opts.MaxRetries,
	}
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type generateResponse struct {
	Text           string `json:"text"`
	ResponseLength int    `json:"response_length,omitempty"`
}

// Generate calls the generation endpoint with a bounded number of attempts
// and jittered backoff between them. Every failure mode comes back as an
// error the handlers resolve to a deterministic fallback.
func (c *LLMClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.baseURL == "" {
		return "", ErrLLMNotConfigured
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}

		text, err := c.generateOnce(ctx, prompt, maxTokens)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt < c.maxRetries {
			backoff := time.Duration(attempt)*250*time.Millisecond +
				time.Duration(rand.Int63n(int64(250*time.Millisecond)))
			log.Printf("⚠️ [LLM] Attempt %d failed (%v), retrying in %v", attempt, err, backoff)

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return "", lastErr
}

func (c *LLMClient) generateOnce(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt, MaxTokens: maxTokens})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("LLM returned %d", resp.StatusCode)
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("🤖 [LLM] Generated %d chars", generated.ResponseLength)
	return generated.Text, nil
}
