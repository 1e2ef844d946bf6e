// Package huggingface provides a client for the hosted Hugging Face
// Inference API. It covers the two pipelines this service consumes:
// feature-extraction for embeddings and text generation for chat replies.
//
// The actual model computation happens on the hosted service; this client
// is transport only. Transient failures (429, 5xx) are retried with
// exponential backoff, honoring Retry-After when present.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

// ErrNotConfigured indicates the client was constructed without the
// required token or model identifiers. Callers see it when chat is used
// before the Hugging Face environment variables are set.
var ErrNotConfigured = errors.New("hugging face client not configured")

const defaultMaxRetries = 3

// Config configures the inference client.
type Config struct {
	// BaseURL of the inference API. Defaults to the serverless endpoint.
	BaseURL string

	// Token is the Hugging Face access token. SENSITIVE: never logged.
	Token string

	// EmbeddingsModel is the feature-extraction model identifier.
	EmbeddingsModel string

	// ChatModel is the text-generation model identifier.
	ChatModel string

	// Timeout bounds each HTTP call. Defaults to 60s.
	Timeout time.Duration
}

// Client talks to the Hugging Face Inference API.
// It is safe for concurrent use.
type Client struct {
	baseURL     string
	token       string
	embedModel  string
	chatModel   string
	client      *http.Client
	maxRetries  int
	logger      log.Logger
	retryPauses func(attempt int) time.Duration // injectable for tests
}

// New creates an inference client. The client is returned even when the
// configuration is incomplete; calls then fail with ErrNotConfigured so
// the server can start degraded, matching startup behavior when
// credentials are absent.
func New(cfg Config, logger log.Logger) *Client {
	if logger == nil {
		logger = log.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		token:       cfg.Token,
		embedModel:  cfg.EmbeddingsModel,
		chatModel:   cfg.ChatModel,
		client:      &http.Client{Timeout: cfg.Timeout},
		maxRetries:  defaultMaxRetries,
		logger:      logger,
		retryPauses: retryDelay,
	}
}

// Embed returns one embedding vector per input text using the
// feature-extraction pipeline.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c.token == "" || c.embedModel == "" {
		return nil, ErrNotConfigured
	}
	if len(texts) == 0 {
		return nil, nil
	}

	body := map[string]any{
		"inputs":  texts,
		"options": map[string]any{"wait_for_model": true},
	}
	url := fmt.Sprintf("%s/pipeline/feature-extraction/%s", c.baseURL, c.embedModel)

	payload, err := c.post(ctx, url, body)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}

	var vectors [][]float32
	if err := json.Unmarshal(payload, &vectors); err != nil {
		return nil, fmt.Errorf("decoding embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d vectors for %d texts",
			len(vectors), len(texts))
	}
	return vectors, nil
}

// Generate produces a completion for the prompt using the text-generation
// pipeline with the given response token limit.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.token == "" || c.chatModel == "" {
		return "", ErrNotConfigured
	}

	body := map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_new_tokens":   maxTokens,
			"return_full_text": false,
		},
		"options": map[string]any{"wait_for_model": true},
	}
	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.chatModel)

	payload, err := c.post(ctx, url, body)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}
	if len(out) == 0 {
		return "", errors.New("no generation returned")
	}
	return out[0].GeneratedText, nil
}

// post sends a JSON request and returns the response body, retrying
// transient failures.
func (c *Client) post(ctx context.Context, url string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt < c.maxRetries {
				c.sleep(ctx, c.retryPauses(attempt))
				continue
			}
			break
		}

		payload, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("inference API: %s", resp.Status)
			// The serverless API returns 503 with Retry-After while a
			// model is loading.
			delay := c.retryPauses(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, parseErr := strconv.Atoi(ra); parseErr == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			if attempt < c.maxRetries {
				c.logger.Debug("retrying inference call",
					"status", resp.StatusCode, "attempt", attempt+1)
				c.sleep(ctx, delay)
				continue
			}
		case resp.StatusCode >= 300:
			// Provider error details go to the log, never to callers.
			c.logger.Error("inference call rejected",
				"status", resp.StatusCode, "body", string(payload))
			return nil, fmt.Errorf("inference API: %s", resp.Status)
		case readErr != nil:
			lastErr = fmt.Errorf("reading response: %w", readErr)
			if attempt < c.maxRetries {
				c.sleep(ctx, c.retryPauses(attempt))
				continue
			}
		default:
			return payload, nil
		}
	}

	if lastErr == nil {
		lastErr = errors.New("inference call failed")
	}
	return nil, lastErr
}

// sleep waits for the delay or until the context is cancelled.
func (c *Client) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// retryDelay returns an exponential backoff capped at 5s.
func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
