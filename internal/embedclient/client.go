// ABOUTME: Embedding client for the Ollama-style HTTP embedding endpoint (C5)
// ABOUTME: Retry/timeout shape grounded on harperreed-memory's openai_client.go GenerateEmbedding
package embedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/util"
)

// defaultMaxInputChars truncates embed() input to stay inside the model's
// context, per §4.5 (~30,000 chars), when Config.MaxInputChars is unset.
const defaultMaxInputChars = 30000

// cacheSize bounds the in-memory cache of recent Embed results. Hybrid
// search re-embeds the same handful of query strings often; this avoids
// round-tripping to the embedding endpoint for a repeated query.
const cacheSize = 256

// Client talks to an Ollama-compatible embedding endpoint.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	model         string
	maxRetries    int
	retryDelay    time.Duration
	maxInputChars int
	cache         *lru.Cache[string, Result]
}

// Config configures a Client.
type Config struct {
	BaseURL       string
	Model         string
	Timeout       time.Duration
	MaxRetries    int
	RetryDelay    time.Duration
	MaxInputChars int
}

// New constructs a Client from cfg, filling in the teacher-style defaults
// (3 retries, 2s base delay) where unset.
func New(cfg Config) *Client {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 180 * time.Second
	}
	if cfg.MaxInputChars == 0 {
		cfg.MaxInputChars = defaultMaxInputChars
	}
	cache, _ := lru.New[string, Result](cacheSize)
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		baseURL:       cfg.BaseURL,
		model:         cfg.Model,
		maxRetries:    cfg.MaxRetries,
		retryDelay:    cfg.RetryDelay,
		maxInputChars: cfg.MaxInputChars,
		cache:         cache,
	}
}

// Result is the outcome of a successful Embed call.
type Result struct {
	Vector     []float32
	Model      string
	Dimensions int
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed sends text to POST {baseURL}/api/embeddings and returns the decoded
// vector. Input longer than maxInputChars is truncated. Transport failures
// and non-2xx responses surface as ErrServiceUnavailable after retrying;
// a malformed response surfaces as ErrProtocolError without retrying.
func (c *Client) Embed(ctx context.Context, text string) (Result, error) {
	if len(text) > c.maxInputChars {
		text = text[:c.maxInputChars]
	}
	cacheKey := c.model + "\x00" + text
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}
	body, err := json.Marshal(embedRequest{Model: c.model, Prompt: text})
	if err != nil {
		return Result{}, fmt.Errorf("marshal embed request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		res, err := c.doEmbed(ctx, body)
		if err != nil {
			if errors.Is(err, memerr.ErrProtocolError) {
				return Result{}, err
			}
			lastErr = err
			continue
		}
		if c.cache != nil {
			c.cache.Add(cacheKey, res)
		}
		return res, nil
	}
	return Result{}, fmt.Errorf("embed after %d attempts: %w: %v", c.maxRetries+1, memerr.ErrServiceUnavailable, lastErr)
}

func (c *Client) doEmbed(ctx context.Context, body []byte) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed embedResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Result{}, fmt.Errorf("decode response: %w: %w", memerr.ErrProtocolError, err)
	}
	if len(parsed.Embedding) == 0 {
		return Result{}, fmt.Errorf("empty embedding: %w", memerr.ErrProtocolError)
	}

	return Result{Vector: parsed.Embedding, Model: c.model, Dimensions: len(parsed.Embedding)}, nil
}

// Health is the outcome of Health().
type Health struct {
	Available bool
	Model     string
	URL       string
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Health checks GET {baseURL}/api/tags and reports whether the configured
// model is present among the available models.
func (c *Client) Health(ctx context.Context) Health {
	h := Health{Model: c.model, URL: c.baseURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return h
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return h
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return h
	}

	var parsed tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return h
	}
	for _, m := range parsed.Models {
		if m.Name == c.model {
			h.Available = true
			break
		}
	}
	return h
}
