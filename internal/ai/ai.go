// Package ai generates short personalization strings (profile mottos,
// daily health tips). Generation is best effort: callers always get a
// usable string, never an error.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/logger"
)

type Generator interface {
	Motto(ctx context.Context, name string) string
	HealthTip(ctx context.Context, language string) string
}

// Static always returns the fixed fallback strings. Used when no API key
// is configured.
type Static struct{}

func (Static) Motto(ctx context.Context, name string) string {
	return constants.FallbackMotto
}

func (Static) HealthTip(ctx context.Context, language string) string {
	return constants.FallbackHealthTip
}

// Client calls a remote text-generation endpoint. Any failure, including
// timeouts and malformed responses, degrades to the fallback string.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (c *Client) Motto(ctx context.Context, name string) string {
	prompt := fmt.Sprintf("Write a short, upbeat personal motto for a habit tracker user named %s. One sentence, no quotes.", name)
	return c.generate(ctx, prompt, constants.FallbackMotto)
}

func (c *Client) HealthTip(ctx context.Context, language string) string {
	prompt := fmt.Sprintf("Give one practical daily health tip in language %q. One sentence, no preamble.", language)
	return c.generate(ctx, prompt, constants.FallbackHealthTip)
}

func (c *Client) generate(ctx context.Context, prompt, fallback string) string {
	body, err := json.Marshal(generateRequest{Prompt: prompt, MaxTokens: 60})
	if err != nil {
		return fallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return fallback
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("text generation request failed", "err", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("text generation returned non-OK status", "status", resp.StatusCode)
		return fallback
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fallback
	}
	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil || out.Text == "" {
		return fallback
	}
	return out.Text
}
