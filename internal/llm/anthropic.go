package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"claudechat/internal/logging"
	"claudechat/internal/store"
)

// AnthropicClient talks to the Anthropic Messages API. One completion is one
// POST to {BaseURL}/messages carrying the full conversation history.
type AnthropicClient struct {
	config     Config
	httpClient *http.Client
}

// NewAnthropicClient creates a client from cfg, filling in defaults for any
// zero-valued field except the API key.
func NewAnthropicClient(cfg Config) *AnthropicClient {
	defaults := DefaultConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaults.SystemPrompt
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	return &AnthropicClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Model returns the model identifier requests are sent with.
func (c *AnthropicClient) Model() string {
	return c.config.Model
}

// Complete sends the history to the Messages API and returns the assistant's
// reply text. The history must be non-empty and end with a user message;
// callers enforce that by construction.
func (c *AnthropicClient) Complete(ctx context.Context, history []store.Message) (string, error) {
	if c.config.APIKey == "" {
		return "", &RequestError{Message: "no API key configured"}
	}
	if len(history) == 0 {
		return "", &RequestError{Message: "empty message history"}
	}

	msgs := make([]apiMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, apiMessage{Role: m.Role, Content: m.Content})
	}

	reqBody := apiRequest{
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
		System:    c.config.SystemPrompt,
		Messages:  msgs,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &RequestError{Message: "failed to encode request", Err: err}
	}

	url := c.config.BaseURL + "/messages"
	logging.APIDebug("POST %s model=%s messages=%d", url, c.config.Model, len(msgs))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &RequestError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	timer := logging.StartTimer(logging.CategoryAPI, "messages request")
	resp, err := c.httpClient.Do(req)
	timer.Stop()
	if err != nil {
		logging.API("request failed: %v", err)
		return "", &RequestError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.apiError(resp.StatusCode, body)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &RequestError{StatusCode: resp.StatusCode, Message: "failed to decode response", Err: err}
	}
	if parsed.Error != nil {
		return "", &RequestError{StatusCode: resp.StatusCode, Message: parsed.Error.Message}
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &RequestError{StatusCode: resp.StatusCode, Message: "response contained no text content"}
	}

	logging.APIDebug("completion ok: stop=%s chars=%d", parsed.StopReason, sb.Len())
	return sb.String(), nil
}

// apiError turns a non-success response into a RequestError, preferring the
// structured error message when the body carries one.
func (c *AnthropicClient) apiError(status int, body []byte) error {
	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return &RequestError{StatusCode: status, Message: parsed.Error.Message}
	}
	return &RequestError{StatusCode: status, Message: fmt.Sprintf("unexpected status %s", http.StatusText(status))}
}
