// Package llm is the boundary to the remote chat-completion service. It turns
// an ordered message history into one outbound request and extracts the
// assistant's reply.
package llm

import (
	"context"
	"fmt"
	"time"

	"claudechat/internal/store"
)

// Client is the minimal interface the chat UI uses to obtain completions.
type Client interface {
	Complete(ctx context.Context, history []store.Message) (string, error)
}

// RequestError represents a failed completion request: transport failure,
// non-success status, or an unusable response payload.
type RequestError struct {
	StatusCode int // 0 when the request never got a response
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion request failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("completion request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Config holds configuration for the Anthropic client.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	MaxTokens    int
	SystemPrompt string
	Timeout      time.Duration
}

// DefaultConfig returns sensible defaults matching the hosted Messages API.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:       apiKey,
		BaseURL:      "https://api.anthropic.com/v1",
		Model:        "claude-3-5-sonnet-20241022",
		MaxTokens:    4000,
		SystemPrompt: "You are Claude, a helpful AI assistant created by Anthropic.",
		Timeout:      5 * time.Minute,
	}
}

// apiMessage is the minimal role/content pair the remote service needs.
// Timestamps are dropped.
type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiRequest is the Messages API request body.
type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
}

// contentBlock is one block of the response content.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// apiResponse is the Messages API response body.
type apiResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []contentBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
