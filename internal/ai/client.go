// Package ai talks to an OpenAI-compatible completion backend (chat
// completions + embeddings). It is the only component doing network IO in
// the chat path, so every call is context-aware and timeout-bounded.
package ai

import (
	"context"
	"errors"
	"net/http"
	"time"
)

var (
	// ErrBackendUnavailable covers connection failures and non-2xx
	// responses from the completion backend.
	ErrBackendUnavailable = errors.New("completion backend unavailable")
	// ErrBackendTimeout is returned when the bounded call deadline expires.
	ErrBackendTimeout = errors.New("completion backend timed out")
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClientConfig holds the settings for one backend endpoint.
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	EmbeddingModel string
	RequestTimeout time.Duration
}

// Client is an OpenAI-compatible API client. The zero timeout defaults to
// 40 seconds; an unbounded backend call is never issued.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 40 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// Model returns the configured chat model identifier.
func (c *Client) Model() string { return c.cfg.Model }

func (c *Client) classifyErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrBackendTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrBackendTimeout
	}
	return ErrBackendUnavailable
}
