package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Complete sends one chat-completion request and returns the whole response
// text. Callers get a complete string or an error, never partial tokens.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	reqBody := map[string]interface{}{
		"model":    c.cfg.Model,
		"messages": messages,
		"stream":   false,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal llm request failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("build llm request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", c.classifyErr(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response failed: %w", c.classifyErr(err))
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm response status %d: %w", resp.StatusCode, ErrBackendUnavailable)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse llm json failed: %w", ErrBackendUnavailable)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty llm choices: %w", ErrBackendUnavailable)
	}
	return parsed.Choices[0].Message.Content, nil
}

// Ping checks backend reachability with a short deadline. Used by the
// health endpoint only.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build ping request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping backend failed: %w", c.classifyErr(err))
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// 404 only means the provider has no /models route; anything else in the
	// 4xx/5xx range (bad key, quota, outage) means chat calls will fail too.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("ping backend status %d: %w", resp.StatusCode, ErrBackendUnavailable)
	}
	return nil
}
