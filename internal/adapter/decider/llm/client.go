package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"
)

// Config points the client at an OpenAI-compatible chat-completions endpoint.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client implements ports.Decider against a chat-completions API. Action
// replies are schema-checked before they leave this package; a reply that
// fails validation comes back as an error so the scheduler degrades the turn
// to wait with the validation message as rationale.
type Client struct {
	cfg  Config
	http *http.Client
	docs *toolDocs
}

func NewClient(cfg Config, tun ship.Tuning) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		docs: &toolDocs{tun: tun},
	}
}

func (c *Client) DecideAction(ctx context.Context, q ports.DecisionQuery) (string, error) {
	raw, err := c.chat(ctx, decisionSystemPrompt(c.docs.render(), q), decisionUserPrompt(q))
	if err != nil {
		return "", err
	}
	if err := validateDecision(raw); err != nil {
		return "", err
	}
	return raw, nil
}

func (c *Client) Consolidate(ctx context.Context, q ports.MemoryQuery) (string, error) {
	system, user := consolidatePrompt(q)
	return c.chat(ctx, system, user)
}

func (c *Client) Narrate(ctx context.Context, q ports.NarrationQuery) (string, error) {
	system, user := narrationPrompt(q)
	return c.chat(ctx, system, user)
}

func (c *Client) Converse(ctx context.Context, q ports.ChatQuery) (string, error) {
	system, user := conversePrompt(q)
	return c.chat(ctx, system, user)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) chat(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat endpoint error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat endpoint returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
