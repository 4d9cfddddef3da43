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

	"github.com/sirupsen/logrus"

	"burlometro/internal/scoring"
)

const (
	defaultBaseURL     = "https://openrouter.ai/api/v1"
	defaultModel       = "deepseek/deepseek-chat-v3-0324:free"
	defaultReferer     = "https://burlometro.pt/"
	defaultTitle       = "Burlómetro"
	defaultTemperature = 0.3
	defaultMaxTokens   = 500
	defaultTimeout     = 30 * time.Second
)

// Config holds OpenRouter configuration parameters.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Referer     string
	Title       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client implements the Classifier interface against an OpenAI-compatible chat
// completions API (OpenRouter by default).
type Client struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	referer     string
	title       string
	temperature float64
	maxTokens   int
}

// NewClient constructs a Client if the supplied configuration carries a credential.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrDisabled
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(cfg.Referer) == "" {
		cfg.Referer = defaultReferer
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = defaultTitle
	}
	temp := cfg.Temperature
	if temp <= 0 {
		temp = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		referer:     cfg.Referer,
		title:       cfg.Title,
		temperature: temp,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Enabled reports whether the client can make outbound calls.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Classify asks the provider for a verdict on message. Transport problems wrap
// ErrTransport and malformed replies wrap ErrParse.
func (c *Client) Classify(ctx context.Context, message string) (scoring.Result, error) {
	if !c.Enabled() {
		return scoring.Result{}, ErrDisabled
	}

	body, err := json.Marshal(c.buildPayload(message))
	if err != nil {
		return scoring.Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return scoring.Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", c.title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return scoring.Result{}, fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return scoring.Result{}, fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}
	if len(decoded.Choices) == 0 {
		return scoring.Result{}, fmt.Errorf("%w: empty choices", ErrTransport)
	}

	content := decoded.Choices[0].Message.Content
	logrus.WithFields(logrus.Fields{
		"model":          c.model,
		"content_length": len(content),
	}).Debug("provider replied")

	return Normalize(content)
}

func (c *Client) buildPayload(message string) chatCompletionRequest {
	return chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: UserPrompt(message)},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
}
