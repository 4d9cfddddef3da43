package ai

import (
	"context"
	"errors"

	"burlometro/internal/scoring"
)

// Classifier exposes model-backed scam classification.
type Classifier interface {
	Enabled() bool
	Classify(ctx context.Context, message string) (scoring.Result, error)
}

var (
	// ErrDisabled is returned when no provider credential is configured.
	ErrDisabled = errors.New("ai classifier disabled")
	// ErrTransport covers non-2xx replies, network failures, timeouts and empty completions.
	ErrTransport = errors.New("provider transport failure")
	// ErrParse is returned when the provider reply does not hold a valid verdict.
	ErrParse = errors.New("provider response unparseable")
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
