// Package llm wraps the vision model used for diagnosis behind a single
// request/response call.
package llm

import (
	"context"
	"errors"
	"fmt"

	"plantdefender/internal/config"
)

var ErrEmptyResponse = errors.New("model returned no candidates")

type Request struct {
	System   string
	Prompt   string
	Image    []byte
	MIMEType string
}

// Client sends one request and waits for the complete text answer.
type Client interface {
	Send(ctx context.Context, req Request) (string, error)
}

// New builds the client for cfg.Provider.
func New(ctx context.Context, cfg config.AIConfig) (Client, error) {
	switch cfg.Provider {
	case "", "gemini":
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
}
