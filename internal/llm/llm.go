package llm

import (
	"context"
	"errors"
)

var (
	// ErrBackendUnavailable means the model backend could not be reached
	// or returned a non-success status.
	ErrBackendUnavailable = errors.New("llm backend unavailable")
	// ErrEmptyCompletion means the backend answered but produced no content.
	ErrEmptyCompletion = errors.New("llm returned empty completion")
)

// TokenUsage reports the token accounting for a single completion.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completion is the model's answer to a prompt. Usage is nil when the
// backend did not report token counts.
type Completion struct {
	Content string
	Usage   *TokenUsage
}

// Client sends a single-turn prompt to a model backend.
type Client interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
}
