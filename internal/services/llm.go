package services

import (
	"context"

	"github.com/storyloom/engine/pkg/generation"
)

// LLMService defines the interface for interacting with an LLM API.
// It satisfies generation.LLMClient.
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// ChatCompletion makes a single chat completion call with a system
	// and user prompt
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string, opts generation.ChatOptions) (string, error)
}
