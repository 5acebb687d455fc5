package services

import (
	"context"
	"sync"

	"github.com/storyloom/engine/pkg/generation"
)

// MockLLM is a mock implementation of LLMService for testing
type MockLLM struct {
	InitModelFunc      func(ctx context.Context, modelName string) error
	ChatCompletionFunc func(ctx context.Context, systemPrompt, userPrompt string, opts generation.ChatOptions) (string, error)

	// Track calls for testing
	InitModelCalls      []string
	ChatCompletionCalls []ChatCompletionCall

	mu sync.Mutex // protects all fields above
}

type ChatCompletionCall struct {
	SystemPrompt string
	UserPrompt   string
	Options      generation.ChatOptions
}

// NewMockLLM creates a new mock LLM service
func NewMockLLM() *MockLLM {
	return &MockLLM{
		InitModelCalls:      make([]string, 0),
		ChatCompletionCalls: make([]ChatCompletionCall, 0),
	}
}

// InitModel mocks model initialization
func (m *MockLLM) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// ChatCompletion mocks a completion call
func (m *MockLLM) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string, opts generation.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCompletionCalls = append(m.ChatCompletionCalls, ChatCompletionCall{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Options:      opts,
	})

	if m.ChatCompletionFunc != nil {
		return m.ChatCompletionFunc(ctx, systemPrompt, userPrompt, opts)
	}
	return `{"concept_summary": "Mock summary", "chapters": []}`, nil
}

// SetResponse sets up the mock to return a fixed completion
func (m *MockLLM) SetResponse(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatCompletionFunc = func(ctx context.Context, systemPrompt, userPrompt string, opts generation.ChatOptions) (string, error) {
		return response, nil
	}
}

// SetError sets up the mock to return an error on ChatCompletion
func (m *MockLLM) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatCompletionFunc = func(ctx context.Context, systemPrompt, userPrompt string, opts generation.ChatOptions) (string, error) {
		return "", err
	}
}

// Reset clears all call tracking
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = make([]string, 0)
	m.ChatCompletionCalls = make([]ChatCompletionCall, 0)
}

// GetCalls returns a copy of the call tracking data in a thread-safe way
func (m *MockLLM) GetCalls() ([]string, []ChatCompletionCall) {
	m.mu.Lock()
	defer m.mu.Unlock()

	initCalls := make([]string, len(m.InitModelCalls))
	copy(initCalls, m.InitModelCalls)

	chatCalls := make([]ChatCompletionCall, len(m.ChatCompletionCalls))
	copy(chatCalls, m.ChatCompletionCalls)

	return initCalls, chatCalls
}
