package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewVeniceService(t *testing.T) {
	service := NewVeniceService("test-api-key")

	if service.apiKey != "test-api-key" {
		t.Errorf("Expected API key test-api-key, got %s", service.apiKey)
	}
	if service.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
}

func TestVeniceService_InitModel(t *testing.T) {
	service := NewVeniceService("test-key")

	if err := service.InitModel(context.Background(), "test-model"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestVeniceChatRequestStructure(t *testing.T) {
	req := VeniceChatRequest{
		Model: "venice-uncensored",
		Messages: []veniceMessage{
			{Role: "system", Content: "You are a story architect."},
			{Role: "user", Content: "Hello"},
		},
		Temperature: 1.0,
		MaxTokens:   8192,
		Stream:      false,
		VeniceParameters: VeniceParameters{
			IncludeVeniceSystemPrompt: false,
			EnableWebSearch:           "off",
		},
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	jsonStr := string(data)
	for _, want := range []string{
		`"include_venice_system_prompt":false`,
		`"enable_web_search":"off"`,
		`"role":"system"`,
	} {
		if !strings.Contains(jsonStr, want) {
			t.Errorf("Expected JSON to contain %s, got %s", want, jsonStr)
		}
	}
}

func TestVeniceChatResponseParsing(t *testing.T) {
	raw := `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "venice-uncensored",
		"choices": [
			{"index": 0, "message": {"role": "assistant", "content": "hello back"}, "finish_reason": "stop"}
		],
		"usage": {"prompt_tokens": 10, "completion_tokens": 3, "total_tokens": 13}
	}`

	var resp VeniceChatResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if len(resp.Choices) != 1 {
		t.Fatalf("Expected 1 choice, got %d", len(resp.Choices))
	}
	if resp.Choices[0].Message.Content != "hello back" {
		t.Errorf("Unexpected content: %q", resp.Choices[0].Message.Content)
	}
}
