package services

import (
	"context"
	"errors"
	"testing"

	"github.com/storyloom/engine/pkg/generation"
)

func TestMockLLM_TracksCalls(t *testing.T) {
	mock := NewMockLLM()
	ctx := context.Background()

	if err := mock.InitModel(ctx, "model-a"); err != nil {
		t.Fatalf("InitModel failed: %v", err)
	}

	opts := generation.ChatOptions{Model: "model-a", Temperature: 1.0, MaxTokens: 8192}
	if _, err := mock.ChatCompletion(ctx, "system", "user", opts); err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}

	initCalls, chatCalls := mock.GetCalls()
	if len(initCalls) != 1 || initCalls[0] != "model-a" {
		t.Errorf("Unexpected init calls: %v", initCalls)
	}
	if len(chatCalls) != 1 {
		t.Fatalf("Expected 1 chat call, got %d", len(chatCalls))
	}
	if chatCalls[0].SystemPrompt != "system" || chatCalls[0].UserPrompt != "user" {
		t.Errorf("Unexpected prompts: %+v", chatCalls[0])
	}
	if chatCalls[0].Options.MaxTokens != 8192 {
		t.Errorf("Unexpected options: %+v", chatCalls[0].Options)
	}
}

func TestMockLLM_SetResponseAndError(t *testing.T) {
	mock := NewMockLLM()
	ctx := context.Background()

	mock.SetResponse(`{"concept_summary": "s", "chapters": []}`)
	got, err := mock.ChatCompletion(ctx, "sys", "usr", generation.ChatOptions{})
	if err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if got != `{"concept_summary": "s", "chapters": []}` {
		t.Errorf("Unexpected response: %q", got)
	}

	wantErr := errors.New("boom")
	mock.SetError(wantErr)
	if _, err := mock.ChatCompletion(ctx, "sys", "usr", generation.ChatOptions{}); !errors.Is(err, wantErr) {
		t.Errorf("Expected %v, got %v", wantErr, err)
	}

	mock.Reset()
	initCalls, chatCalls := mock.GetCalls()
	if len(initCalls) != 0 || len(chatCalls) != 0 {
		t.Error("Reset did not clear call tracking")
	}
}
