package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/storyloom/engine/pkg/blueprint"
)

type scriptedLLM struct {
	response string
	err      error
	calls    int
	lastOpts ChatOptions
}

func (s *scriptedLLM) ChatCompletion(ctx context.Context, system, user string, opts ChatOptions) (string, error) {
	s.calls++
	s.lastOpts = opts
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testRegistry(t *testing.T) *blueprint.Registry {
	t.Helper()
	reg := blueprint.NewRegistry(blueprint.TropeEnemiesToLovers)
	if err := reg.Build(); err != nil {
		t.Fatalf("registry build failed: %v", err)
	}
	return reg
}

// validResponse builds a well-formed LLM payload matching the blueprint.
func validResponse(t *testing.T, bp *blueprint.Blueprint) string {
	t.Helper()
	type chapterJSON struct {
		Chapter     int    `json:"chapter"`
		Function    string `json:"function"`
		Description string `json:"description"`
	}
	var chapters []chapterJSON
	for _, ch := range bp.FlattenChapters() {
		if ch.Variant {
			continue
		}
		chapters = append(chapters, chapterJSON{
			Chapter:     ch.Chapter,
			Function:    ch.Function,
			Description: fmt.Sprintf("Chapter %d unfolds at the harbor, where Maren and Elias circle each other warily.", ch.Chapter),
		})
	}
	payload := map[string]interface{}{
		"concept_summary": "A lighthouse keeper and the developer sent to evict her.",
		"chapters":        chapters,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(data)
}

func baseRequest() Phase1Request {
	return Phase1Request{
		Concept:  "A lighthouse keeper and the developer sent to evict her.",
		Trope:    blueprint.TropeEnemiesToLovers,
		Tension:  blueprint.TensionSafety,
		Ending:   blueprint.EndingHEA,
		Modifier: blueprint.ModifierNone,
	}
}

func TestExecutePhase1_Success(t *testing.T) {
	reg := testRegistry(t)
	bp := reg.Get(blueprint.TropeEnemiesToLovers, blueprint.TensionSafety, blueprint.EndingHEA, blueprint.ModifierNone)

	llm := &scriptedLLM{response: validResponse(t, bp)}
	runner := NewRunner(reg, llm, LenientParser{}, "test-model", testLogger())

	out, err := runner.ExecutePhase1(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("ExecutePhase1 failed: %v", err)
	}

	if llm.calls != 1 {
		t.Errorf("LLM called %d times, want 1", llm.calls)
	}
	if llm.lastOpts.Model != "test-model" {
		t.Errorf("model = %q, want test-model", llm.lastOpts.Model)
	}
	if llm.lastOpts.Temperature != 1.0 {
		t.Errorf("temperature = %v, want 1.0", llm.lastOpts.Temperature)
	}
	if llm.lastOpts.MaxTokens != 8192 {
		t.Errorf("max tokens = %d, want 8192", llm.lastOpts.MaxTokens)
	}
	if len(out.Chapters) != bp.TotalChapters {
		t.Errorf("output has %d chapters, want %d", len(out.Chapters), bp.TotalChapters)
	}
	if out.Blueprint.ID != bp.ID {
		t.Errorf("output blueprint ID = %q, want %q", out.Blueprint.ID, bp.ID)
	}
	if out.ConceptSummary == "" {
		t.Error("concept summary is empty")
	}
}

func TestExecutePhase1_BlueprintNotFound(t *testing.T) {
	reg := testRegistry(t)
	llm := &scriptedLLM{}
	runner := NewRunner(reg, llm, LenientParser{}, "test-model", testLogger())

	req := baseRequest()
	req.Trope = "grumpy_sunshine"

	_, err := runner.ExecutePhase1(context.Background(), req)
	var notFound *BlueprintNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected BlueprintNotFoundError, got %v", err)
	}
	if notFound.Trope != "grumpy_sunshine" {
		t.Errorf("error trope = %q", notFound.Trope)
	}
	if llm.calls != 0 {
		t.Error("LLM was called despite missing blueprint")
	}
}

func TestExecutePhase1_LLMError(t *testing.T) {
	reg := testRegistry(t)
	upstream := errors.New("rate limited")
	runner := NewRunner(reg, &scriptedLLM{err: upstream}, LenientParser{}, "test-model", testLogger())

	_, err := runner.ExecutePhase1(context.Background(), baseRequest())
	var invErr *LLMInvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected LLMInvocationError, got %v", err)
	}
	if !errors.Is(err, upstream) {
		t.Error("LLMInvocationError does not wrap the upstream error")
	}
}

func TestExecutePhase1_ParseFailure(t *testing.T) {
	reg := testRegistry(t)
	runner := NewRunner(reg, &scriptedLLM{response: "I cannot produce JSON today."}, LenientParser{}, "test-model", testLogger())

	_, err := runner.ExecutePhase1(context.Background(), baseRequest())
	var parseErr *JSONParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected JSONParseError, got %v", err)
	}
	if parseErr.Detail == "" {
		t.Error("parse error has no detail")
	}
}

func TestExecutePhase1_MissingChaptersArray(t *testing.T) {
	reg := testRegistry(t)
	runner := NewRunner(reg, &scriptedLLM{response: `{"concept_summary": "a story"}`}, LenientParser{}, "test-model", testLogger())

	_, err := runner.ExecutePhase1(context.Background(), baseRequest())
	var missing *MissingChaptersArrayError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingChaptersArrayError, got %v", err)
	}
}

func TestExecutePhase1_ChapterCountMismatch(t *testing.T) {
	reg := testRegistry(t)
	bp := reg.Get(blueprint.TropeEnemiesToLovers, blueprint.TensionSafety, blueprint.EndingHEA, blueprint.ModifierNone)

	// Drop the final chapter from an otherwise valid response.
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(validResponse(t, bp)), &payload); err != nil {
		t.Fatal(err)
	}
	var chapters []json.RawMessage
	if err := json.Unmarshal(payload["chapters"], &chapters); err != nil {
		t.Fatal(err)
	}
	truncated, _ := json.Marshal(chapters[:len(chapters)-1])
	payload["chapters"] = truncated
	response, _ := json.Marshal(payload)

	runner := NewRunner(reg, &scriptedLLM{response: string(response)}, LenientParser{}, "test-model", testLogger())

	_, err := runner.ExecutePhase1(context.Background(), baseRequest())
	var mismatch *ChapterCountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ChapterCountMismatchError, got %v", err)
	}
	if mismatch.Expected != bp.TotalChapters || mismatch.Actual != bp.TotalChapters-1 {
		t.Errorf("mismatch = %d/%d, want %d/%d", mismatch.Actual, mismatch.Expected, bp.TotalChapters-1, bp.TotalChapters)
	}
}

func TestExecutePhase1_UnexpectedChapterNumber(t *testing.T) {
	reg := testRegistry(t)
	bp := reg.Get(blueprint.TropeEnemiesToLovers, blueprint.TensionSafety, blueprint.EndingHEA, blueprint.ModifierNone)

	response := validResponse(t, bp)
	// Renumber chapter 1 to an out-of-range chapter.
	response = strings.Replace(response, `"chapter":1,`, `"chapter":99,`, 1)

	runner := NewRunner(reg, &scriptedLLM{response: response}, LenientParser{}, "test-model", testLogger())

	_, err := runner.ExecutePhase1(context.Background(), baseRequest())
	var unexpected *UnexpectedChapterNumberError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedChapterNumberError, got %v", err)
	}
	if unexpected.Chapter != 99 {
		t.Errorf("unexpected chapter = %d, want 99", unexpected.Chapter)
	}
}

func TestExecutePhase1_ShortDescriptionRejected(t *testing.T) {
	reg := testRegistry(t)
	bp := reg.Get(blueprint.TropeEnemiesToLovers, blueprint.TensionSafety, blueprint.EndingHEA, blueprint.ModifierNone)

	response := strings.Replace(validResponse(t, bp),
		"Chapter 2 unfolds at the harbor, where Maren and Elias circle each other warily.",
		"short", 1)

	runner := NewRunner(reg, &scriptedLLM{response: response}, LenientParser{}, "test-model", testLogger())

	out, err := runner.ExecutePhase1(context.Background(), baseRequest())
	var tooShort *ChapterDescriptionTooShortError
	if !errors.As(err, &tooShort) {
		t.Fatalf("expected ChapterDescriptionTooShortError, got %v", err)
	}
	if tooShort.Chapter != 2 {
		t.Errorf("offending chapter = %d, want 2", tooShort.Chapter)
	}
	if out != nil {
		t.Error("short description still reached output assembly")
	}
}

func TestExecutePhase1_SelfHealsFunctionMismatch(t *testing.T) {
	reg := testRegistry(t)
	bp := reg.Get(blueprint.TropeEnemiesToLovers, blueprint.TensionSafety, blueprint.EndingHEA, blueprint.ModifierNone)

	want, ok := bp.ChapterByNumber(3)
	if !ok {
		t.Fatal("blueprint has no chapter 3")
	}
	response := strings.Replace(validResponse(t, bp), want.Function, "Wrong Name", 1)

	runner := NewRunner(reg, &scriptedLLM{response: response}, LenientParser{}, "test-model", testLogger())

	out, err := runner.ExecutePhase1(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("function mismatch should self-heal, got error: %v", err)
	}
	for _, ch := range out.Chapters {
		if ch.Chapter == 3 && ch.Function != want.Function {
			t.Errorf("chapter 3 function = %q, want corrected %q", ch.Function, want.Function)
		}
	}
}

func TestExecutePhase1_ConceptSummaryFallback(t *testing.T) {
	reg := testRegistry(t)
	bp := reg.Get(blueprint.TropeEnemiesToLovers, blueprint.TensionSafety, blueprint.EndingHEA, blueprint.ModifierNone)

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(validResponse(t, bp)), &payload); err != nil {
		t.Fatal(err)
	}
	delete(payload, "concept_summary")
	response, _ := json.Marshal(payload)

	runner := NewRunner(reg, &scriptedLLM{response: string(response)}, LenientParser{}, "test-model", testLogger())

	req := baseRequest()
	out, err := runner.ExecutePhase1(context.Background(), req)
	if err != nil {
		t.Fatalf("ExecutePhase1 failed: %v", err)
	}
	if out.ConceptSummary != req.Concept {
		t.Errorf("concept summary = %q, want fallback to input concept", out.ConceptSummary)
	}
}

func TestExecutePhase1_FencedResponseAccepted(t *testing.T) {
	reg := testRegistry(t)
	bp := reg.Get(blueprint.TropeEnemiesToLovers, blueprint.TensionSafety, blueprint.EndingHEA, blueprint.ModifierNone)

	fenced := "```json\n" + validResponse(t, bp) + "\n```"
	runner := NewRunner(reg, &scriptedLLM{response: fenced}, LenientParser{}, "test-model", testLogger())

	if _, err := runner.ExecutePhase1(context.Background(), baseRequest()); err != nil {
		t.Fatalf("fenced response rejected: %v", err)
	}
}
