package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/storyloom/engine/pkg/blueprint"
	"github.com/storyloom/engine/pkg/prompts"
)

const (
	// minDescriptionLength is the quality gate on returned chapter
	// descriptions, measured after trimming whitespace.
	minDescriptionLength = 20

	DefaultTemperature = 1.0
	DefaultMaxTokens   = 8192
)

// ChatOptions are the per-call parameters for an LLM invocation.
type ChatOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// LLMClient is the language-model collaborator the runner consumes. The
// single ChatCompletion call is phase 1's only suspension point.
type LLMClient interface {
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string, opts ChatOptions) (string, error)
}

// Phase1Request identifies a generation: the free-text concept plus the
// four blueprint axes.
type Phase1Request struct {
	Concept  string             `json:"concept"`
	Trope    string             `json:"trope"`
	Tension  blueprint.Tension  `json:"tension"`
	Ending   blueprint.Ending   `json:"ending"`
	Modifier blueprint.Modifier `json:"modifier"`
}

// GeneratedChapter is one validated chapter of the phase-1 output.
type GeneratedChapter struct {
	Chapter     int    `json:"chapter"`
	Function    string `json:"function"`
	Description string `json:"description"`
}

// BlueprintSummary is the trimmed blueprint reference embedded in the
// phase-1 output for downstream phases.
type BlueprintSummary struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	Trope           string                     `json:"trope"`
	Tension         blueprint.Tension          `json:"tension"`
	Ending          blueprint.Ending           `json:"ending"`
	Modifier        blueprint.Modifier         `json:"modifier"`
	TotalChapters   int                        `json:"total_chapters"`
	ExpectedRoles   []string                   `json:"expected_roles"`
	SecretStructure *blueprint.SecretStructure `json:"secret_structure,omitempty"`
	Phases          []blueprint.Phase          `json:"phases"`
}

// Phase1Output is the validated result of a phase-1 execution. It is
// constructed fresh per request and never persisted by this package.
type Phase1Output struct {
	Blueprint      BlueprintSummary   `json:"blueprint"`
	Chapters       []GeneratedChapter `json:"chapters"`
	ConceptSummary string             `json:"concept_summary"`
}

// phase1Payload mirrors the JSON shape the LLM is instructed to return.
// Chapters stays raw so a missing array can be told apart from an empty
// one.
type phase1Payload struct {
	ConceptSummary string          `json:"concept_summary"`
	Chapters       json.RawMessage `json:"chapters"`
}

// Runner orchestrates phase 1: blueprint lookup, prompt building, the
// LLM call, response parsing, and validation of the returned chapters
// against the blueprint. Every failure is terminal; retry policy belongs
// to the caller.
type Runner struct {
	registry *blueprint.Registry
	llm      LLMClient
	parser   ResponseParser
	model    string
	logger   *slog.Logger
}

// NewRunner wires a runner. The registry must already be built.
func NewRunner(registry *blueprint.Registry, llm LLMClient, parser ResponseParser, model string, logger *slog.Logger) *Runner {
	return &Runner{
		registry: registry,
		llm:      llm,
		parser:   parser,
		model:    model,
		logger:   logger,
	}
}

// ExecutePhase1 runs the full phase-1 pipeline for one request.
func (r *Runner) ExecutePhase1(ctx context.Context, req Phase1Request) (*Phase1Output, error) {
	bp := r.registry.Get(req.Trope, req.Tension, req.Ending, req.Modifier)
	if bp == nil {
		return nil, &BlueprintNotFoundError{
			Trope:    req.Trope,
			Tension:  req.Tension,
			Ending:   req.Ending,
			Modifier: req.Modifier,
		}
	}

	system, user, err := prompts.BuildPrompts(req.Concept, bp)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	r.logger.Debug("Executing phase 1",
		"blueprint", bp.ID,
		"model", r.model,
		"prompt_length", len(user))

	raw, err := r.llm.ChatCompletion(ctx, system, user, ChatOptions{
		Model:       r.model,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	})
	if err != nil {
		return nil, &LLMInvocationError{Err: err}
	}

	result := r.parser.Parse(raw)
	if !result.Success {
		return nil, &JSONParseError{Detail: result.Error}
	}

	var payload phase1Payload
	if err := json.Unmarshal(result.Data, &payload); err != nil {
		return nil, &JSONParseError{Detail: err.Error()}
	}

	chapters, err := r.validateChapters(bp, payload)
	if err != nil {
		return nil, err
	}

	summary := payload.ConceptSummary
	if summary == "" {
		summary = req.Concept
	}

	return &Phase1Output{
		Blueprint: BlueprintSummary{
			ID:              bp.ID,
			Name:            bp.Name,
			Trope:           bp.Trope,
			Tension:         bp.Tension,
			Ending:          bp.Ending,
			Modifier:        bp.Modifier,
			TotalChapters:   bp.TotalChapters,
			ExpectedRoles:   bp.ExpectedRoles,
			SecretStructure: bp.SecretStructure,
			Phases:          bp.Phases,
		},
		Chapters:       chapters,
		ConceptSummary: summary,
	}, nil
}

// validateChapters checks the returned chapter array against the
// blueprint. The blueprint's function labels are authoritative: a
// mismatched function is overwritten and logged, not raised. Everything
// else is fatal.
func (r *Runner) validateChapters(bp *blueprint.Blueprint, payload phase1Payload) ([]GeneratedChapter, error) {
	if payload.Chapters == nil {
		return nil, &MissingChaptersArrayError{}
	}

	var chapters []GeneratedChapter
	if err := json.Unmarshal(payload.Chapters, &chapters); err != nil {
		return nil, &JSONParseError{Detail: fmt.Sprintf("chapters array: %v", err)}
	}

	if len(chapters) != bp.TotalChapters {
		return nil, &ChapterCountMismatchError{Expected: bp.TotalChapters, Actual: len(chapters)}
	}

	expected := make(map[int]blueprint.Chapter, bp.TotalChapters)
	for _, ch := range bp.FlattenChapters() {
		if !ch.Variant {
			expected[ch.Chapter] = ch
		}
	}

	for i, ch := range chapters {
		want, ok := expected[ch.Chapter]
		if !ok {
			return nil, &UnexpectedChapterNumberError{Chapter: ch.Chapter}
		}

		trimmed := strings.TrimSpace(ch.Description)
		if len(trimmed) < minDescriptionLength {
			return nil, &ChapterDescriptionTooShortError{Chapter: ch.Chapter, Length: len(trimmed)}
		}

		if ch.Function != want.Function {
			r.logger.Warn("Correcting mismatched chapter function",
				"chapter", ch.Chapter,
				"got", ch.Function,
				"want", want.Function)
			chapters[i].Function = want.Function
		}
	}

	return chapters, nil
}
