package generation

import (
	"fmt"

	"github.com/storyloom/engine/pkg/blueprint"
)

// Every error in this file is terminal for the phase-1 execution that
// raised it: there are no retries and no partial results. Each carries
// enough detail for the caller to render an actionable message.

// BlueprintNotFoundError reports a lookup for a combination with no
// registered blueprint.
type BlueprintNotFoundError struct {
	Trope    string
	Tension  blueprint.Tension
	Ending   blueprint.Ending
	Modifier blueprint.Modifier
}

func (e *BlueprintNotFoundError) Error() string {
	return fmt.Sprintf("no blueprint registered for trope=%s tension=%s ending=%s modifier=%s",
		e.Trope, e.Tension, e.Ending, e.Modifier)
}

// LLMInvocationError wraps a failure propagated from the injected LLM
// client. The underlying error is opaque to this package.
type LLMInvocationError struct {
	Err error
}

func (e *LLMInvocationError) Error() string {
	return fmt.Sprintf("llm invocation failed: %v", e.Err)
}

func (e *LLMInvocationError) Unwrap() error {
	return e.Err
}

// JSONParseError reports that the response parser could not extract a
// JSON object from the raw LLM response. The parser's detail is passed
// through unchanged.
type JSONParseError struct {
	Detail string
}

func (e *JSONParseError) Error() string {
	return fmt.Sprintf("failed to parse LLM response as JSON: %s", e.Detail)
}

// MissingChaptersArrayError reports a parsed payload with no chapters
// array.
type MissingChaptersArrayError struct{}

func (e *MissingChaptersArrayError) Error() string {
	return "parsed response has no chapters array"
}

// ChapterCountMismatchError reports a chapter count that does not equal
// the blueprint's expected total.
type ChapterCountMismatchError struct {
	Expected int
	Actual   int
}

func (e *ChapterCountMismatchError) Error() string {
	return fmt.Sprintf("response has %d chapters, blueprint expects %d", e.Actual, e.Expected)
}

// UnexpectedChapterNumberError reports a returned chapter number with no
// corresponding blueprint entry.
type UnexpectedChapterNumberError struct {
	Chapter int
}

func (e *UnexpectedChapterNumberError) Error() string {
	return fmt.Sprintf("response contains chapter %d, which does not exist in the blueprint", e.Chapter)
}

// ChapterDescriptionTooShortError reports a chapter description that is
// missing or under the minimum trimmed length.
type ChapterDescriptionTooShortError struct {
	Chapter int
	Length  int
}

func (e *ChapterDescriptionTooShortError) Error() string {
	return fmt.Sprintf("chapter %d description is %d characters after trimming; minimum is %d",
		e.Chapter, e.Length, minDescriptionLength)
}
