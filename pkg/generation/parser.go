package generation

import (
	"encoding/json"
	"strings"
)

// ParseResult is the outcome of extracting a JSON object from a raw LLM
// response. Data holds the extracted object when Success is true; Error
// holds the parser's detail when it is not.
type ParseResult struct {
	Success bool
	Data    json.RawMessage
	Error   string
}

// ResponseParser extracts a JSON payload from a raw LLM response.
// Implementations decide how much malformed-response recovery to attempt.
type ResponseParser interface {
	Parse(raw string) ParseResult
}

// LenientParser tolerates the usual LLM decorations: markdown code
// fences and prose before or after the object. It extracts the outermost
// JSON object and validates it.
type LenientParser struct{}

func (LenientParser) Parse(raw string) ParseResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ParseResult{Error: "empty response"}
	}

	// Strip markdown fences, with or without a language tag.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ParseResult{Error: "no JSON object found in response"}
	}
	s = s[start : end+1]

	if !json.Valid([]byte(s)) {
		return ParseResult{Error: "extracted text is not valid JSON"}
	}
	return ParseResult{Success: true, Data: json.RawMessage(s)}
}

// StrictParser accepts only a response that is a bare JSON object with
// no surrounding text.
type StrictParser struct{}

func (StrictParser) Parse(raw string) ParseResult {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "{") || !json.Valid([]byte(s)) {
		return ParseResult{Error: "response is not a bare JSON object"}
	}
	return ParseResult{Success: true, Data: json.RawMessage(s)}
}
