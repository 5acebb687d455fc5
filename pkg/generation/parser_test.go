package generation

import "testing"

func TestLenientParser(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantSuccess bool
	}{
		{
			name:        "bare object",
			raw:         `{"chapters": []}`,
			wantSuccess: true,
		},
		{
			name:        "fenced with language tag",
			raw:         "```json\n{\"chapters\": []}\n```",
			wantSuccess: true,
		},
		{
			name:        "fenced without language tag",
			raw:         "```\n{\"chapters\": []}\n```",
			wantSuccess: true,
		},
		{
			name:        "prose around object",
			raw:         "Here is your story:\n{\"chapters\": []}\nHope you like it!",
			wantSuccess: true,
		},
		{
			name:        "no object at all",
			raw:         "I am unable to help with that.",
			wantSuccess: false,
		},
		{
			name:        "truncated json",
			raw:         `{"chapters": [`,
			wantSuccess: false,
		},
		{
			name:        "empty response",
			raw:         "   ",
			wantSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LenientParser{}.Parse(tt.raw)
			if result.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v (error: %s)", result.Success, tt.wantSuccess, result.Error)
			}
			if result.Success && len(result.Data) == 0 {
				t.Error("successful parse returned no data")
			}
			if !result.Success && result.Error == "" {
				t.Error("failed parse returned no error detail")
			}
		})
	}
}

func TestStrictParser(t *testing.T) {
	if r := (StrictParser{}).Parse(`{"chapters": []}`); !r.Success {
		t.Errorf("bare object rejected: %s", r.Error)
	}
	if r := (StrictParser{}).Parse("```json\n{}\n```"); r.Success {
		t.Error("strict parser accepted a fenced response")
	}
}
