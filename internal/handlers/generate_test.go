package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/storyloom/engine/internal/services"
	"github.com/storyloom/engine/internal/storage"
	"github.com/storyloom/engine/pkg/blueprint"
	"github.com/storyloom/engine/pkg/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validLLMResponse builds a response whose chapters exactly match the
// blueprint for the given combination.
func validLLMResponse(t *testing.T, reg *blueprint.Registry, tension blueprint.Tension, ending blueprint.Ending, modifier blueprint.Modifier) string {
	t.Helper()
	bp := reg.Get(blueprint.TropeEnemiesToLovers, tension, ending, modifier)
	require.NotNil(t, bp)

	var sb strings.Builder
	sb.WriteString(`{"concept_summary": "Two rival innkeepers on the same cliff road.", "chapters": [`)
	first := true
	for _, ch := range bp.FlattenChapters() {
		if ch.Variant {
			continue
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		fmt.Fprintf(&sb, `{"chapter": %d, "function": %q, "description": "A long enough description of the events of this chapter."}`,
			ch.Chapter, ch.Function)
	}
	sb.WriteString("]}")
	return sb.String()
}

func newGenerateHandler(t *testing.T, llm *services.MockLLM, store storage.Storage) *GenerateHandler {
	t.Helper()
	reg := testRegistry(t)
	runner := generation.NewRunner(reg, llm, generation.LenientParser{}, "test-model", testLogger())
	return NewGenerateHandler(runner, store, blueprint.TropeEnemiesToLovers, testLogger())
}

func postGenerate(handler *GenerateHandler, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/generate", &buf)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGenerateHandler_Success(t *testing.T) {
	reg := testRegistry(t)
	llm := services.NewMockLLM()
	llm.SetResponse(validLLMResponse(t, reg, blueprint.TensionSafety, blueprint.EndingHEA, blueprint.ModifierNone))
	store := storage.NewMockStorage()

	handler := newGenerateHandler(t, llm, store)
	rr := postGenerate(handler, GenerateRequest{
		Concept:  "A lighthouse keeper and the developer sent to evict her.",
		Tension:  "safety",
		Ending:   "hea",
		Modifier: "none",
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var response GenerateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))

	assert.NotEqual(t, uuid.Nil, response.ID)
	require.NotNil(t, response.Output)
	assert.Len(t, response.Output.Chapters, 11)
	assert.Equal(t, blueprint.TensionSafety, response.Output.Blueprint.Tension)

	// The output must be retrievable from storage under the returned ID.
	saved, err := store.LoadGeneration(httptest.NewRequest(http.MethodGet, "/", nil).Context(), response.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, response.Output.Blueprint.ID, saved.Blueprint.ID)

	// The single LLM call carries the configured model and defaults.
	_, calls := llm.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "test-model", calls[0].Options.Model)
	assert.Equal(t, generation.DefaultTemperature, calls[0].Options.Temperature)
}

func TestGenerateHandler_BadRequests(t *testing.T) {
	llm := services.NewMockLLM()
	handler := newGenerateHandler(t, llm, storage.NewMockStorage())

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"malformed JSON", `{"concept": `, http.StatusBadRequest},
		{"missing fields", GenerateRequest{Concept: "A story concept about two rivals."}, http.StatusBadRequest},
		{"concept too short", GenerateRequest{Concept: "short", Tension: "safety", Ending: "hea", Modifier: "none"}, http.StatusBadRequest},
		{"unknown tension", GenerateRequest{Concept: "A story concept about two rivals.", Tension: "dread", Ending: "hea", Modifier: "none"}, http.StatusBadRequest},
		{"unknown ending", GenerateRequest{Concept: "A story concept about two rivals.", Tension: "safety", Ending: "happy", Modifier: "none"}, http.StatusBadRequest},
		{"illegal combination", GenerateRequest{Concept: "A story concept about two rivals.", Tension: "identity", Ending: "tragic", Modifier: "none"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postGenerate(handler, tt.body)
			assert.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())

			var response ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
			assert.NotEmpty(t, response.Error)
		})
	}

	// No request should have reached the LLM.
	_, calls := llm.GetCalls()
	assert.Empty(t, calls)
}

func TestGenerateHandler_LLMFailure(t *testing.T) {
	llm := services.NewMockLLM()
	llm.SetError(errors.New("upstream timeout"))
	handler := newGenerateHandler(t, llm, storage.NewMockStorage())

	rr := postGenerate(handler, GenerateRequest{
		Concept:  "A lighthouse keeper and the developer sent to evict her.",
		Tension:  "safety",
		Ending:   "hea",
		Modifier: "none",
	})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGenerateHandler_InvalidModelOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not JSON", "I cannot produce JSON today."},
		{"missing chapters array", `{"concept_summary": "A summary without chapters."}`},
		{"wrong chapter count", `{"concept_summary": "s", "chapters": [{"chapter": 1, "function": "The Collision", "description": "A long enough description of the events here."}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := services.NewMockLLM()
			llm.SetResponse(tt.response)
			store := storage.NewMockStorage()
			handler := newGenerateHandler(t, llm, store)

			rr := postGenerate(handler, GenerateRequest{
				Concept:  "A lighthouse keeper and the developer sent to evict her.",
				Tension:  "safety",
				Ending:   "hea",
				Modifier: "none",
			})

			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())
		})
	}
}

func TestGenerateHandler_StorageFailure(t *testing.T) {
	reg := testRegistry(t)
	llm := services.NewMockLLM()
	llm.SetResponse(validLLMResponse(t, reg, blueprint.TensionSafety, blueprint.EndingHEA, blueprint.ModifierNone))
	store := storage.NewMockStorage()
	store.SaveErr = errors.New("redis down")

	handler := newGenerateHandler(t, llm, store)
	rr := postGenerate(handler, GenerateRequest{
		Concept:  "A lighthouse keeper and the developer sent to evict her.",
		Tension:  "safety",
		Ending:   "hea",
		Modifier: "none",
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGenerationHandler_ServeHTTP(t *testing.T) {
	store := storage.NewMockStorage()
	handler := NewGenerationHandler(store, testLogger())

	id := uuid.New()
	out := &generation.Phase1Output{
		Blueprint:      generation.BlueprintSummary{ID: "enemies_to_lovers|safety|hea|none"},
		ConceptSummary: "A stored generation.",
	}
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	require.NoError(t, store.SaveGeneration(ctx, id, out))

	t.Run("read found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/generations/"+id.String(), nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got generation.Phase1Output
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, out.Blueprint.ID, got.Blueprint.ID)
	})

	t.Run("read missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/generations/"+uuid.New().String(), nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/generations/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/generations", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var list GenerationListResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
		assert.Contains(t, list.Generations, id)
	})

	t.Run("delete without id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/v1/generations/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/v1/generations/"+id.String(), nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/v1/generations/"+id.String(), nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNoContent, rr.Code)

		got, err := store.LoadGeneration(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
