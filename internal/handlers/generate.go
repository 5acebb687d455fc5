package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/storyloom/engine/internal/logger"
	"github.com/storyloom/engine/internal/storage"
	"github.com/storyloom/engine/pkg/blueprint"
	"github.com/storyloom/engine/pkg/generation"
)

// GenerateRequest is the POST body for a phase-1 generation. The trope
// is fixed by server configuration and not accepted from the client.
type GenerateRequest struct {
	Concept  string `json:"concept" validate:"required,min=10"`
	Tension  string `json:"tension" validate:"required"`
	Ending   string `json:"ending" validate:"required"`
	Modifier string `json:"modifier" validate:"required"`
}

type GenerateResponse struct {
	ID     uuid.UUID                `json:"id"`
	Output *generation.Phase1Output `json:"output"`
}

// GenerateHandler runs phase 1 and persists the result.
// Routes:
// POST /v1/generate - Execute a generation
type GenerateHandler struct {
	runner   *generation.Runner
	storage  storage.Storage
	trope    string
	validate *validator.Validate
	logger   *slog.Logger
}

func NewGenerateHandler(runner *generation.Runner, storage storage.Storage, trope string, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		runner:   runner,
		storage:  storage,
		trope:    trope,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for generate endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn("Invalid generate request", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	tension, err := blueprint.ParseTension(req.Tension)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid tension: "+req.Tension)
		return
	}
	ending, err := blueprint.ParseEnding(req.Ending)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid ending: "+req.Ending)
		return
	}
	modifier, err := blueprint.ParseModifier(req.Modifier)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid modifier: "+req.Modifier)
		return
	}

	out, err := h.runner.ExecutePhase1(r.Context(), generation.Phase1Request{
		Concept:  req.Concept,
		Trope:    h.trope,
		Tension:  tension,
		Ending:   ending,
		Modifier: modifier,
	})
	if err != nil {
		h.respondPhase1Error(w, err)
		return
	}

	id := uuid.New()
	if err := h.storage.SaveGeneration(r.Context(), id, out); err != nil {
		h.logger.Error("Failed to save generation", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save generation")
		return
	}

	h.logger.Info("Generation completed",
		"id", id.String(),
		"blueprint", out.Blueprint.ID,
		"chapters", len(out.Chapters))

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(GenerateResponse{ID: id, Output: out}); err != nil {
		h.logger.Error("Failed to encode generate response", "error", err)
	}
}

// respondPhase1Error maps pipeline failures onto HTTP statuses. Invalid
// combinations are the client's fault, malformed model output is a 422,
// and a failed upstream call is a bad gateway.
func (h *GenerateHandler) respondPhase1Error(w http.ResponseWriter, err error) {
	var notFound *generation.BlueprintNotFoundError
	var llmErr *generation.LLMInvocationError
	var parseErr *generation.JSONParseError
	var missingErr *generation.MissingChaptersArrayError
	var countErr *generation.ChapterCountMismatchError
	var numberErr *generation.UnexpectedChapterNumberError
	var shortErr *generation.ChapterDescriptionTooShortError

	switch {
	case errors.As(err, &notFound):
		h.logger.Warn("Generation for unavailable blueprint", "error", err)
		writeError(w, h.logger, http.StatusNotFound, err.Error())

	case errors.As(err, &llmErr):
		logger.WithError(h.logger, err).Error("LLM call failed")
		writeError(w, h.logger, http.StatusBadGateway, err.Error())

	case errors.As(err, &parseErr),
		errors.As(err, &missingErr),
		errors.As(err, &countErr),
		errors.As(err, &numberErr),
		errors.As(err, &shortErr):
		h.logger.Warn("Generation output failed validation", "error", err)
		writeError(w, h.logger, http.StatusUnprocessableEntity, err.Error())

	default:
		h.logger.Error("Generation failed", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Generation failed")
	}
}

// GenerationHandler serves persisted generation outputs.
// Routes:
// GET /v1/generations         - List stored generation IDs
// GET /v1/generations/{id}    - Read a stored generation
// DELETE /v1/generations/{id} - Delete a stored generation
type GenerationHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewGenerationHandler(storage storage.Storage, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *GenerationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/generations"), "/")
	if idStr == "" {
		if r.Method == http.MethodGet {
			h.handleList(w, r)
			return
		}
		h.logger.Warn("Request without generation ID")
		writeError(w, h.logger, http.StatusBadRequest, "Generation ID is required")
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid generation ID", "id", idStr, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid generation ID format")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleRead(w, r, id)

	case http.MethodDelete:
		h.handleDelete(w, r, id)

	default:
		h.logger.Warn("Method not allowed for generation endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
	}
}

type GenerationListResponse struct {
	Generations []uuid.UUID `json:"generations"`
}

func (h *GenerationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := h.storage.ListGenerations(r.Context())
	if err != nil {
		h.logger.Error("Failed to list generations", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list generations")
		return
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(GenerationListResponse{Generations: ids}); err != nil {
		h.logger.Error("Failed to encode generation list response", "error", err)
	}
}

func (h *GenerationHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	out, err := h.storage.LoadGeneration(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load generation", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load generation")
		return
	}

	if out == nil {
		h.logger.Warn("Generation not found", "id", id.String())
		writeError(w, h.logger, http.StatusNotFound, "Generation not found")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.logger.Error("Failed to encode generation response", "error", err)
	}
}

func (h *GenerationHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteGeneration(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete generation", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete generation")
		return
	}
	h.logger.Debug("Generation deleted", "id", id.String())
	w.WriteHeader(http.StatusNoContent)
}
