package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/storyloom/engine/pkg/blueprint"
	"github.com/storyloom/engine/pkg/generation"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}

// BlueprintSummary is the list-view projection of a blueprint.
type BlueprintSummaryItem struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Tension       blueprint.Tension  `json:"tension"`
	Ending        blueprint.Ending   `json:"ending"`
	Modifier      blueprint.Modifier `json:"modifier"`
	TotalChapters int                `json:"total_chapters"`
}

type BlueprintListResponse struct {
	Trope      string                 `json:"trope"`
	Blueprints []BlueprintSummaryItem `json:"blueprints"`
}

// BlueprintHandler serves the resolved blueprint catalog.
// Routes:
// GET /v1/blueprints                             - List all blueprints
// GET /v1/blueprints?tension=..&ending=..&modifier=.. - Full single blueprint
// GET /v1/blueprints/check?tension=..&ending=..&modifier=.. - Availability guard
type BlueprintHandler struct {
	registry *blueprint.Registry
	trope    string
	logger   *slog.Logger
}

func NewBlueprintHandler(registry *blueprint.Registry, trope string, logger *slog.Logger) *BlueprintHandler {
	return &BlueprintHandler{
		registry: registry,
		trope:    trope,
		logger:   logger,
	}
}

func (h *BlueprintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for blueprint endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	if strings.HasSuffix(strings.TrimSuffix(r.URL.Path, "/"), "/check") {
		h.handleCheck(w, r)
		return
	}

	q := r.URL.Query()
	if q.Get("tension") == "" && q.Get("ending") == "" && q.Get("modifier") == "" {
		h.handleList(w)
		return
	}
	h.handleGet(w, r)
}

func (h *BlueprintHandler) handleList(w http.ResponseWriter) {
	all := h.registry.All()
	items := make([]BlueprintSummaryItem, 0, len(all))
	for _, bp := range all {
		items = append(items, BlueprintSummaryItem{
			ID:            bp.ID,
			Name:          bp.Name,
			Tension:       bp.Tension,
			Ending:        bp.Ending,
			Modifier:      bp.Modifier,
			TotalChapters: bp.TotalChapters,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BlueprintListResponse{
		Trope:      h.trope,
		Blueprints: items,
	}); err != nil {
		h.logger.Error("Failed to encode blueprint list response", "error", err)
	}
}

func (h *BlueprintHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tension, err := blueprint.ParseTension(q.Get("tension"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid tension: "+q.Get("tension"))
		return
	}
	ending, err := blueprint.ParseEnding(q.Get("ending"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid ending: "+q.Get("ending"))
		return
	}
	modifier, err := blueprint.ParseModifier(q.Get("modifier"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid modifier: "+q.Get("modifier"))
		return
	}

	bp := h.registry.Get(h.trope, tension, ending, modifier)
	if bp == nil {
		h.logger.Warn("Blueprint not found",
			"tension", tension,
			"ending", ending,
			"modifier", modifier)
		writeError(w, h.logger, http.StatusNotFound, "No blueprint for this combination")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(bp); err != nil {
		h.logger.Error("Failed to encode blueprint response", "error", err)
	}
}

func (h *BlueprintHandler) handleCheck(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	availability := generation.CheckBlueprintAvailable(
		h.registry, h.trope, q.Get("tension"), q.Get("ending"), q.Get("modifier"))

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(availability); err != nil {
		h.logger.Error("Failed to encode availability response", "error", err)
	}
}
