package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/VoidMesh/gridgen/internal/generator"
	"github.com/VoidMesh/gridgen/internal/pipeline"
	gridrender "github.com/VoidMesh/gridgen/internal/render"
	"github.com/VoidMesh/gridgen/internal/store"
)

const defaultListLimit = 50

// Runner executes pipeline definitions.
type Runner interface {
	Run(ctx context.Context, def *pipeline.Definition) (*pipeline.Layout, error)
}

// LayoutStore persists generated layouts.
type LayoutStore interface {
	Save(ctx context.Context, layout *pipeline.Layout) error
	Get(ctx context.Context, id uuid.UUID) (*pipeline.Layout, error)
	GetLayer(ctx context.Context, id uuid.UUID, name string) (*pipeline.Layer, error)
	List(ctx context.Context, limit int) ([]store.Summary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Handler struct {
	runner  Runner
	layouts LayoutStore
	timeout time.Duration
}

func NewHandler(runner Runner, layouts LayoutStore, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		runner:  runner,
		layouts: layouts,
		timeout: timeout,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "gridgen",
		"version":   "1.0.0",
		"kinds":     generator.Kinds(),
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) CreateLayout(w http.ResponseWriter, r *http.Request) {
	var def pipeline.Definition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	layout, err := h.runner.Run(ctx, &def)
	if err != nil {
		status := runStatus(err)
		log.Error("failed to generate layout", "error", err, "name", def.Name, "layers", len(def.Layers))
		h.renderError(w, r, status, "failed to generate layout", err)
		return
	}

	if err := h.layouts.Save(ctx, layout); err != nil {
		log.Error("failed to save layout", "error", err, "layout_id", layout.ID)
		h.renderError(w, r, http.StatusInternalServerError, "failed to save layout", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, layout)
}

// runStatus maps executor failures to a response status.
func runStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInvalidDefinition),
		errors.Is(err, pipeline.ErrDuplicateLayer),
		errors.Is(err, pipeline.ErrLayerNotFound),
		errors.Is(err, pipeline.ErrLimitExceeded),
		errors.Is(err, generator.ErrUnknownKind),
		errors.Is(err, generator.ErrUnknownBlend),
		errors.Is(err, generator.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) ListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			h.renderError(w, r, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summaries, err := h.layouts.List(ctx, limit)
	if err != nil {
		log.Error("failed to list layouts", "error", err, "limit", limit)
		h.renderError(w, r, http.StatusInternalServerError, "failed to list layouts", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"layouts": summaries,
		"count":   len(summaries),
	})
}

func (h *Handler) GetLayout(w http.ResponseWriter, r *http.Request) {
	id, ok := h.layoutID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	layout, err := h.layouts.Get(ctx, id)
	if err != nil {
		h.renderLookupError(w, r, "layout not found", "failed to load layout", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, layout)
}

func (h *Handler) GetLayer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.layoutID(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	layer, err := h.layouts.GetLayer(ctx, id, name)
	if err != nil {
		h.renderLookupError(w, r, "layer not found", "failed to load layer", err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		render.Status(r, http.StatusOK)
		render.JSON(w, r, layer)
	case "ascii":
		render.Status(r, http.StatusOK)
		render.PlainText(w, r, gridrender.ASCII(layer.Cells, layer.Width, layer.Height))
	default:
		h.renderError(w, r, http.StatusBadRequest, "format must be json or ascii", nil)
	}
}

func (h *Handler) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	id, ok := h.layoutID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.layouts.Delete(ctx, id); err != nil {
		h.renderLookupError(w, r, "layout not found", "failed to delete layout", err)
		return
	}

	render.NoContent(w, r)
}

func (h *Handler) layoutID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid layout id", err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) renderLookupError(w http.ResponseWriter, r *http.Request, notFound, failed string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		h.renderError(w, r, http.StatusNotFound, notFound, nil)
		return
	}
	log.Error(failed, "error", err)
	h.renderError(w, r, http.StatusInternalServerError, failed, err)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		} else {
			errorResponse.Message = err.Error()
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
