package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/tracker"
)

// Handler holds API route handlers.
type Handler struct {
	svc *tracker.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

// topicTitle extracts the {title} URL parameter, decoding percent escapes so
// titles with spaces work from any client.
func topicTitle(r *http.Request) string {
	raw := chi.URLParam(r, "title")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// writeServiceError maps service errors onto the API error taxonomy:
// 404 not found, 409 duplicate, 422 validation, 501 backend gap.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("topic not found"))
	case errors.Is(err, apperr.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody("topic already exists"))
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrUnsupported):
		writeJSON(w, http.StatusNotImplemented, errorBody("not supported by the configured backend"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListTopics handles GET /topics.
func (h *Handler) ListTopics(w http.ResponseWriter, _ *http.Request) {
	topics, err := h.svc.ListTopics()
	if err != nil {
		writeServiceError(w, "list topics", err)
		return
	}
	items := make([]TopicResponse, len(topics))
	for i, t := range topics {
		items[i] = topicResponse(t)
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateTopic handles POST /topics.
func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	topic, err := h.svc.CreateTopic(req.Title, req.Description)
	if err != nil {
		writeServiceError(w, "create topic", err)
		return
	}
	writeJSON(w, http.StatusCreated, topicResponse(topic))
}

// GetTopic handles GET /topics/{title}.
func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.svc.GetTopic(topicTitle(r))
	if err != nil {
		writeServiceError(w, "get topic", err)
		return
	}
	writeJSON(w, http.StatusOK, topicDetailResponse(topic))
}

// AddResource handles POST /topics/{title}/resources.
func (h *Handler) AddResource(w http.ResponseWriter, r *http.Request) {
	var req CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	res, err := h.svc.AddResource(topicTitle(r), req.ResType, req.Content)
	if err != nil {
		writeServiceError(w, "add resource", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// AddNote handles POST /topics/{title}/notes.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	note, err := h.svc.AddNote(topicTitle(r), req.Text)
	if err != nil {
		writeServiceError(w, "add note", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// AddProgress handles POST /topics/{title}/progress.
func (h *Handler) AddProgress(w http.ResponseWriter, r *http.Request) {
	var req CreateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	entry, err := h.svc.AddProgress(topicTitle(r), req.Percent)
	if err != nil {
		writeServiceError(w, "add progress", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
