// Package api exposes HTTP handlers for the exercise resolver service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"example.com/exerciseresolver/internal/auth"
	"example.com/exerciseresolver/internal/domain"
	"example.com/exerciseresolver/internal/pipeline"
	"example.com/exerciseresolver/internal/video"
)

// Handler handles HTTP interactions.
type Handler struct {
	store    domain.Store
	pipeline *pipeline.Pipeline
	selector *video.Selector
}

// NewHandler constructs Handler.
func NewHandler(store domain.Store, p *pipeline.Pipeline, selector *video.Selector) *Handler {
	return &Handler{store: store, pipeline: p, selector: selector}
}

// RegisterRoutes sets up routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/exercises", h.listExercises)
	mux.HandleFunc("/v1/exercises/", h.exerciseByID)
	mux.HandleFunc("/v1/resolve", h.resolve)
	mux.HandleFunc("/healthz", healthz)
}

// healthz returns an OK response for readiness probes.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) listExercises(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeResolverRead) && !claims.HasScope(auth.ScopeResolverWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope resolver:read required")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	exercises, err := h.store.ListExercises(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	if query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query"))); query != "" {
		filtered := exercises[:0]
		for _, exercise := range exercises {
			if strings.Contains(strings.ToLower(exercise.Name), query) {
				filtered = append(filtered, exercise)
			}
		}
		exercises = filtered
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": exercises})
}

// exerciseByID serves GET /v1/exercises/{id} and POST /v1/exercises/{id}/video.
func (h *Handler) exerciseByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/exercises/")
	if idStr, found := strings.CutSuffix(rest, "/video"); found {
		h.selectExerciseVideo(w, r, claims, idStr)
		return
	}

	if !claims.HasScope(auth.ScopeResolverRead) && !claims.HasScope(auth.ScopeResolverWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope resolver:read required")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	id, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "exercise id must be an integer")
		return
	}

	exercise, err := h.store.GetExercise(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrExerciseNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "exercise not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

// selectExerciseVideo re-runs video selection for one exercise. When the
// caller supplies an explicit ?query=, a single search wave is run and the
// candidate must clear the single-shot acceptance threshold.
func (h *Handler) selectExerciseVideo(w http.ResponseWriter, r *http.Request, claims *auth.Claims, idStr string) {
	if !claims.HasScope(auth.ScopeResolverWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope resolver:write required")
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "exercise id must be an integer")
		return
	}

	exercise, err := h.store.GetExercise(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrExerciseNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "exercise not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	var selected *video.ScoredVideo
	if query := strings.TrimSpace(r.URL.Query().Get("query")); query != "" {
		selected, err = h.selector.SelectFromQuery(r.Context(), query, exercise.Category)
	} else {
		selected, err = h.selector.SelectVideo(r.Context(), exercise.Name, exercise.Category)
	}
	if err != nil {
		if errors.Is(err, video.ErrQuotaExceeded) {
			writeError(w, http.StatusTooManyRequests, "quota_exhausted", "video provider quota exhausted")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	if selected == nil {
		writeJSON(w, http.StatusOK, map[string]any{"video": nil})
		return
	}

	videoID := selected.Candidate.ID
	patch := domain.ExercisePatch{VideoID: &videoID}
	if selected.Candidate.ThumbnailURL != "" {
		thumbnail := selected.Candidate.ThumbnailURL
		patch.ThumbnailURL = &thumbnail
	}
	updated, err := h.store.UpdateExercise(r.Context(), id, patch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"video": selected, "exercise": updated})
}

// ResolveRequest represents the request payload for POST /v1/resolve.
type ResolveRequest struct {
	Mentions []domain.Mention `json:"mentions"`
}

// Validate ensures request integrity.
func (r ResolveRequest) Validate() error {
	if len(r.Mentions) == 0 {
		return errors.New("at least one mention is required")
	}
	for _, mention := range r.Mentions {
		if strings.TrimSpace(mention.Name) == "" {
			return errors.New("mention name is required")
		}
	}
	return nil
}

// resolution is one mention outcome in the resolve response.
type resolution struct {
	Mention  domain.Mention            `json:"mention"`
	Exercise *domain.CanonicalExercise `json:"exercise,omitempty"`
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeResolverWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope resolver:write required")
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	resolved, report, err := h.pipeline.ResolveMentions(r.Context(), req.Mentions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	resolutions := make([]resolution, 0, len(req.Mentions))
	for _, mention := range req.Mentions {
		item := resolution{Mention: mention}
		if exercise, ok := resolved[mention]; ok {
			exercise := exercise
			item.Exercise = &exercise
		}
		resolutions = append(resolutions, item)
	}
	writeJSON(w, http.StatusOK, map[string]any{"resolutions": resolutions, "report": report})
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{"type": code, "detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
