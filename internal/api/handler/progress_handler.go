package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillpath/internal/app/service"
	"skillpath/internal/common"
	"skillpath/internal/domain/model"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(ps *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: ps}
}

// Routes address users by id path param. Any authenticated caller may
// read or write any user's progress; the original system had no
// ownership check here and that policy is kept as-is.
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{userID}/progress", h.getProgress)     // GET /api/v1/user/{id}/progress
	r.Post("/{userID}/progress", h.updateProgress) // POST /api/v1/user/{id}/progress
}

type ProgressResponse struct {
	Progress model.Progress `json:"progress"`
}

func (h *ProgressHandler) getProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	progress, err := h.progressService.GetProgress(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, ProgressResponse{Progress: *progress})
}

func (h *ProgressHandler) updateProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req service.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	progress, err := h.progressService.UpdateProgress(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, ProgressResponse{Progress: *progress})
}
