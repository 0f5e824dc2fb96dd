package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kodomo-labs/kodomo/internal/content"
	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
)

// ProgressHandler handles per-app progress and activity history.
type ProgressHandler struct {
	children *service.ChildService
	progress *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(children *service.ChildService, progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{children: children, progress: progress}
}

// HandleGet returns a child's progress record for one app, creating
// the default record and applying the daily rollover on first touch of
// the day.
// GET /api/children/{id}/progress/{app}
func (h *ProgressHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	child, ok := ownedChild(w, r, h.children)
	if !ok {
		return
	}

	appID := r.PathValue("app")
	var progress any
	var err error
	switch appID {
	case content.AppDotsCard:
		progress, err = h.progress.LoadDots(r.Context(), child.ID)
	case content.AppDotsCardMath:
		progress, err = h.progress.LoadMath(r.Context(), child.ID)
	case content.AppEnglishFlash:
		progress, err = h.progress.LoadEnglish(r.Context(), child.ID)
	case content.AppHiragana:
		progress, err = h.progress.LoadHiragana(r.Context(), child.ID)
	default:
		writeError(w, http.StatusNotFound, "Unknown activity.")
		return
	}
	if err != nil {
		slog.Error("load progress", "error", err, "child_id", child.ID, "app_id", appID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"progress": progress,
	})
}

// HandlePut replaces a child's progress record for one app. The body
// must match the app's record shape; the write is last-write-wins.
// PUT /api/children/{id}/progress/{app}
func (h *ProgressHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	child, ok := ownedChild(w, r, h.children)
	if !ok {
		return
	}

	var body json.RawMessage
	if err := readJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	appID := r.PathValue("app")
	if err := h.progress.SaveRaw(r.Context(), child.ID, appID, body); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("save progress", "error", err, "child_id", child.ID, "app_id", appID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleActivity lists a child's recent sessions.
// GET /api/children/{id}/activity?limit=
func (h *ProgressHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	child, ok := ownedChild(w, r, h.children)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.progress.RecentActivity(r.Context(), child.ID, limit)
	if err != nil {
		slog.Error("list activity", "error", err, "child_id", child.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"activity": toActivityLogDTOs(logs),
	})
}
