package handler

import (
	"log/slog"
	"net/http"

	"github.com/kodomo-labs/kodomo/internal/service"
)

// BadgeHandler handles badge HTTP requests.
type BadgeHandler struct {
	children *service.ChildService
	badges   *service.BadgeService
}

// NewBadgeHandler creates a new BadgeHandler.
func NewBadgeHandler(children *service.ChildService, badges *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{children: children, badges: badges}
}

// HandleDefinitions returns the badge catalog.
// GET /api/badges
func (h *BadgeHandler) HandleDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.badges.ListDefinitions(r.Context())
	if err != nil {
		slog.Error("list badge definitions", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"badges": toBadgeDTOs(defs),
	})
}

// HandleEarned returns the badges a child has earned.
// GET /api/children/{id}/badges
func (h *BadgeHandler) HandleEarned(w http.ResponseWriter, r *http.Request) {
	child, ok := ownedChild(w, r, h.children)
	if !ok {
		return
	}

	earned, err := h.badges.ListEarned(r.Context(), child.ID)
	if err != nil {
		slog.Error("list earned badges", "error", err, "child_id", child.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"earned": toEarnedBadgeDTOs(earned),
	})
}
