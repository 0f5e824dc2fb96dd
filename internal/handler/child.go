package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
)

// ChildHandler handles child profile HTTP requests.
type ChildHandler struct {
	children *service.ChildService
}

// NewChildHandler creates a new ChildHandler.
func NewChildHandler(children *service.ChildService) *ChildHandler {
	return &ChildHandler{children: children}
}

// HandleList returns the caller's children.
// GET /api/children
func (h *ChildHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	children, err := h.children.ListByParent(r.Context(), user.ID)
	if err != nil {
		slog.Error("list children", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"children": toChildDTOs(children),
	})
}

// HandleCreate adds a child profile.
// POST /api/children
// Request: {"name":"..."}
func (h *ChildHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	child, err := h.children.Create(r.Context(), user.ID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("create child", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"child": toChildDTO(child),
	})
}

// HandleDelete removes a child profile.
// DELETE /api/children/{id}
func (h *ChildHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	childID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid child ID.")
		return
	}

	if err := h.children.Delete(r.Context(), user.ID, childID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Child not found.")
			return
		}
		slog.Error("delete child", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedChild parses the {id} path value and checks ownership, writing
// the error response itself when the lookup fails.
func ownedChild(w http.ResponseWriter, r *http.Request, children *service.ChildService) (*domain.Child, bool) {
	user := UserFromContext(r.Context())

	childID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid child ID.")
		return nil, false
	}

	child, err := children.GetOwned(r.Context(), user.ID, childID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Child not found.")
			return nil, false
		}
		slog.Error("load child", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return nil, false
	}
	return child, true
}
