package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
)

// ScheduleHandler handles weekly schedule HTTP requests.
type ScheduleHandler struct {
	children  *service.ChildService
	schedules *service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(children *service.ChildService, schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{children: children, schedules: schedules}
}

// HandleList returns every schedule entry for a child.
// GET /api/children/{id}/schedules
func (h *ScheduleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	child, ok := ownedChild(w, r, h.children)
	if !ok {
		return
	}

	schedules, err := h.schedules.ListByChild(r.Context(), child.ID)
	if err != nil {
		slog.Error("list schedules", "error", err, "child_id", child.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"schedules": toScheduleDTOs(schedules),
	})
}

// HandleToday returns the child's active entries for today with their
// completion counts.
// GET /api/children/{id}/schedules/today
func (h *ScheduleHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	child, ok := ownedChild(w, r, h.children)
	if !ok {
		return
	}

	items, err := h.schedules.Today(r.Context(), child.ID)
	if err != nil {
		slog.Error("load today schedules", "error", err, "child_id", child.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"schedules": toTodayScheduleDTOs(items),
	})
}

// HandleCreate adds a schedule entry for a child.
// POST /api/children/{id}/schedules
// Request: {"appId":"...","dayOfWeek":0-6,"targetSessions":1-10}
func (h *ScheduleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	child, ok := ownedChild(w, r, h.children)
	if !ok {
		return
	}

	var req struct {
		AppID          string `json:"appId"`
		DayOfWeek      int    `json:"dayOfWeek"`
		TargetSessions int    `json:"targetSessions"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	schedule, err := h.schedules.Create(r.Context(), child.ID, req.AppID, req.DayOfWeek, req.TargetSessions)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("create schedule", "error", err, "child_id", child.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"schedule": toScheduleDTO(schedule),
	})
}

// HandleUpdate changes a schedule entry's target or active flag.
// PATCH /api/schedules/{id}
// Request: {"targetSessions":1-10,"isActive":true|false}
func (h *ScheduleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.ownedSchedule(w, r)
	if !ok {
		return
	}

	req := struct {
		TargetSessions int  `json:"targetSessions"`
		IsActive       bool `json:"isActive"`
	}{TargetSessions: schedule.TargetSessions, IsActive: schedule.IsActive}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.schedules.Update(r.Context(), schedule.ChildID, schedule.ID, req.TargetSessions, req.IsActive)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Schedule not found.")
			return
		}
		slog.Error("update schedule", "error", err, "schedule_id", schedule.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"schedule": toScheduleDTO(updated),
	})
}

// HandleDelete removes a schedule entry.
// DELETE /api/schedules/{id}
func (h *ScheduleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.ownedSchedule(w, r)
	if !ok {
		return
	}

	if err := h.schedules.Delete(r.Context(), schedule.ChildID, schedule.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Schedule not found.")
			return
		}
		slog.Error("delete schedule", "error", err, "schedule_id", schedule.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedSchedule loads the {id} schedule and verifies the caller owns
// the child it belongs to. Ownership failures read as 404.
func (h *ScheduleHandler) ownedSchedule(w http.ResponseWriter, r *http.Request) (*domain.Schedule, bool) {
	user := UserFromContext(r.Context())

	scheduleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule ID.")
		return nil, false
	}

	schedule, err := h.schedules.Get(r.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Schedule not found.")
			return nil, false
		}
		slog.Error("load schedule", "error", err, "schedule_id", scheduleID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return nil, false
	}

	if _, err := h.children.GetOwned(r.Context(), user.ID, schedule.ChildID); err != nil {
		writeError(w, http.StatusNotFound, "Schedule not found.")
		return nil, false
	}
	return schedule, true
}
