package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kodomo-labs/kodomo/internal/content"
	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
	"github.com/kodomo-labs/kodomo/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// PlayHandler streams flash sessions to the player page.
type PlayHandler struct {
	children *service.ChildService
	flash    *service.FlashService
	runner   *service.Runner
}

// NewPlayHandler creates a new PlayHandler.
func NewPlayHandler(children *service.ChildService, flash *service.FlashService, runner *service.Runner) *PlayHandler {
	return &PlayHandler{children: children, flash: flash, runner: runner}
}

// HandleStream runs one flash session over SSE, patching the play
// region card by card. Closing the connection cancels the run; only a
// run that reaches its last card is booked.
// GET /api/children/{id}/play/{app}/stream?speed=
func (h *PlayHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	child, ok := ownedChild(w, r, h.children)
	if !ok {
		return
	}

	appID := r.PathValue("app")
	if !content.ValidApp(appID) {
		writeError(w, http.StatusNotFound, "Unknown activity.")
		return
	}

	run, err := h.flash.BuildRun(r.Context(), child.ID, appID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			writeError(w, http.StatusConflict, "No cards left to show today.")
			return
		}
		slog.Error("build flash run", "error", err, "child_id", child.ID, "app_id", appID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	stepDuration := run.StepDuration
	if raw := r.URL.Query().Get("speed"); raw != "" {
		if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs >= 0.5 && secs <= 10 {
			stepDuration = time.Duration(secs * float64(time.Second))
		}
	}

	// Bookkeeping must outlive the request once the last card was
	// shown, even if the TV drops the stream right at the end.
	finalizeCtx := context.WithoutCancel(r.Context())
	var earned []domain.BadgeDefinition
	finalize := func(elapsed time.Duration) {
		badges, err := h.flash.Finalize(finalizeCtx, run, elapsed)
		if err != nil {
			slog.Error("finalize flash run", "error", err, "child_id", child.ID, "app_id", appID)
			return
		}
		earned = badges
	}

	sse := datastar.NewSSE(w, r)
	seq := h.runner.Start(r.Context(), run.Steps, stepDuration, finalize)
	for ev := range seq.Events() {
		switch {
		case ev.Step != nil:
			if err := sse.PatchElementTempl(
				view.FlashStep(*ev.Step),
				datastar.WithSelectorID("flash-card"),
			); err != nil {
				return
			}
		case ev.Finished:
			if err := sse.PatchElementTempl(
				view.FlashDone(run.CardCount, earned),
				datastar.WithSelectorID("flash-card"),
			); err != nil {
				return
			}
		}
	}
}
