package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
	"github.com/kodomo-labs/kodomo/internal/view"
	"github.com/starfederation/datastar-go/datastar"
	"rsc.io/qr"
)

// TVLoginHandler handles the TV pairing HTTP surface: the TV-side
// create/poll/establish calls, the phone-side approve call, the QR
// image, and the SSE status watcher.
type TVLoginHandler struct {
	tvLogins *service.TVLoginService
	clock    clockwork.Clock
	baseURL  string
}

// NewTVLoginHandler creates a new TVLoginHandler. baseURL is the
// externally reachable origin used inside the QR code.
func NewTVLoginHandler(tvLogins *service.TVLoginService, clock clockwork.Clock, baseURL string) *TVLoginHandler {
	return &TVLoginHandler{tvLogins: tvLogins, clock: clock, baseURL: baseURL}
}

// HandleCreate starts a pairing session for the TV.
// POST /api/tv-login
// Response: {"token":"...","status":"pending"}
func (h *TVLoginHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session, err := h.tvLogins.CreateSession(r.Context())
	if err != nil {
		slog.Error("create tv login session", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, toTVLoginDTO(session))
}

// HandlePoll reports the pairing state for the TV's polling loop.
// GET /api/tv-login?token=...
// Response: {"status":"pending|approved|expired"}
func (h *TVLoginHandler) HandlePoll(w http.ResponseWriter, r *http.Request) {
	session, err := h.tvLogins.PollStatus(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.writeTVLoginError(w, "poll tv login session", err)
		return
	}

	resp := map[string]any{"status": string(session.Status)}
	if session.UserID != nil {
		resp["userId"] = *session.UserID
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleApprove lets the authenticated phone approve a pending session.
// POST /api/tv-login/approve
// Request: {"token":"..."}
// Response: {"success":true}
func (h *TVLoginHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Token string `json:"token"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.tvLogins.Approve(r.Context(), req.Token, user.ID); err != nil {
		if errors.Is(err, domain.ErrExpired) {
			writeError(w, http.StatusGone, "This login request has expired. Start again on the TV.")
			return
		}
		h.writeTVLoginError(w, "approve tv login session", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleEstablish consumes an approved session and hands the TV its
// one-time login code. The consume is single-use: a repeated call gets
// a 400.
// POST /api/tv-login/session
// Request: {"token":"..."}
// Response: {"code":"..."}
func (h *TVLoginHandler) HandleEstablish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	code, err := h.tvLogins.EstablishSession(r.Context(), req.Token)
	if err != nil {
		h.writeTVLoginError(w, "establish tv session", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"code": code})
}

// HandleQR renders the QR code the TV shows, encoding the phone-side
// approval URL.
// GET /tv-login/qr?token=...
func (h *TVLoginHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	approveURL := h.baseURL + "/tv-login/approve?token=" + url.QueryEscape(token)
	code, err := qr.Encode(approveURL, qr.M)
	if err != nil {
		slog.Error("encode tv login qr", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(code.PNG()); err != nil {
		slog.Error("write tv login qr", "error", err)
	}
}

// HandleWatch streams pairing status updates to the TV page over SSE,
// so the TV flips the moment the phone approves instead of on its next
// poll. The loop stops on approval, expiry, or disconnect.
// GET /tv-login/watch?token=...
func (h *TVLoginHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	sse := datastar.NewSSE(w, r)
	ticker := h.clock.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		session, err := h.tvLogins.PollStatus(r.Context(), token)
		if err != nil {
			if err := sse.PatchElementTempl(
				view.TVLoginStatus(domain.TVLoginExpired, "ログインリクエストが見つかりません"),
				datastar.WithSelectorID("tv-login-status"),
			); err != nil {
				slog.Debug("patch tv login status", "error", err)
			}
			return
		}

		message := "スマホで承認を待っています..."
		switch session.Status {
		case domain.TVLoginApproved:
			message = "承認されました！ログインしています..."
		case domain.TVLoginExpired:
			message = "ログインリクエストの有効期限が切れました"
		}
		if err := sse.PatchElementTempl(
			view.TVLoginStatus(session.Status, message),
			datastar.WithSelectorID("tv-login-status"),
		); err != nil {
			return
		}
		if session.Status != domain.TVLoginPending {
			return
		}

		select {
		case <-ticker.Chan():
		case <-r.Context().Done():
			return
		}
	}
}

// writeTVLoginError maps handshake errors onto the response, logging
// only the unexpected ones.
func (h *TVLoginHandler) writeTVLoginError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Login request not found.")
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusBadRequest, "Login request is not in a usable state.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
