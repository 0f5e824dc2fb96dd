package handler

import (
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/service"
)

// Services bundles everything the HTTP layer needs.
type Services struct {
	Auth      *service.AuthService
	Children  *service.ChildService
	TVLogins  *service.TVLoginService
	Progress  *service.ProgressService
	Flash     *service.FlashService
	Badges    *service.BadgeService
	Schedules *service.ScheduleService
	Runner    *service.Runner
	Clock     clockwork.Clock
	BaseURL   string
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, svc Services) {
	auth := NewAuthHandler(svc.Auth, svc.TVLogins)
	children := NewChildHandler(svc.Children)
	tvLogins := NewTVLoginHandler(svc.TVLogins, svc.Clock, svc.BaseURL)
	progress := NewProgressHandler(svc.Children, svc.Progress)
	play := NewPlayHandler(svc.Children, svc.Flash, svc.Runner)
	badges := NewBadgeHandler(svc.Children, svc.Badges)
	schedules := NewScheduleHandler(svc.Children, svc.Schedules)

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(svc.Auth, h)
	}
	optionalAuth := func(h http.HandlerFunc) http.Handler {
		return OptionalAuth(svc.Auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Account.
	mux.HandleFunc("POST /api/auth/register", auth.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", auth.HandleLogout)
	mux.HandleFunc("POST /api/auth/tv", auth.HandleTVCodeLogin)
	mux.Handle("GET /api/auth/me", requireAuth(auth.HandleMe))
	mux.Handle("GET /api/auth/session", optionalAuth(auth.HandleSession))

	// TV pairing. Create, poll, and establish are called by the TV
	// before it has a session; only approve needs the phone's cookie.
	mux.HandleFunc("POST /api/tv-login", tvLogins.HandleCreate)
	mux.HandleFunc("GET /api/tv-login", tvLogins.HandlePoll)
	mux.Handle("POST /api/tv-login/approve", requireAuth(tvLogins.HandleApprove))
	mux.HandleFunc("POST /api/tv-login/session", tvLogins.HandleEstablish)
	mux.HandleFunc("GET /tv-login/qr", tvLogins.HandleQR)
	mux.HandleFunc("GET /tv-login/watch", tvLogins.HandleWatch)

	// Children.
	mux.Handle("GET /api/children", requireAuth(children.HandleList))
	mux.Handle("POST /api/children", requireAuth(children.HandleCreate))
	mux.Handle("DELETE /api/children/{id}", requireAuth(children.HandleDelete))

	// Progress and history.
	mux.Handle("GET /api/children/{id}/progress/{app}", requireAuth(progress.HandleGet))
	mux.Handle("PUT /api/children/{id}/progress/{app}", requireAuth(progress.HandlePut))
	mux.Handle("GET /api/children/{id}/activity", requireAuth(progress.HandleActivity))

	// Flash sessions.
	mux.Handle("GET /api/children/{id}/play/{app}/stream", requireAuth(play.HandleStream))

	// Badges.
	mux.HandleFunc("GET /api/badges", badges.HandleDefinitions)
	mux.Handle("GET /api/children/{id}/badges", requireAuth(badges.HandleEarned))

	// Schedules.
	mux.Handle("GET /api/children/{id}/schedules", requireAuth(schedules.HandleList))
	mux.Handle("GET /api/children/{id}/schedules/today", requireAuth(schedules.HandleToday))
	mux.Handle("POST /api/children/{id}/schedules", requireAuth(schedules.HandleCreate))
	mux.Handle("PATCH /api/schedules/{id}", requireAuth(schedules.HandleUpdate))
	mux.Handle("DELETE /api/schedules/{id}", requireAuth(schedules.HandleDelete))
}
