package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps, broker *Broker) {
	ctrl := deps.Controller

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Check-In API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.Checks))

	// Kiosk page.
	r.Get("/", handlePage(logger, ctrl, deps.EventName))
	r.Post("/checkin", handleCheckInForm(logger, ctrl, deps.EventName))
	r.Get("/qr.png", handleQR(deps.PublicURL))
	r.Handle("/static/*", handleAssets(logger, deps.StaticDir))

	r.Route("/api", func(r chi.Router) {
		r.Post("/checkins", handleCheckIn(ctrl))
		r.Get("/state", handleState(ctrl))
		r.Post("/celebration/dismiss", handleDismissCelebration(ctrl))
		r.Get("/events", handleEvents(ctrl, broker))

		if deps.Admin == nil {
			return
		}
		r.Post("/admin/login", handleAdminLogin(deps.Admin))
		r.Post("/admin/logout", handleAdminLogout(logger, deps.Admin))
		r.With(adminAuthMiddleware(deps.Admin)).Get("/admin/roster", handleAdminRoster(ctrl))
	})
}
