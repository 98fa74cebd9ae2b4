package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", h.handleHealth)

	// Public boards
	r.Get("/api/festival", h.handleGetFestival)
	r.Get("/api/standings", h.handlePublicTeamStandings)
	r.Get("/api/standings/individuals", h.handlePublicIndividualStandings)
	r.Get("/api/standings/qr", h.handleStandingsQR)
	r.Get("/api/results", h.handlePublishedResults)

	// Auth
	r.Post("/admin/login", h.handleLogin)
	r.Post("/admin/logout", h.handleLogout)

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)

		// Standings preview
		r.Get("/api/admin/standings", h.handleAdminTeamStandings)
		r.Get("/api/admin/standings/individuals", h.handleAdminIndividualStandings)
		r.Get("/api/admin/standings/diagnostics", h.handleDiagnostics)

		// Roster
		r.Get("/api/admin/teams", h.handleGetTeams)
		r.Post("/api/admin/teams", h.handleCreateTeam)
		r.Get("/api/admin/candidates", h.handleGetCandidates)
		r.Post("/api/admin/candidates", h.handleCreateCandidate)
		r.Get("/api/admin/programmes", h.handleGetProgrammes)
		r.Post("/api/admin/programmes", h.handleCreateProgramme)
		r.Get("/api/admin/programmes/{id}", h.handleGetProgramme)

		// Results
		r.Get("/api/admin/results", h.handleGetResults)
		r.Post("/api/admin/results", h.handleCreateResult)
		r.Get("/api/admin/results/{id}", h.handleGetResult)
		r.Put("/api/admin/results/{id}/winners", h.handleUpdateWinners)
		r.Post("/api/admin/results/{id}/advance", h.handleAdvanceResult)
		r.Post("/api/admin/results/{id}/publish", h.handlePublishResult)
		r.Delete("/api/admin/results/{id}", h.handleDeleteResult)

		// Settings & data
		r.Get("/api/admin/stats", h.handleGetStats)
		r.Get("/api/admin/settings", h.handleGetSettings)
		r.Put("/api/admin/settings", h.handleUpdateSettings)
		r.Post("/api/admin/reset-database", h.handleResetDatabase)
		r.Get("/api/admin/snapshot", h.handleExportSnapshot)
		r.Post("/api/admin/snapshot", h.handleImportSnapshot)
	})

	return r
}
