package handlers

import (
	"net/http"

	"github.com/abrezinsky/scoreboard/internal/scoring"
	"github.com/abrezinsky/scoreboard/internal/services"
)

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) handleGetFestival(w http.ResponseWriter, r *http.Request) {
	name, err := h.Settings.GetFestivalName(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, FestivalResponse{Name: name})
}

// publicQuery builds a query for a public board: always the public scope,
// zero scorers per configuration.
func (h *Handlers) publicQuery(r *http.Request, withSection bool) (services.StandingsQuery, error) {
	q := r.URL.Query()
	section := ""
	if withSection {
		section = q.Get("section")
	}
	return services.ParseStandingsQuery(q.Get("dimension"), "public", section, !h.opts.HideZero)
}

// adminQuery builds a query for the admin preview. Scope defaults to admin
// and zero scorers are shown unless show_zero=false.
func (h *Handlers) adminQuery(r *http.Request, withSection bool) (services.StandingsQuery, error) {
	q := r.URL.Query()
	showZero, err := parseBoolQuery(r, "show_zero", true)
	if err != nil {
		return services.StandingsQuery{}, err
	}
	scope := q.Get("scope")
	if scope == "" {
		scope = "admin"
	}
	section := ""
	if withSection {
		section = q.Get("section")
	}
	return services.ParseStandingsQuery(q.Get("dimension"), scope, section, showZero)
}

func (h *Handlers) serveStandings(w http.ResponseWriter, r *http.Request, build func(*http.Request, bool) (services.StandingsQuery, error), individuals bool) {
	q, err := build(r, individuals)
	if err != nil {
		respondError(w, err)
		return
	}

	var st *services.Standings
	if individuals {
		st, err = h.Standings.IndividualStandings(r.Context(), q)
	} else {
		st, err = h.Standings.TeamStandings(r.Context(), q)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, st)
}

func (h *Handlers) handlePublicTeamStandings(w http.ResponseWriter, r *http.Request) {
	h.serveStandings(w, r, h.publicQuery, false)
}

func (h *Handlers) handlePublicIndividualStandings(w http.ResponseWriter, r *http.Request) {
	h.serveStandings(w, r, h.publicQuery, true)
}

func (h *Handlers) handleAdminTeamStandings(w http.ResponseWriter, r *http.Request) {
	h.serveStandings(w, r, h.adminQuery, false)
}

func (h *Handlers) handleAdminIndividualStandings(w http.ResponseWriter, r *http.Request) {
	h.serveStandings(w, r, h.adminQuery, true)
}

func (h *Handlers) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("scope")
	if name == "" {
		name = "admin"
	}
	scope, ok := scoring.ParseScope(name)
	if !ok {
		respondError(w, services.ErrUnknownScope)
		return
	}

	d, err := h.Standings.Diagnostics(r.Context(), scope)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, DiagnosticsResponse{Scope: name, Diagnostics: d, Clean: d.Clean()})
}

func (h *Handlers) handlePublishedResults(w http.ResponseWriter, r *http.Request) {
	views, err := h.Standings.PublishedResults(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, views)
}

func (h *Handlers) handleStandingsQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Settings.StandingsQR(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
