package handlers

import (
	"bytes"
	"net/http"

	"github.com/abrezinsky/scoreboard/internal/models"
	"github.com/abrezinsky/scoreboard/internal/snapshot"
)

// maxSnapshotBytes caps uploaded snapshot documents
const maxSnapshotBytes = 8 << 20

// ==================== Roster ====================

func (h *Handlers) handleGetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Roster.ListTeams(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, teams)
}

func (h *Handlers) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	team := models.Team{Code: req.Code, Name: req.Name, Color: req.Color}
	if err := h.Roster.CreateTeam(r.Context(), team); err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, team)
}

func (h *Handlers) handleGetCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.Roster.ListCandidates(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, candidates)
}

func (h *Handlers) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req CandidateCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	c := models.Candidate{ChestNumber: req.ChestNumber, Name: req.Name, Team: req.Team, Section: req.Section}
	if err := h.Roster.CreateCandidate(r.Context(), c); err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, c)
}

func (h *Handlers) handleGetProgrammes(w http.ResponseWriter, r *http.Request) {
	programmes, err := h.Roster.ListProgrammes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, programmes)
}

func (h *Handlers) handleGetProgramme(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	p, err := h.Roster.GetProgramme(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, p)
}

func (h *Handlers) handleCreateProgramme(w http.ResponseWriter, r *http.Request) {
	var req ProgrammeCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Roster.CreateProgramme(r.Context(), models.Programme{
		ID:                   req.ID,
		Code:                 req.Code,
		Name:                 req.Name,
		Category:             req.Category,
		Subcategory:          req.Subcategory,
		Section:              req.Section,
		PositionType:         req.PositionType,
		RequiredParticipants: req.RequiredParticipants,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, IDResponse{ID: id})
}

// ==================== Results ====================

func (h *Handlers) handleGetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.Results.ListResults(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, results)
}

func (h *Handlers) handleGetResult(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	res, err := h.Results.GetResult(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, res)
}

func (h *Handlers) handleCreateResult(w http.ResponseWriter, r *http.Request) {
	var req ResultCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Results.CreateResult(r.Context(), req.ProgrammeID, req.Winners)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, IDResponse{ID: id})
}

func (h *Handlers) handleUpdateWinners(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req WinnersUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	res, err := h.Results.UpdateWinners(r.Context(), id, req.Winners)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, res)
}

func (h *Handlers) handleAdvanceResult(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	res, err := h.Results.Advance(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, res)
}

func (h *Handlers) handlePublishResult(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	res, err := h.Results.Publish(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, res)
}

func (h *Handlers) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Results.DeleteResult(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// ==================== Settings ====================

func (h *Handlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Settings.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name, err := h.Settings.GetFestivalName(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	publicURL, err := h.Settings.GetPublicURL(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, SettingsResponse{FestivalName: name, PublicURL: publicURL})
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ctx := r.Context()
	if req.FestivalName != "" {
		if err := h.Settings.SetFestivalName(ctx, req.FestivalName); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.PublicURL != "" {
		if err := h.Settings.SetPublicURL(ctx, req.PublicURL); err != nil {
			respondError(w, err)
			return
		}
	}

	h.handleGetSettings(w, r)
}

func (h *Handlers) handleResetDatabase(w http.ResponseWriter, r *http.Request) {
	var req DatabaseResetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Settings.ResetTables(r.Context(), req.Tables)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// ==================== Snapshots ====================

func (h *Handlers) handleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Roster.Export(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, snap); err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="festival.yaml"`)
	w.Write(buf.Bytes())
}

// handleImportSnapshot upserts a YAML (or JSON) snapshot document
func (h *Handlers) handleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshot.Decode(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		respondError(w, BadRequest(err.Error()))
		return
	}

	summary, err := h.Roster.Import(r.Context(), snap)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, summary)
}
