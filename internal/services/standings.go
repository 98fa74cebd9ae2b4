package services

import (
	"context"
	"strings"

	"github.com/abrezinsky/scoreboard/internal/logger"
	"github.com/abrezinsky/scoreboard/internal/models"
	"github.com/abrezinsky/scoreboard/internal/scoring"
)

// StandingsServiceRepository defines the repository methods needed by StandingsService
type StandingsServiceRepository interface {
	snapshotSource
}

// StandingsService loads the current records and runs them through the scoring engine
type StandingsService struct {
	log  logger.Logger
	repo StandingsServiceRepository
}

// NewStandingsService creates a new StandingsService
func NewStandingsService(log logger.Logger, repo StandingsServiceRepository) *StandingsService {
	return &StandingsService{log: log, repo: repo}
}

// StandingsQuery selects one leaderboard
type StandingsQuery struct {
	Dimension   scoring.Dimension
	Scope       scoring.Scope
	ScopeName   string
	Section     models.Section
	IncludeZero bool
}

// ParseStandingsQuery validates raw query values. Empty dimension means total,
// empty scope means public, empty section means every section.
func ParseStandingsQuery(dimension, scope, section string, includeZero bool) (StandingsQuery, error) {
	d, ok := scoring.ParseDimension(dimension)
	if !ok {
		return StandingsQuery{}, ErrUnknownDimension
	}
	sc, ok := scoring.ParseScope(scope)
	if !ok {
		return StandingsQuery{}, ErrUnknownScope
	}

	scopeName := strings.ToLower(strings.TrimSpace(scope))
	if scopeName == "" {
		scopeName = "public"
	}

	sec := models.Section(strings.ToLower(strings.TrimSpace(section)))
	if sec != "" && !validSection(sec) {
		return StandingsQuery{}, ErrUnknownSection
	}

	return StandingsQuery{
		Dimension:   d,
		Scope:       sc,
		ScopeName:   scopeName,
		Section:     sec,
		IncludeZero: includeZero,
	}, nil
}

// Standings is one ranked leaderboard plus the diagnostics of the pass that built it
type Standings struct {
	Dimension   scoring.Dimension     `json:"dimension"`
	Scope       string                `json:"scope"`
	Section     models.Section        `json:"section,omitempty"`
	Entries     []scoring.RankedEntry `json:"entries"`
	Diagnostics scoring.Diagnostics   `json:"diagnostics"`
}

// ComputeTeamStandings ranks teams from a snapshot without touching storage
func ComputeTeamStandings(snap scoring.Snapshot, q StandingsQuery) *Standings {
	report := scoring.Compute(snap, q.Scope)
	return buildStandings(report.Teams, report.Diagnostics, q)
}

// ComputeIndividualStandings ranks candidates from a snapshot, optionally
// restricted to one section.
func ComputeIndividualStandings(snap scoring.Snapshot, q StandingsQuery) *Standings {
	report := scoring.Compute(snap, q.Scope)
	individuals := report.Individuals
	if q.Section != "" {
		individuals = individuals.Filter(func(t *scoring.Total) bool {
			return strings.EqualFold(string(t.Section), string(q.Section))
		})
	}
	return buildStandings(individuals, report.Diagnostics, q)
}

func buildStandings(totals *scoring.TotalsMap, diag scoring.Diagnostics, q StandingsQuery) *Standings {
	entries := scoring.Rank(totals, q.Dimension)
	if !q.IncludeZero {
		entries = scoring.WithoutZero(entries)
	}
	return &Standings{
		Dimension:   q.Dimension,
		Scope:       q.ScopeName,
		Section:     q.Section,
		Entries:     entries,
		Diagnostics: diag,
	}
}

// TeamStandings ranks teams from the stored records
func (s *StandingsService) TeamStandings(ctx context.Context, q StandingsQuery) (*Standings, error) {
	snap, err := loadSnapshot(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	st := ComputeTeamStandings(snap, q)
	s.logDiagnostics("team standings", st.Diagnostics)
	return st, nil
}

// IndividualStandings ranks candidates from the stored records
func (s *StandingsService) IndividualStandings(ctx context.Context, q StandingsQuery) (*Standings, error) {
	snap, err := loadSnapshot(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	st := ComputeIndividualStandings(snap, q)
	s.logDiagnostics("individual standings", st.Diagnostics)
	return st, nil
}

// Diagnostics runs an aggregation pass only to report what it had to drop
func (s *StandingsService) Diagnostics(ctx context.Context, scope scoring.Scope) (scoring.Diagnostics, error) {
	snap, err := loadSnapshot(ctx, s.repo)
	if err != nil {
		return scoring.Diagnostics{}, err
	}
	return scoring.Compute(snap, scope).Diagnostics, nil
}

// ResultView is a published result as shown on the public results page
type ResultView struct {
	ResultID    models.ID              `json:"result_id"`
	ProgrammeID models.ID              `json:"programme_id"`
	Programme   string                 `json:"programme"`
	Code        string                 `json:"code,omitempty"`
	Category    models.Category        `json:"category,omitempty"`
	Section     models.Section         `json:"section,omitempty"`
	Resolved    bool                   `json:"resolved"`
	Winners     []scoring.ScoredWinner `json:"winners"`
	UpdatedAt   string                 `json:"updated_at,omitempty"`
}

// PublishedResults lists published results with their winners scored from
// the live rule table.
func (s *StandingsService) PublishedResults(ctx context.Context) ([]ResultView, error) {
	snap, err := loadSnapshot(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	return PublishedResultViews(snap), nil
}

// PublishedResultViews builds ResultViews for every published result in a snapshot
func PublishedResultViews(snap scoring.Snapshot) []ResultView {
	roster := scoring.NewRoster(snap.Teams, snap.Candidates)
	views := []ResultView{}
	for _, er := range scoring.EnrichAll(snap.Results, snap.Programmes) {
		if !scoring.PublicScope.Includes(er.Result.Status) {
			continue
		}
		name := er.ProgrammeName
		if !er.Resolved {
			// fall back to the cached name so the row is still readable
			name = er.Result.ProgrammeName
		}
		views = append(views, ResultView{
			ResultID:    er.Result.ID,
			ProgrammeID: er.Result.ProgrammeID,
			Programme:   name,
			Code:        er.ProgrammeCode,
			Category:    er.ProgrammeCategory,
			Section:     er.ProgrammeSection,
			Resolved:    er.Resolved,
			Winners:     scoring.Breakdown(er, roster),
			UpdatedAt:   er.Result.UpdatedAt,
		})
	}
	return views
}

func (s *StandingsService) logDiagnostics(what string, d scoring.Diagnostics) {
	if d.Unresolved() > 0 || d.MalformedEntries > 0 {
		s.log.Warn(what+" dropped contributions",
			"unresolved_programmes", d.UnresolvedProgrammes,
			"unresolved_candidates", d.UnresolvedCandidates,
			"unresolved_teams", d.UnresolvedTeams,
			"malformed_entries", d.MalformedEntries)
	}
	if d.CachedPointsDrift > 0 || d.UnknownGrades > 0 {
		s.log.Debug(what+" recomputed points",
			"cached_points_drift", d.CachedPointsDrift,
			"unknown_grades", d.UnknownGrades)
	}
}
