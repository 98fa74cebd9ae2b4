package services

import (
	"context"
	"strings"

	"github.com/abrezinsky/scoreboard/internal/errors"
	"github.com/abrezinsky/scoreboard/internal/logger"
	"github.com/abrezinsky/scoreboard/internal/models"
	"github.com/abrezinsky/scoreboard/internal/repository"
	"github.com/abrezinsky/scoreboard/internal/scoring"
)

// RosterServiceRepository defines the repository methods needed by RosterService
type RosterServiceRepository interface {
	repository.TeamRepository
	repository.CandidateRepository
	repository.ProgrammeRepository
	repository.ResultRepository
	repository.TxRepository
}

// RosterService manages the festival roster: teams, candidates and programmes
type RosterService struct {
	log  logger.Logger
	repo RosterServiceRepository
}

// NewRosterService creates a new RosterService
func NewRosterService(log logger.Logger, repo RosterServiceRepository) *RosterService {
	return &RosterService{log: log, repo: repo}
}

// ImportSummary counts the records written by Import
type ImportSummary struct {
	Teams      int `json:"teams"`
	Candidates int `json:"candidates"`
	Programmes int `json:"programmes"`
	Results    int `json:"results"`
	Skipped    int `json:"skipped"`
}

// ListTeams returns all teams
func (s *RosterService) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.repo.ListTeams(ctx)
}

// CreateTeam validates and stores a new team
func (s *RosterService) CreateTeam(ctx context.Context, team models.Team) error {
	team.Code = strings.TrimSpace(team.Code)
	team.Name = strings.TrimSpace(team.Name)
	if team.Code == "" || team.Name == "" {
		return errors.Validation("team code and name are required")
	}

	err := s.repo.CreateTeam(ctx, team)
	if err == repository.ErrDuplicate {
		return errors.Conflictf("team %s already exists", team.Code)
	}
	if err != nil {
		return err
	}
	s.log.Info("team created", "code", team.Code)
	return nil
}

// ListCandidates returns all candidates
func (s *RosterService) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return s.repo.ListCandidates(ctx)
}

// CreateCandidate validates and stores a new candidate. The candidate's team
// must already exist.
func (s *RosterService) CreateCandidate(ctx context.Context, candidate models.Candidate) error {
	candidate.ChestNumber = strings.TrimSpace(candidate.ChestNumber)
	candidate.Name = strings.TrimSpace(candidate.Name)
	candidate.Team = strings.TrimSpace(candidate.Team)
	if candidate.ChestNumber == "" || candidate.Name == "" {
		return errors.Validation("chest number and name are required")
	}
	if candidate.Section != "" && !validSection(candidate.Section) {
		return errors.Validationf("unknown section %q", candidate.Section)
	}

	if _, err := s.repo.GetTeam(ctx, candidate.Team); err == repository.ErrNotFound {
		return errors.Validationf("unknown team %q", candidate.Team)
	} else if err != nil {
		return err
	}

	err := s.repo.CreateCandidate(ctx, candidate)
	if err == repository.ErrDuplicate {
		return errors.Conflictf("chest number %s is already assigned", candidate.ChestNumber)
	}
	return err
}

// ListProgrammes returns all programmes
func (s *RosterService) ListProgrammes(ctx context.Context) ([]models.Programme, error) {
	return s.repo.ListProgrammes(ctx)
}

// GetProgramme returns a programme by id
func (s *RosterService) GetProgramme(ctx context.Context, id models.ID) (*models.Programme, error) {
	p, err := s.repo.GetProgramme(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("programme %s not found", id)
	}
	return p, err
}

// CreateProgramme validates and stores a programme, returning its id
func (s *RosterService) CreateProgramme(ctx context.Context, programme models.Programme) (models.ID, error) {
	programme.Name = strings.TrimSpace(programme.Name)
	if programme.Name == "" {
		return "", errors.Validation("programme name is required")
	}
	if !validCategory(programme.Category) {
		return "", errors.Validationf("unknown category %q", programme.Category)
	}
	if programme.Subcategory != models.SubcategoryNone && programme.Category != models.CategoryArts {
		return "", errors.Validation("only arts programmes have a stage/non-stage subcategory")
	}
	if programme.Subcategory != models.SubcategoryNone &&
		programme.Subcategory != models.SubcategoryStage && programme.Subcategory != models.SubcategoryNonStage {
		return "", errors.Validationf("unknown subcategory %q", programme.Subcategory)
	}
	if !validSection(programme.Section) {
		return "", errors.Validationf("unknown section %q", programme.Section)
	}
	if !validPositionType(programme.PositionType) {
		return "", errors.Validationf("unknown position type %q", programme.PositionType)
	}

	id, err := s.repo.CreateProgramme(ctx, programme)
	if err == repository.ErrDuplicate {
		return "", errors.Conflictf("programme %s already exists", programme.ID)
	}
	if err != nil {
		return "", err
	}
	s.log.Info("programme created", "id", id, "name", programme.Name)
	return id, nil
}

// Import upserts every record of a snapshot in one transaction, so a failure
// leaves the store untouched. Records missing their key are skipped and
// counted, as are results for a programme that already has one. Results keep
// the status recorded in the snapshot.
func (s *RosterService) Import(ctx context.Context, snap scoring.Snapshot) (*ImportSummary, error) {
	var sum *ImportSummary
	err := s.repo.WithTx(ctx, func(tx repository.FullRepository) error {
		var err error
		sum, err = s.importSnapshot(ctx, tx, snap)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("snapshot imported",
		"teams", sum.Teams, "candidates", sum.Candidates,
		"programmes", sum.Programmes, "results", sum.Results, "skipped", sum.Skipped)
	return sum, nil
}

func (s *RosterService) importSnapshot(ctx context.Context, tx repository.FullRepository, snap scoring.Snapshot) (*ImportSummary, error) {
	sum := &ImportSummary{}

	for _, t := range snap.Teams {
		if strings.TrimSpace(t.Code) == "" {
			sum.Skipped++
			continue
		}
		if err := tx.UpsertTeam(ctx, t); err != nil {
			return nil, err
		}
		sum.Teams++
	}
	for _, c := range snap.Candidates {
		if strings.TrimSpace(c.ChestNumber) == "" {
			sum.Skipped++
			continue
		}
		if err := tx.UpsertCandidate(ctx, c); err != nil {
			return nil, err
		}
		sum.Candidates++
	}
	for _, p := range snap.Programmes {
		if p.ID.IsZero() {
			sum.Skipped++
			continue
		}
		if err := tx.UpsertProgramme(ctx, p); err != nil {
			return nil, err
		}
		sum.Programmes++
	}
	for _, r := range snap.Results {
		if r.ID.IsZero() || r.ProgrammeID.IsZero() {
			sum.Skipped++
			continue
		}
		err := tx.UpsertResult(ctx, r)
		if err == repository.ErrDuplicate {
			s.log.Warn("skipping result, programme already has one", "id", r.ID, "programme", r.ProgrammeID)
			sum.Skipped++
			continue
		}
		if err != nil {
			return nil, err
		}
		sum.Results++
	}
	return sum, nil
}

// Export reads every stored record into a snapshot
func (s *RosterService) Export(ctx context.Context) (scoring.Snapshot, error) {
	return loadSnapshot(ctx, s.repo)
}

// snapshotSource is the read side needed to build a scoring snapshot
type snapshotSource interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	ListProgrammes(ctx context.Context) ([]models.Programme, error)
	ListResults(ctx context.Context) ([]models.Result, error)
}

func loadSnapshot(ctx context.Context, repo snapshotSource) (scoring.Snapshot, error) {
	var snap scoring.Snapshot
	var err error

	if snap.Teams, err = repo.ListTeams(ctx); err != nil {
		return scoring.Snapshot{}, err
	}
	if snap.Candidates, err = repo.ListCandidates(ctx); err != nil {
		return scoring.Snapshot{}, err
	}
	if snap.Programmes, err = repo.ListProgrammes(ctx); err != nil {
		return scoring.Snapshot{}, err
	}
	if snap.Results, err = repo.ListResults(ctx); err != nil {
		return scoring.Snapshot{}, err
	}
	return snap, nil
}

func validCategory(c models.Category) bool {
	return c == models.CategoryArts || c == models.CategorySports || c == models.CategoryGeneral
}

func validSection(s models.Section) bool {
	switch s {
	case models.SectionSenior, models.SectionJunior, models.SectionSubJunior, models.SectionGeneral:
		return true
	}
	return false
}

func validPositionType(pt models.PositionType) bool {
	return pt == models.PositionIndividual || pt == models.PositionGroup || pt == models.PositionGeneral
}
