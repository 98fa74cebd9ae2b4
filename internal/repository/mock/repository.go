package mock

import (
	"context"

	"github.com/abrezinsky/scoreboard/internal/models"
	"github.com/abrezinsky/scoreboard/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.ListResultsError = errors.New("database error")
//	svc := services.NewStandingsService(log, mockRepo)
//	_, err := svc.TeamStandings(ctx, query)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Roster Errors =====
	ListTeamsError       error
	GetTeamError         error
	CreateTeamError      error
	UpsertTeamError      error
	ListCandidatesError  error
	CreateCandidateError error
	UpsertCandidateError error

	// ===== Programme Errors =====
	ListProgrammesError  error
	GetProgrammeError    error
	CreateProgrammeError error
	UpsertProgrammeError error

	// ===== Result Errors =====
	ListResultsError          error
	GetResultError            error
	GetResultByProgrammeError error
	CreateResultError         error
	UpdateResultError         error
	UpsertResultError         error
	DeleteResultError         error

	// ===== Settings Errors =====
	GetSettingError error
	SetSettingError error
	GetStatsError   error
	ClearTableError error

	// ===== Transaction Errors =====
	WithTxError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Roster Methods =====

func (m *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	if m.ListTeamsError != nil {
		return nil, m.ListTeamsError
	}
	return m.FullRepository.ListTeams(ctx)
}

func (m *Repository) GetTeam(ctx context.Context, code string) (*models.Team, error) {
	if m.GetTeamError != nil {
		return nil, m.GetTeamError
	}
	return m.FullRepository.GetTeam(ctx, code)
}

func (m *Repository) CreateTeam(ctx context.Context, team models.Team) error {
	if m.CreateTeamError != nil {
		return m.CreateTeamError
	}
	return m.FullRepository.CreateTeam(ctx, team)
}

func (m *Repository) UpsertTeam(ctx context.Context, team models.Team) error {
	if m.UpsertTeamError != nil {
		return m.UpsertTeamError
	}
	return m.FullRepository.UpsertTeam(ctx, team)
}

func (m *Repository) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	if m.ListCandidatesError != nil {
		return nil, m.ListCandidatesError
	}
	return m.FullRepository.ListCandidates(ctx)
}

func (m *Repository) CreateCandidate(ctx context.Context, candidate models.Candidate) error {
	if m.CreateCandidateError != nil {
		return m.CreateCandidateError
	}
	return m.FullRepository.CreateCandidate(ctx, candidate)
}

func (m *Repository) UpsertCandidate(ctx context.Context, candidate models.Candidate) error {
	if m.UpsertCandidateError != nil {
		return m.UpsertCandidateError
	}
	return m.FullRepository.UpsertCandidate(ctx, candidate)
}

// ===== Programme Methods =====

func (m *Repository) ListProgrammes(ctx context.Context) ([]models.Programme, error) {
	if m.ListProgrammesError != nil {
		return nil, m.ListProgrammesError
	}
	return m.FullRepository.ListProgrammes(ctx)
}

func (m *Repository) GetProgramme(ctx context.Context, id models.ID) (*models.Programme, error) {
	if m.GetProgrammeError != nil {
		return nil, m.GetProgrammeError
	}
	return m.FullRepository.GetProgramme(ctx, id)
}

func (m *Repository) CreateProgramme(ctx context.Context, programme models.Programme) (models.ID, error) {
	if m.CreateProgrammeError != nil {
		return "", m.CreateProgrammeError
	}
	return m.FullRepository.CreateProgramme(ctx, programme)
}

func (m *Repository) UpsertProgramme(ctx context.Context, programme models.Programme) error {
	if m.UpsertProgrammeError != nil {
		return m.UpsertProgrammeError
	}
	return m.FullRepository.UpsertProgramme(ctx, programme)
}

// ===== Result Methods =====

func (m *Repository) ListResults(ctx context.Context) ([]models.Result, error) {
	if m.ListResultsError != nil {
		return nil, m.ListResultsError
	}
	return m.FullRepository.ListResults(ctx)
}

func (m *Repository) GetResult(ctx context.Context, id models.ID) (*models.Result, error) {
	if m.GetResultError != nil {
		return nil, m.GetResultError
	}
	return m.FullRepository.GetResult(ctx, id)
}

func (m *Repository) GetResultByProgramme(ctx context.Context, programmeID models.ID) (*models.Result, error) {
	if m.GetResultByProgrammeError != nil {
		return nil, m.GetResultByProgrammeError
	}
	return m.FullRepository.GetResultByProgramme(ctx, programmeID)
}

func (m *Repository) CreateResult(ctx context.Context, result models.Result) (models.ID, error) {
	if m.CreateResultError != nil {
		return "", m.CreateResultError
	}
	return m.FullRepository.CreateResult(ctx, result)
}

func (m *Repository) UpdateResult(ctx context.Context, result models.Result) error {
	if m.UpdateResultError != nil {
		return m.UpdateResultError
	}
	return m.FullRepository.UpdateResult(ctx, result)
}

func (m *Repository) UpsertResult(ctx context.Context, result models.Result) error {
	if m.UpsertResultError != nil {
		return m.UpsertResultError
	}
	return m.FullRepository.UpsertResult(ctx, result)
}

func (m *Repository) DeleteResult(ctx context.Context, id models.ID) error {
	if m.DeleteResultError != nil {
		return m.DeleteResultError
	}
	return m.FullRepository.DeleteResult(ctx, id)
}

// ===== Settings Methods =====

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}

func (m *Repository) GetStats(ctx context.Context) (repository.Stats, error) {
	if m.GetStatsError != nil {
		return repository.Stats{}, m.GetStatsError
	}
	return m.FullRepository.GetStats(ctx)
}

func (m *Repository) ClearTable(ctx context.Context, table string) error {
	if m.ClearTableError != nil {
		return m.ClearTableError
	}
	return m.FullRepository.ClearTable(ctx, table)
}

// ===== Transaction Methods =====

// WithTx runs fn inside the wrapped repository's transaction. The repository
// handed to fn carries the same injected errors.
func (m *Repository) WithTx(ctx context.Context, fn func(repository.FullRepository) error) error {
	if m.WithTxError != nil {
		return m.WithTxError
	}
	return m.FullRepository.WithTx(ctx, func(tx repository.FullRepository) error {
		scoped := *m
		scoped.FullRepository = tx
		return fn(&scoped)
	})
}
