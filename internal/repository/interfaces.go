package repository

import (
	"context"

	"github.com/abrezinsky/scoreboard/internal/models"
)

// TeamRepository defines team data operations
type TeamRepository interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, code string) (*models.Team, error)
	CreateTeam(ctx context.Context, team models.Team) error
	UpsertTeam(ctx context.Context, team models.Team) error
}

// CandidateRepository defines candidate data operations
type CandidateRepository interface {
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	GetCandidate(ctx context.Context, chestNumber string) (*models.Candidate, error)
	CreateCandidate(ctx context.Context, candidate models.Candidate) error
	UpsertCandidate(ctx context.Context, candidate models.Candidate) error
}

// ProgrammeRepository defines programme data operations
type ProgrammeRepository interface {
	ListProgrammes(ctx context.Context) ([]models.Programme, error)
	GetProgramme(ctx context.Context, id models.ID) (*models.Programme, error)
	CreateProgramme(ctx context.Context, programme models.Programme) (models.ID, error)
	UpsertProgramme(ctx context.Context, programme models.Programme) error
}

// ResultRepository defines result data operations
type ResultRepository interface {
	ListResults(ctx context.Context) ([]models.Result, error)
	GetResult(ctx context.Context, id models.ID) (*models.Result, error)
	GetResultByProgramme(ctx context.Context, programmeID models.ID) (*models.Result, error)
	CreateResult(ctx context.Context, result models.Result) (models.ID, error)
	UpdateResult(ctx context.Context, result models.Result) error
	UpsertResult(ctx context.Context, result models.Result) error
	DeleteResult(ctx context.Context, id models.ID) error
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	GetStats(ctx context.Context) (Stats, error)
	ClearTable(ctx context.Context, table string) error
}

// TxRepository runs a group of writes atomically
type TxRepository interface {
	WithTx(ctx context.Context, fn func(FullRepository) error) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	TeamRepository
	CandidateRepository
	ProgrammeRepository
	ResultRepository
	SettingsRepository
	TxRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
