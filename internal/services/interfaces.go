package services

import (
	"context"

	"github.com/abrezinsky/scoreboard/internal/models"
	"github.com/abrezinsky/scoreboard/internal/repository"
	"github.com/abrezinsky/scoreboard/internal/scoring"
)

// RosterServicer defines the interface for team, candidate and programme operations
type RosterServicer interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	CreateTeam(ctx context.Context, team models.Team) error
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	CreateCandidate(ctx context.Context, candidate models.Candidate) error
	ListProgrammes(ctx context.Context) ([]models.Programme, error)
	GetProgramme(ctx context.Context, id models.ID) (*models.Programme, error)
	CreateProgramme(ctx context.Context, programme models.Programme) (models.ID, error)
	Import(ctx context.Context, snap scoring.Snapshot) (*ImportSummary, error)
	Export(ctx context.Context) (scoring.Snapshot, error)
}

// ResultServicer defines the interface for result lifecycle operations
type ResultServicer interface {
	ListResults(ctx context.Context) ([]models.Result, error)
	GetResult(ctx context.Context, id models.ID) (*models.Result, error)
	CreateResult(ctx context.Context, programmeID models.ID, winners Winners) (models.ID, error)
	UpdateWinners(ctx context.Context, id models.ID, winners Winners) (*models.Result, error)
	Advance(ctx context.Context, id models.ID) (*models.Result, error)
	Publish(ctx context.Context, id models.ID) (*models.Result, error)
	DeleteResult(ctx context.Context, id models.ID) error
}

// StandingsServicer defines the interface for leaderboard operations
type StandingsServicer interface {
	TeamStandings(ctx context.Context, q StandingsQuery) (*Standings, error)
	IndividualStandings(ctx context.Context, q StandingsQuery) (*Standings, error)
	Diagnostics(ctx context.Context, scope scoring.Scope) (scoring.Diagnostics, error)
	PublishedResults(ctx context.Context) ([]ResultView, error)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	GetFestivalName(ctx context.Context) (string, error)
	SetFestivalName(ctx context.Context, name string) error
	GetPublicURL(ctx context.Context) (string, error)
	SetPublicURL(ctx context.Context, raw string) error
	StandingsQR(ctx context.Context) ([]byte, error)
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	Stats(ctx context.Context) (repository.Stats, error)
	ResetTables(ctx context.Context, tables []string) (*ResetTablesResult, error)
}

// Ensure concrete types implement interfaces
var (
	_ RosterServicer    = (*RosterService)(nil)
	_ ResultServicer    = (*ResultService)(nil)
	_ StandingsServicer = (*StandingsService)(nil)
	_ SettingsServicer  = (*SettingsService)(nil)
)
