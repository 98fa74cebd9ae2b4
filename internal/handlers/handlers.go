package handlers

import (
	"github.com/abrezinsky/scoreboard/internal/auth"
	"github.com/abrezinsky/scoreboard/internal/services"
)

// Options tunes public-facing behaviour
type Options struct {
	// HideZero drops zero scorers from public leaderboards
	HideZero bool
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Roster    services.RosterServicer
	Results   services.ResultServicer
	Standings services.StandingsServicer
	Settings  services.SettingsServicer
	Auth      *auth.Auth
	Log       HTTPLogger
	opts      Options
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	roster services.RosterServicer,
	results services.ResultServicer,
	standings services.StandingsServicer,
	settings services.SettingsServicer,
	adminAuth *auth.Auth,
	log HTTPLogger,
	opts Options,
) *Handlers {
	return &Handlers{
		Roster:    roster,
		Results:   results,
		Standings: standings,
		Settings:  settings,
		Auth:      adminAuth,
		Log:       log,
		opts:      opts,
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// TestPassword is the admin password used by NewForTesting
const TestPassword = "test-password"

// NewForTesting creates a Handlers instance with a known admin password and
// zero scorers hidden on public boards.
func NewForTesting(
	roster services.RosterServicer,
	results services.ResultServicer,
	standings services.StandingsServicer,
	settings services.SettingsServicer,
) *Handlers {
	return New(roster, results, standings, settings, auth.New(TestPassword), NoopHTTPLogger{}, Options{HideZero: true})
}
