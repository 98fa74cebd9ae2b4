package services

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/abrezinsky/scoreboard/internal/errors"
	"github.com/abrezinsky/scoreboard/internal/logger"
	"github.com/abrezinsky/scoreboard/internal/repository"
)

const (
	settingFestivalName = "festival_name"
	settingPublicURL    = "public_url"

	qrSize = 256
)

// SettingsService handles settings-related business logic
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// GetFestivalName returns the display name shown on public boards
func (s *SettingsService) GetFestivalName(ctx context.Context) (string, error) {
	name, err := s.repo.GetSetting(ctx, settingFestivalName)
	if err == repository.ErrNotFound {
		return "", nil
	}
	return name, err
}

// SetFestivalName updates the display name
func (s *SettingsService) SetFestivalName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.Validation("festival name cannot be empty")
	}
	return s.repo.SetSetting(ctx, settingFestivalName, name)
}

// GetPublicURL returns the address of the public standings board, or "" if unset
func (s *SettingsService) GetPublicURL(ctx context.Context) (string, error) {
	v, err := s.repo.GetSetting(ctx, settingPublicURL)
	if err == repository.ErrNotFound {
		return "", nil
	}
	return v, err
}

// SetPublicURL stores the public standings address. It must be an absolute
// http or https URL; a trailing slash is dropped.
func (s *SettingsService) SetPublicURL(ctx context.Context, raw string) error {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Validationf("public url %q must be an absolute http(s) address", raw)
	}
	return s.repo.SetSetting(ctx, settingPublicURL, raw)
}

// StandingsQR encodes the public standings address as a PNG QR code for
// display at the venue.
func (s *SettingsService) StandingsQR(ctx context.Context) ([]byte, error) {
	target, err := s.GetPublicURL(ctx)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return nil, ErrNoPublicURL
	}
	return qrcode.Encode(target, qrcode.Medium, qrSize)
}

// GetSetting retrieves an arbitrary setting
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	value, err := s.repo.GetSetting(ctx, key)
	if err == repository.ErrNotFound {
		return "", errors.NotFoundf("setting %s not found", key)
	}
	return value, err
}

// SetSetting saves an arbitrary setting
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}

// Stats returns record counts for the admin dashboard
func (s *SettingsService) Stats(ctx context.Context) (repository.Stats, error) {
	return s.repo.GetStats(ctx)
}

// ResetTablesResult contains the result of a database reset
type ResetTablesResult struct {
	Tables  []string `json:"tables"`
	Message string   `json:"message"`
}

// ValidTables defines which tables can be reset
var ValidTables = map[string]bool{
	"teams": true, "candidates": true, "programmes": true, "results": true, "settings": true,
}

// ResetTables validates and clears the given tables. Clearing programmes
// also clears results, since a result without its programme scores nothing.
func (s *SettingsService) ResetTables(ctx context.Context, tables []string) (*ResetTablesResult, error) {
	if len(tables) == 0 {
		return nil, ErrNoTablesSpecified
	}

	var toReset []string
	for _, table := range tables {
		if !ValidTables[table] {
			return nil, &InvalidTableError{Table: table}
		}
		if !slices.Contains(toReset, table) {
			toReset = append(toReset, table)
		}
	}

	if slices.Contains(toReset, "programmes") && !slices.Contains(toReset, "results") {
		toReset = append([]string{"results"}, toReset...)
	}

	for _, table := range toReset {
		if err := s.repo.ClearTable(ctx, table); err != nil {
			return nil, err
		}
	}

	s.log.Warn("tables reset", "tables", toReset)
	return &ResetTablesResult{
		Tables:  toReset,
		Message: "Successfully deleted data from tables",
	}, nil
}
