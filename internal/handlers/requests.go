package handlers

import (
	"github.com/abrezinsky/scoreboard/internal/models"
	"github.com/abrezinsky/scoreboard/internal/services"
)

// LoginRequest represents an admin login
type LoginRequest struct {
	Password string `json:"password"`
}

// TeamCreateRequest represents a request to create a team
type TeamCreateRequest struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CandidateCreateRequest represents a request to register a candidate
type CandidateCreateRequest struct {
	ChestNumber string         `json:"chest_number"`
	Name        string         `json:"name"`
	Team        string         `json:"team"`
	Section     models.Section `json:"section"`
}

// ProgrammeCreateRequest represents a request to create a programme.
// ID is optional; one is generated when omitted.
type ProgrammeCreateRequest struct {
	ID                   models.ID           `json:"id"`
	Code                 string              `json:"code"`
	Name                 string              `json:"name"`
	Category             models.Category     `json:"category"`
	Subcategory          models.Subcategory  `json:"subcategory"`
	Section              models.Section      `json:"section"`
	PositionType         models.PositionType `json:"position_type"`
	RequiredParticipants int                 `json:"required_participants"`
}

// ResultCreateRequest represents a request to record a programme's result
type ResultCreateRequest struct {
	ProgrammeID models.ID `json:"programme_id"`
	services.Winners
}

// WinnersUpdateRequest replaces the winners of a result
type WinnersUpdateRequest struct {
	services.Winners
}

// SettingsUpdateRequest represents a request to update settings.
// Empty fields are left unchanged.
type SettingsUpdateRequest struct {
	FestivalName string `json:"festival_name"`
	PublicURL    string `json:"public_url"`
}

// DatabaseResetRequest represents a request to reset database tables
type DatabaseResetRequest struct {
	Tables []string `json:"tables"`
}
